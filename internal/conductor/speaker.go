package conductor

type SpeakerState int

const (
	Idle SpeakerState = iota
	Speaking
	CoolingDown
)

func (s SpeakerState) String() string {
	switch s {
	case Speaking:
		return "speaking"
	case CoolingDown:
		return "cooling_down"
	default:
		return "idle"
	}
}

// Speaker guarantees an announcement is never spoken twice in a row and
// never overlaps another one. Offers that arrive while busy are held; only
// the newest is kept.
type Speaker struct {
	state     SpeakerState
	cooldown  int // ticks spent in CoolingDown after each announcement
	remaining int
	last      string
	pending   *Announcement
}

func NewSpeaker(cooldownTicks int) *Speaker {
	if cooldownTicks < 0 {
		cooldownTicks = 0
	}
	return &Speaker{cooldown: cooldownTicks}
}

func (s *Speaker) State() SpeakerState { return s.state }

// Offer proposes a. It returns a when it should be spoken now and reports
// whether a was dropped as a duplicate.
func (s *Speaker) Offer(a Announcement) (*Announcement, bool) {
	key := a.key()
	if key == s.last || (s.pending != nil && s.pending.key() == key) {
		return nil, true
	}
	if s.state != Idle {
		s.pending = &a
		return nil, false
	}
	s.start(key)
	return &a, false
}

// Finished is called once the sink is done with the current announcement.
func (s *Speaker) Finished() {
	if s.state != Speaking {
		return
	}
	if s.cooldown == 0 {
		s.state = Idle
		return
	}
	s.state, s.remaining = CoolingDown, s.cooldown
}

// Tick advances the cooldown and releases the held offer once idle.
func (s *Speaker) Tick() *Announcement {
	if s.state == CoolingDown {
		s.remaining--
		if s.remaining <= 0 {
			s.state = Idle
		}
	}
	if s.state != Idle || s.pending == nil {
		return nil
	}
	a := s.pending
	s.pending = nil
	if a.key() == s.last {
		return nil
	}
	s.start(a.key())
	return a
}

func (s *Speaker) start(key string) {
	s.state = Speaking
	s.last = key
}
