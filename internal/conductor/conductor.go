// Package conductor runs the per-fix pipeline: proximity, current station
// refresh, window slicing, bound resolution, header rotation and
// announcement generation, with a speaker guarding against repeats.
package conductor

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"virtual-conductor/internal/announce"
	"virtual-conductor/internal/loop"
	mmetrics "virtual-conductor/internal/metrics"
	"virtual-conductor/internal/proximity"
	"virtual-conductor/internal/transit"
	"virtual-conductor/internal/window"
)

// DefaultCooldownTicks keeps the speaker quiet for a few seconds after
// each announcement.
const DefaultCooldownTicks = 3

type Announcement struct {
	ID          string              `json:"id"`
	Theme       transit.Theme       `json:"theme"`
	State       transit.HeaderState `json:"state"`
	Local       string              `json:"local"`
	Roman       string              `json:"roman"`
	StationID   int                 `json:"stationId"`
	StationName string              `json:"stationName"`
	FirstSpeech bool                `json:"firstSpeech"`
	Timestamp   time.Time           `json:"timestamp"`
}

func (a Announcement) key() string { return a.Local + "\n" + a.Roman }

// Sink receives every announcement the speaker lets through.
type Sink interface {
	Announce(ctx context.Context, a Announcement) error
}

type Result struct {
	Arrived     bool
	Approaching bool
	BadAccuracy bool

	Current   *transit.Station
	Next      *transit.Station
	AfterNext *transit.Station
	Window    []transit.Station
	Bound     loop.Bound

	HeaderState  transit.HeaderState
	Announcement *Announcement // set on ticks that spoke
}

type Options struct {
	Route     transit.Route
	Direction transit.Direction
	Theme     transit.Theme
	Languages []transit.Language
	Loops     loop.Table
	Head      window.HeadPolicy
	// Holiday reports whether holiday stop patterns apply at a fix's time.
	// Nil means never.
	Holiday func(time.Time) bool
	// CooldownTicks below zero selects DefaultCooldownTicks.
	CooldownTicks int

	Sink    Sink
	Metrics *mmetrics.Collector
	Now     func() time.Time
}

// Conductor keeps the state carried between fixes. It is driven from a
// single goroutine and is not safe for concurrent use.
type Conductor struct {
	o       Options
	speaker *Speaker

	current     *transit.Station
	next        *transit.Station
	header      transit.HeaderState
	stopping    transit.HeaderState
	approaching bool
	firstSpeech bool
}

func New(o Options) *Conductor {
	if o.Loops == nil {
		o.Loops = loop.DefaultTable()
	}
	if len(o.Languages) == 0 {
		o.Languages = []transit.Language{transit.LangJA, transit.LangEN}
	}
	if o.CooldownTicks < 0 {
		o.CooldownTicks = DefaultCooldownTicks
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return &Conductor{
		o:           o,
		speaker:     NewSpeaker(o.CooldownTicks),
		firstSpeech: true,
	}
}

func (c *Conductor) Speaker() *Speaker { return c.speaker }

// Tick evaluates one location fix.
func (c *Conductor) Tick(ctx context.Context, loc transit.Location) Result {
	route := c.o.Route
	line := route.Line
	if m := c.o.Metrics; m != nil {
		m.Ticks.Inc()
	}

	pr := proximity.Evaluate(proximity.Input{
		Stations:    route.Stations,
		Location:    loc,
		Line:        &line,
		NextStation: c.next,
	})
	res := Result{Arrived: pr.Arrived, Approaching: pr.Approaching, BadAccuracy: pr.BadAccuracy}
	if pr.BadAccuracy && c.o.Metrics != nil {
		c.o.Metrics.BadAccuracy.Inc()
	}
	if pr.Nearest == nil {
		res.Current, res.Next = c.current, c.next
		res.HeaderState = c.header
		return res
	}
	holiday := c.holiday(loc)

	if pr.Refresh || c.current == nil {
		if pr.Refresh && (c.current == nil || !c.current.SameStop(*pr.Nearest)) {
			log.Printf("arrived at %s (%s)", pr.Nearest.NameRoman, pr.Nearest.Name)
			if c.o.Metrics != nil {
				c.o.Metrics.Arrivals.Inc()
			}
		}
		cur := *pr.Nearest
		c.current = &cur
	}
	if pr.Approaching && !c.approaching && c.o.Metrics != nil {
		c.o.Metrics.Approaches.Inc()
	}
	c.approaching = pr.Approaching

	kind := c.o.Loops.Kind(&line)
	wo := window.Options{
		Stations:  route.Stations,
		Current:   c.current,
		Direction: c.o.Direction,
		Line:      &line,
		TrainType: route.TrainType,
		Loops:     c.o.Loops,
		Arrived:   pr.Arrived,
		Head:      c.o.Head,
	}
	res.Window = window.Slice(wo)
	nextChanged := false
	if n := window.NextStopping(res.Window, c.current, holiday); n != nil {
		nextChanged = c.next == nil || !c.next.SameStop(*n)
		c.next = n
	}
	res.Current, res.Next = c.current, c.next
	res.AfterNext = window.AfterNextStopping(res.Window, c.next, holiday)

	res.Bound = loop.ResolveBound(loop.BoundInput{
		Stations:  route.Stations,
		Current:   c.currentIndex(),
		Line:      &line,
		Direction: c.o.Direction,
		Table:     c.o.Loops,
	})

	stopping := announce.StoppingStateFor(pr.Arrived, pr.Approaching)
	c.header = announce.NextHeaderState(c.header, stopping, c.o.Languages)
	res.HeaderState = c.header

	if released := c.speaker.Tick(); released != nil {
		res.Announcement = c.deliver(ctx, *released)
	}
	if stopping != c.stopping || nextChanged {
		c.stopping = stopping
		// the head policy may have dropped the current station, so the
		// stations passed on the way to next come from the unfiltered window
		if a, ok := c.compose(res, window.Ahead(wo), kind, stopping, holiday); ok {
			emit, dup := c.speaker.Offer(a)
			if dup && c.o.Metrics != nil {
				c.o.Metrics.AnnouncementsSuppressed.Inc()
			}
			if emit != nil {
				res.Announcement = c.deliver(ctx, *emit)
			}
		}
	}
	if c.o.Metrics != nil {
		c.o.Metrics.SpeakerState.Set(float64(c.speaker.State()))
	}
	return res
}

func (c *Conductor) currentIndex() int {
	if c.current == nil {
		return 0
	}
	if i := loop.IndexOfGroup(c.o.Route.Stations, c.current.GroupID); i >= 0 {
		return i
	}
	return 0
}

func (c *Conductor) holiday(loc transit.Location) bool {
	if c.o.Holiday == nil {
		return false
	}
	t := loc.Timestamp
	if t.IsZero() {
		t = c.o.Now()
	}
	return c.o.Holiday(t)
}

func (c *Conductor) compose(res Result, ahead []transit.Station, kind loop.Kind, stopping transit.HeaderState, holiday bool) (Announcement, bool) {
	route := c.o.Route
	line := route.Line
	actx := announce.Context{
		Theme:               c.o.Theme,
		StoppingState:       stopping,
		FirstSpeech:         c.firstSpeech,
		Current:             res.Current,
		Next:                res.Next,
		AfterNext:           res.AfterNext,
		Line:                &line,
		TrainType:           route.TrainType,
		Bound:               res.Bound,
		TransferLines:       window.TransferLines(res.Next, &line, route.TrainType),
		ConnectedLines:      window.ConnectedLines(route.TrainType, &line, c.o.Direction),
		NextIsTerminus:      window.IsTerminus(res.Next, route.Stations, kind),
		AfterNextIsTerminus: window.IsTerminus(res.AfterNext, route.Stations, kind),
		Window:              ahead,
		Holiday:             holiday,
	}
	if res.Next != nil {
		actx.NextStationNumber = res.Next.PrimaryNumber()
	}
	local, roman := announce.Generate(actx)
	if local == "" && roman == "" {
		return Announcement{}, false
	}
	a := Announcement{
		Theme:       c.o.Theme,
		State:       stopping,
		Local:       local,
		Roman:       roman,
		FirstSpeech: c.firstSpeech,
	}
	if res.Next != nil {
		a.StationID, a.StationName = res.Next.ID, res.Next.Name
	}
	return a, true
}

// deliver hands a to the sink and marks the speaker finished; without an
// audio layer the sink returning is the end of the announcement.
func (c *Conductor) deliver(ctx context.Context, a Announcement) *Announcement {
	a.ID = uuid.NewString()
	a.Timestamp = c.o.Now()
	c.firstSpeech = false
	if c.o.Sink != nil {
		if err := c.o.Sink.Announce(ctx, a); err != nil {
			log.Printf("announce %s: %v", a.ID, err)
		}
	}
	if c.o.Metrics != nil {
		c.o.Metrics.Announcements.WithLabelValues(string(c.o.Theme)).Inc()
	}
	c.speaker.Finished()
	return &a
}
