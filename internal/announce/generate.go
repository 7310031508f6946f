// Package announce builds the spoken announcement text for a stopping state.
//
// Generate is a pure function of its Context. Every theme has NEXT and
// ARRIVING wording in Japanese and English; themes that share wording are
// resolved through transit.Theme.TextTheme.
package announce

import (
	"strings"

	"virtual-conductor/internal/loop"
	"virtual-conductor/internal/transit"
	"virtual-conductor/internal/window"
)

type Context struct {
	Theme         transit.Theme
	StoppingState transit.HeaderState
	// FirstSpeech marks the first announcement of a trip, which carries the
	// welcome and service description.
	FirstSpeech bool

	Current   *transit.Station
	Next      *transit.Station
	AfterNext *transit.Station
	Line      *transit.Line
	TrainType *transit.TrainType
	Bound     loop.Bound

	TransferLines  []transit.Line // lines only reachable at Next
	ConnectedLines []transit.Line // lines the train runs onto

	NextIsTerminus      bool
	AfterNextIsTerminus bool

	NextStationNumber *transit.StationNumber
	// Window lists the stations ahead starting at Current, before any head
	// policy drops it. The stations passed between Current and Next come
	// from here.
	Window  []transit.Station
	Holiday bool
}

// Generate returns (localText, romanText). Nothing is due for CURRENT or
// when there is no next station.
func Generate(c Context) (string, string) {
	if c.StoppingState.StoppingState() == transit.HeaderCurrent || c.Next == nil {
		return "", ""
	}
	state := c.StoppingState.StoppingState()
	if state != transit.HeaderNext && state != transit.HeaderArriving {
		return "", ""
	}
	v := buildVars(c)
	arriving := state == transit.HeaderArriving

	var ja, en *speech
	switch c.Theme.TextTheme() {
	case transit.ThemeTY:
		ja, en = tokyu(v, arriving)
	case transit.ThemeYamanote:
		ja, en = jrEast(v, arriving)
	case transit.ThemeJRWest:
		ja, en = jrWest(v, arriving)
	case transit.ThemeSaikyo:
		ja, en = saikyo(v, arriving)
	case transit.ThemeToei:
		ja, en = toei(v, arriving)
	case transit.ThemeJRKyushu:
		ja, en = jrKyushu(v, arriving)
	case transit.ThemeTokyoMetro:
		ja, en = tokyoMetro(v, arriving)
	default:
		ja, en = tokyoMetro(v, arriving)
	}
	return ja.String(), tidy(FixPhonemes(en.String()))
}

// vars holds every rendered fragment a template may use.
type vars struct {
	first bool

	nextJA, nextEN   string
	afterJA, afterEN string
	lineJA, lineEN   string
	typeJA, typeEN   string
	boundJA, boundEN string

	transfersJA, transfersEN string
	connectedJA, connectedEN string
	passedJA, passedEN       string

	code string // raw station number of Next

	nextTerm, afterTerm bool
}

func buildVars(c Context) vars {
	v := vars{
		first:     c.FirstSpeech,
		nextJA:    ruby(c.Next.Name, c.Next.NameKatakana),
		nextEN:    c.Next.NameRoman,
		nextTerm:  c.NextIsTerminus,
		afterTerm: c.AfterNextIsTerminus,
	}
	if c.AfterNext != nil && !c.NextIsTerminus {
		v.afterJA = ruby(c.AfterNext.Name, c.AfterNext.NameKatakana)
		v.afterEN = c.AfterNext.NameRoman
	}
	if c.Line != nil {
		v.lineJA = ruby(c.Line.NameShort, c.Line.NameKatakana)
		v.lineEN = c.Line.NameRoman
	}
	if tt := c.TrainType; tt != nil {
		v.typeJA = ruby(tt.Name, tt.NameKatakana)
		v.typeEN = tt.NameRoman
	} else {
		v.typeJA, v.typeEN = "各駅停車", "Local"
	}
	v.boundJA, v.boundEN = boundPhrases(c.Bound)

	v.transfersJA, v.transfersEN = lineLists(c.TransferLines)
	v.connectedJA, v.connectedEN = lineLists(c.ConnectedLines)

	passed := window.Between(c.Window, c.Current, c.Next)
	var pj, pe []string
	for _, s := range passed {
		if !window.IsPass(s, c.Holiday) {
			continue
		}
		pj = append(pj, ruby(s.Name, s.NameKatakana))
		pe = append(pe, s.NameRoman)
	}
	v.passedJA, v.passedEN = joinJA(pj...), joinEN(pe...)

	if c.NextStationNumber != nil {
		v.code = c.NextStationNumber.Code
	}
	return v
}

func lineLists(lines []transit.Line) (string, string) {
	ja := make([]string, 0, len(lines))
	en := make([]string, 0, len(lines))
	for _, l := range lines {
		ja = append(ja, ruby(l.NameShort, l.NameKatakana))
		en = append(en, l.NameRoman)
	}
	return joinJA(ja...), joinEN(en...)
}

func boundPhrases(b loop.Bound) (string, string) {
	if b.Empty() {
		return "", ""
	}
	switch {
	case b.Terminal != nil:
		return ruby(b.Name, b.Terminal.NameKatakana) + "ゆき", "bound for " + b.NameRoman
	case b.Via != nil && b.Via.Name != b.Name:
		// named loop: fixed wording plus the look-ahead station
		return b.Name + " " + ruby(b.Via.Name, b.Via.NameKatakana) + "方面",
			"going " + strings.ToLower(b.NameRoman) + ", for " + loop.RomanBound(b.Via.NameRoman)
	case b.Via != nil:
		return ruby(b.Name, b.Via.NameKatakana) + "方面", "for " + b.NameRoman
	default:
		return b.Name, "going " + strings.ToLower(b.NameRoman)
	}
}

// numbered appends the English station number clause to a name.
func (v vars) numbered(prefix bool) string {
	return listEN(v.nextEN, NumberPhrase(v.code, prefix))
}

// numberedParen renders "Name (K 01)" or just "Name".
func (v vars) numberedParen(prefix bool) string {
	return v.nextEN + wrap(" (", NumberPhrase(v.code, prefix), ")")
}
