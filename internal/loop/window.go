package loop

import (
	"strings"

	"virtual-conductor/internal/transit"
)

// DefaultWindowSize is how many stations a loop display window holds.
const DefaultWindowSize = 7

// LookAheadOffset is how far around the loop the bound station sits.
const LookAheadOffset = 4

// Window returns up to n stations starting at current and moving in the
// travel direction. Full loops wrap past either end of the list; other
// kinds stop at the boundary. Indexes never leave [0, len).
func Window(stations []transit.Station, current int, dir transit.Direction, n int, kind Kind) []transit.Station {
	l := len(stations)
	if l == 0 || current < 0 || current >= l || n <= 0 {
		return nil
	}
	if n > l {
		n = l
	}
	step := 1
	if dir == transit.Outbound {
		step = -1
	}
	out := make([]transit.Station, 0, n)
	for i, k := current, 0; k < n; k, i = k+1, i+step {
		if i < 0 || i >= l {
			if kind != Full {
				break
			}
			i = ((i % l) + l) % l
		}
		out = append(out, stations[i])
	}
	return out
}

// LookAheadIndex returns current moved offset stations in the travel
// direction, wrapping on full loops. -1 when it falls off a non-wrapping list.
func LookAheadIndex(length, current int, dir transit.Direction, offset int, kind Kind) int {
	if length == 0 || current < 0 || current >= length {
		return -1
	}
	i := current + offset
	if dir == transit.Outbound {
		i = current - offset
	}
	if i >= 0 && i < length {
		return i
	}
	if kind == Full {
		return ((i % length) + length) % length
	}
	return -1
}

// IndexOfGroup finds the first station sharing groupID, or -1.
func IndexOfGroup(stations []transit.Station, groupID int) int {
	for i, s := range stations {
		if s.GroupID == groupID {
			return i
		}
	}
	return -1
}

// Bound is the rider-facing direction label.
type Bound struct {
	Name      string
	NameRoman string
	// Via is the look-ahead station shown next to a loop phrase, if any.
	Via *transit.Station
	// Terminal is set for bounds named after a terminal station.
	Terminal *transit.Station
}

func (b Bound) Empty() bool { return b.Name == "" && b.NameRoman == "" }

type BoundInput struct {
	Stations  []transit.Station // full ordered list, not oriented
	Current   int
	Line      *transit.Line
	Direction transit.Direction
	Table     Table
}

// ResolveBound computes the bound label. Linear lines name the terminal in
// the travel direction. Named loops use their fixed wording; other loops
// name the station LookAheadOffset stations ahead, falling back to the
// terminal when that runs off the list.
func ResolveBound(in BoundInput) Bound {
	l := len(in.Stations)
	if l == 0 || in.Line == nil {
		return Bound{}
	}
	kind := in.Table.Kind(in.Line)
	if kind == Linear {
		return terminalBound(in.Stations, in.Direction)
	}

	var via *transit.Station
	if idx := LookAheadIndex(l, in.Current, in.Direction, LookAheadOffset, kind); idx >= 0 {
		s := in.Stations[idx]
		via = &s
	}

	if v := in.Table.Vocabulary(in.Line); v != nil {
		b := Bound{Name: v.Inbound, NameRoman: v.InboundRoman, Via: via}
		if in.Direction == transit.Outbound {
			b.Name, b.NameRoman = v.Outbound, v.OutboundRoman
		}
		return b
	}
	if via == nil {
		return terminalBound(in.Stations, in.Direction)
	}
	return Bound{Name: via.Name, NameRoman: RomanBound(via.NameRoman), Via: via}
}

func terminalBound(stations []transit.Station, dir transit.Direction) Bound {
	t := stations[len(stations)-1]
	if dir == transit.Outbound {
		t = stations[0]
	}
	return Bound{Name: t.Name, NameRoman: RomanBound(t.NameRoman), Terminal: &t}
}

// RomanBound spells out "&" in romanized multi-destination names.
func RomanBound(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	s = strings.ReplaceAll(s, "&", " and ")
	return strings.Join(strings.Fields(s), " ")
}
