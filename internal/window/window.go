// Package window slices the ordered, direction-aware list of stations ahead
// of the vehicle and answers the station predicates the announcer needs.
package window

import (
	"virtual-conductor/internal/loop"
	"virtual-conductor/internal/transit"
)

// HeadPolicy decides whether the station the vehicle is leaving stays at
// the head of the window.
type HeadPolicy int

const (
	KeepCurrent HeadPolicy = iota
	// DropCurrentWhenDeparted removes the current station once the vehicle
	// is no longer within the arrive threshold.
	DropCurrentWhenDeparted
	// DropJunctionWhenDeparted removes it only when it is a junction, i.e.
	// the train continues onto another of its lines from there.
	DropJunctionWhenDeparted
)

type Options struct {
	Stations  []transit.Station // full ordered list
	Current   *transit.Station
	Direction transit.Direction
	Line      *transit.Line
	TrainType *transit.TrainType
	Loops     loop.Table
	Arrived   bool
	Head      HeadPolicy
	// LoopSize caps loop windows; zero means loop.DefaultWindowSize.
	LoopSize int
}

// Orient returns a copy ordered in the travel direction.
func Orient(stations []transit.Station, dir transit.Direction) []transit.Station {
	out := make([]transit.Station, len(stations))
	if dir == transit.Outbound {
		for i, s := range stations {
			out[len(stations)-1-i] = s
		}
		return out
	}
	copy(out, stations)
	return out
}

// Dedupe collapses runs of stations sharing a GroupID to their first record.
func Dedupe(stations []transit.Station) []transit.Station {
	out := make([]transit.Station, 0, len(stations))
	for _, s := range stations {
		if n := len(out); n > 0 && out[n-1].GroupID == s.GroupID {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Slice produces the window of stations ahead of the vehicle, starting at
// the current station unless the head policy drops it.
func Slice(o Options) []transit.Station {
	w, size := ahead(o)
	if o.Current != nil {
		w = applyHead(w, o)
	}
	return trim(w, size)
}

// Ahead is Slice with the current station always kept at the head.
func Ahead(o Options) []transit.Station {
	w, size := ahead(o)
	return trim(w, size)
}

// ahead returns the oriented, deduped stations from the current one with
// junction ends folded, and the loop window size (zero for linear lines).
func ahead(o Options) ([]transit.Station, int) {
	if len(o.Stations) == 0 {
		return nil, 0
	}
	if o.Current == nil {
		return Dedupe(Orient(o.Stations, o.Direction)), 0
	}

	kind := o.Loops.Kind(o.Line)
	if kind == loop.Full {
		all := Dedupe(o.Stations)
		idx := loop.IndexOfGroup(all, o.Current.GroupID)
		if idx < 0 {
			return nil, 0
		}
		size := o.LoopSize
		if size <= 0 {
			size = loop.DefaultWindowSize
		}
		// one extra so dropping the head still leaves a full window
		return loop.Window(all, idx, o.Direction, size+1, kind), size
	}

	oriented := Orient(o.Stations, o.Direction)
	idx := loop.IndexOfGroup(oriented, o.Current.GroupID)
	if idx < 0 {
		return nil, 0
	}
	rest := oriented[idx:]
	w := Dedupe(rest)
	if o.Head == DropJunctionWhenDeparted {
		foldTail(w, rest, o)
	}
	return w, 0
}

func trim(w []transit.Station, size int) []transit.Station {
	if size > 0 && len(w) > size {
		return w[:size]
	}
	return w
}

func applyHead(w []transit.Station, o Options) []transit.Station {
	if len(w) == 0 || o.Arrived {
		return w
	}
	switch o.Head {
	case DropCurrentWhenDeparted:
		return w[1:]
	case DropJunctionWhenDeparted:
		if IsJunction(o.Stations, w[0], o.TrainType) {
			return w[1:]
		}
	}
	return w
}

// foldTail replaces a final junction with its record on the line the train
// arrives by, so the terminal stop carries that line rather than whichever
// platform record happened to be listed first. rest is w before Dedupe.
func foldTail(w, rest []transit.Station, o Options) {
	n := len(w)
	if n < 2 || !IsJunction(o.Stations, w[n-1], o.TrainType) {
		return
	}
	by := w[n-2].Line
	if by == nil {
		return
	}
	for i := len(rest) - 1; i >= 0 && rest[i].GroupID == w[n-1].GroupID; i-- {
		if rest[i].Line != nil && rest[i].Line.ID == by.ID {
			w[n-1] = rest[i]
			return
		}
	}
}

// IsJunction reports whether the train changes to another of its lines at
// s: the full list holds records of s under two different lines and both
// lines belong to the train type.
func IsJunction(all []transit.Station, s transit.Station, tt *transit.TrainType) bool {
	seen := map[int]bool{}
	for _, r := range all {
		if r.GroupID != s.GroupID || r.Line == nil {
			continue
		}
		seen[r.Line.ID] = true
	}
	if len(seen) < 2 {
		return false
	}
	if tt == nil || len(tt.Lines) == 0 {
		return true
	}
	runs := 0
	for _, l := range tt.Lines {
		if seen[l.ID] {
			runs++
		}
	}
	return runs >= 2
}
