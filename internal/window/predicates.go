package window

import (
	"virtual-conductor/internal/loop"
	"virtual-conductor/internal/transit"
)

// IsPass reports a station the train runs through. Weekday and holiday
// stops are skipped on the other kind of day.
func IsPass(s transit.Station, holiday bool) bool {
	switch s.StopCondition {
	case transit.StopNot:
		return true
	case transit.StopWeekday:
		return holiday
	case transit.StopHoliday:
		return !holiday
	default:
		return false
	}
}

// IsTerminus reports whether s is the first or last stop of the unfolded
// list. Full loops have no terminus.
func IsTerminus(s *transit.Station, all []transit.Station, kind loop.Kind) bool {
	if s == nil || len(all) == 0 || kind == loop.Full {
		return false
	}
	return all[0].GroupID == s.GroupID || all[len(all)-1].GroupID == s.GroupID
}

// Between returns the stations strictly between from and to in w. Either
// end missing from w yields an empty result.
func Between(w []transit.Station, from, to *transit.Station) []transit.Station {
	if from == nil || to == nil {
		return nil
	}
	i := loop.IndexOfGroup(w, from.GroupID)
	j := loop.IndexOfGroup(w, to.GroupID)
	if i < 0 || j < 0 || j-i < 2 {
		return nil
	}
	out := make([]transit.Station, j-i-1)
	copy(out, w[i+1:j])
	return out
}

// NextStopping returns the first station after current in w the train
// stops at.
func NextStopping(w []transit.Station, current *transit.Station, holiday bool) *transit.Station {
	start := 0
	if current != nil {
		if i := loop.IndexOfGroup(w, current.GroupID); i >= 0 {
			start = i + 1
		}
	}
	for i := start; i < len(w); i++ {
		if !IsPass(w[i], holiday) {
			s := w[i]
			return &s
		}
	}
	return nil
}

// AfterNextStopping is the stopping station after next.
func AfterNextStopping(w []transit.Station, next *transit.Station, holiday bool) *transit.Station {
	if next == nil || loop.IndexOfGroup(w, next.GroupID) < 0 {
		return nil
	}
	return NextStopping(w, next, holiday)
}

// TransferLines lists the lines reachable at next, leaving out the current
// line and every line the train itself runs on.
func TransferLines(next *transit.Station, current *transit.Line, tt *transit.TrainType) []transit.Line {
	if next == nil {
		return nil
	}
	skip := map[int]bool{}
	if current != nil {
		skip[current.ID] = true
	}
	if tt != nil {
		for _, l := range tt.Lines {
			skip[l.ID] = true
		}
	}
	var out []transit.Line
	for _, l := range next.Lines {
		if skip[l.ID] {
			continue
		}
		skip[l.ID] = true
		out = append(out, l)
	}
	return out
}

// ConnectedLines lists the lines the train runs onto after current, in
// travel order. Train type lines are stored in inbound order.
func ConnectedLines(tt *transit.TrainType, current *transit.Line, dir transit.Direction) []transit.Line {
	if tt == nil || current == nil || len(tt.Lines) < 2 {
		return nil
	}
	idx := -1
	for i, l := range tt.Lines {
		if l.ID == current.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	var out []transit.Line
	if dir == transit.Outbound {
		for i := idx - 1; i >= 0; i-- {
			out = append(out, tt.Lines[i])
		}
		return out
	}
	return append(out, tt.Lines[idx+1:]...)
}
