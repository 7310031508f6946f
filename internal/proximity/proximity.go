// Package proximity turns a location fix into arrived / approaching flags.
//
// Evaluate is pure: every call scores a fresh copy of the station list and
// keeps nothing between ticks.
package proximity

import (
	"sort"

	"virtual-conductor/internal/geo"
	"virtual-conductor/internal/threshold"
	"virtual-conductor/internal/transit"
)

type Input struct {
	Stations    []transit.Station
	Location    transit.Location
	Line        *transit.Line
	NextStation *transit.Station // the next station already on screen
}

type Result struct {
	Arrived     bool
	Approaching bool
	// Refresh is set when the nearest station is close enough to become the
	// authoritative current station. Between stations it stays false so the
	// display does not flap.
	Refresh     bool
	BadAccuracy bool
	Scored      []transit.Station // ascending by distance
	Nearest     *transit.Station
}

// Score returns new station records carrying the distance to c, sorted
// ascending. Stations without coordinates sort last. The input slice is not
// modified.
func Score(stations []transit.Station, c transit.Coordinate) []transit.Station {
	scored := make([]transit.Station, len(stations))
	for i, s := range stations {
		scored[i] = s.WithDistance(geo.Distance(c, s.Coordinate))
	}
	sort.SliceStable(scored, func(i, j int) bool {
		vi, vj := scored[i].Coordinate.Valid(), scored[j].Coordinate.Valid()
		if vi != vj {
			return vi
		}
		return scored[i].Distance < scored[j].Distance
	})
	return scored
}

// Evaluate returns the zero Result when the fix or every station lacks a
// position: a distance of 0 there means unknown, not arrived.
func Evaluate(in Input) Result {
	if in.Line == nil || len(in.Stations) == 0 || !in.Location.Coordinate.Valid() {
		return Result{}
	}
	th := threshold.For(in.Line.LineType)
	scored := Score(in.Stations, in.Location.Coordinate)
	nearest := scored[0]
	if !nearest.Coordinate.Valid() {
		return Result{}
	}

	res := Result{
		Scored:      scored,
		Nearest:     &nearest,
		BadAccuracy: threshold.BadAccuracy(in.Location.Accuracy, in.Line.LineType),
	}
	res.Arrived = nearest.Distance < th.Arrive
	res.Refresh = res.Arrived

	if in.NextStation != nil && in.NextStation.Coordinate.Valid() {
		next := in.NextStation.WithDistance(geo.Distance(in.Location.Coordinate, in.NextStation.Coordinate))
		res.Approaching = next.Distance < th.Approach && nearest.SameStop(next)
	}
	return res
}
