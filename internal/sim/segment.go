package sim

import (
	"virtual-conductor/internal/geo"
	"virtual-conductor/internal/transit"
	"virtual-conductor/internal/window"
)

// Segment is the run between two consecutive stopping stations. Path
// includes the stations passed on the way.
type Segment struct {
	From    transit.Station
	To      transit.Station
	Path    []transit.Coordinate
	Length  float64   // metres, summed pairwise over Path
	Profile []float64 // metres per 1 Hz tick
}

type SegmentOptions struct {
	Line      *transit.Line
	TrainType *transit.TrainType
	Accel     float64
	Decel     float64
	Holiday   bool
}

// BuildSegments splits stations (already oriented in the travel direction)
// at every stopping station. Stations without a coordinate are skipped.
func BuildSegments(stations []transit.Station, o SegmentOptions) []Segment {
	accel, decel := o.Accel, o.Decel
	if accel <= 0 {
		accel = DefaultAccel
	}
	if decel <= 0 {
		decel = DefaultDecel
	}
	vmax := MaxSpeed(o.Line, o.TrainType)

	var (
		segs []Segment
		cur  *Segment
	)
	for _, s := range stations {
		if !s.Coordinate.Valid() {
			continue
		}
		pass := window.IsPass(s, o.Holiday)
		if cur == nil {
			if pass {
				continue
			}
			cur = &Segment{From: s, Path: []transit.Coordinate{s.Coordinate}}
			continue
		}
		cur.Path = append(cur.Path, s.Coordinate)
		if pass {
			continue
		}
		cur.To = s
		cur.Length = geo.PathLength(cur.Path)
		cur.Profile = SpeedProfile(cur.Length, vmax, accel, decel)
		segs = append(segs, *cur)
		cur = &Segment{From: s, Path: []transit.Coordinate{s.Coordinate}}
	}
	return segs
}
