// Package sim drives the conductor without live GPS: it replays a train
// running between stations with a trapezoidal speed profile at 1 Hz.
package sim

import (
	"time"

	geojson "github.com/paulmach/go.geojson"

	"virtual-conductor/internal/geo"
	"virtual-conductor/internal/transit"
)

// simulatedAccuracy is reported with every synthetic fix, metres.
const simulatedAccuracy = 5.0

// Simulator walks a synthetic coordinate along the segments. It is not safe
// for concurrent use.
type Simulator struct {
	segments []Segment

	seg      int // current segment
	sample   int // index into the segment's profile
	waypoint int // next path point to head for

	pos     transit.Coordinate
	bearing float64
	speed   float64 // m/s during the last tick
	atEnd   bool    // the last fix was the final terminus

	now func() time.Time
}

func New(segments []Segment) *Simulator {
	s := &Simulator{segments: segments, now: time.Now}
	s.reset()
	return s
}

// WithClock replaces the timestamp source, for tests.
func (s *Simulator) WithClock(now func() time.Time) *Simulator {
	s.now = now
	return s
}

func (s *Simulator) reset() {
	s.seg, s.sample, s.waypoint = 0, 0, 1
	s.atEnd = false
	if len(s.segments) > 0 {
		s.pos = s.segments[0].From.Coordinate
	}
}

// Position reports the current synthetic fix without advancing.
func (s *Simulator) Position() transit.Location {
	acc := simulatedAccuracy
	return transit.Location{Coordinate: s.pos, Accuracy: &acc, Timestamp: s.now()}
}

func (s *Simulator) Segment() int   { return s.seg }
func (s *Simulator) Sample() int    { return s.sample }
func (s *Simulator) Speed() float64 { return s.speed }

func (s *Simulator) Bearing() float64 { return s.bearing }

// Tick advances one second and returns the new fix. The final terminus is
// reported once; the tick after it starts the run over from the first
// segment.
func (s *Simulator) Tick() transit.Location {
	if len(s.segments) == 0 {
		return s.Position()
	}
	if s.atEnd {
		s.reset()
		return s.Position()
	}
	cur := s.segments[s.seg]
	if s.sample < len(cur.Profile) {
		meters := cur.Profile[s.sample]
		s.speed = meters
		s.walk(cur.Path, meters)
		s.sample++
	}
	if s.sample >= len(cur.Profile) {
		s.pos = cur.To.Coordinate
		s.speed = 0
		if s.seg == len(s.segments)-1 {
			s.atEnd = true
			return s.Position()
		}
		s.seg++
		s.sample, s.waypoint = 0, 1
	}
	return s.Position()
}

// walk moves meters along path, turning at each waypoint.
func (s *Simulator) walk(path []transit.Coordinate, meters float64) {
	for meters > 0 && s.waypoint < len(path) {
		target := path[s.waypoint]
		d := geo.Distance(s.pos, target)
		if d <= meters {
			s.pos = target
			meters -= d
			s.waypoint++
			continue
		}
		s.bearing = geo.Bearing(s.pos, target)
		s.pos = geo.Advance(s.pos, s.bearing, meters)
		meters = 0
	}
}

// TrackGeoJSON renders every segment path as a LineString and every
// station as a Point.
func (s *Simulator) TrackGeoJSON() ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	for i, seg := range s.segments {
		coords := make([][]float64, 0, len(seg.Path))
		for _, c := range seg.Path {
			if p, ok := geo.ToPoint(c); ok {
				coords = append(coords, []float64{p.Lon(), p.Lat()})
			}
		}
		line := geojson.NewLineStringFeature(coords)
		line.SetProperty("segment", i)
		line.SetProperty("from", seg.From.NameRoman)
		line.SetProperty("to", seg.To.NameRoman)
		line.SetProperty("lengthMeters", seg.Length)
		line.SetProperty("seconds", len(seg.Profile))
		fc.AddFeature(line)

		if i == 0 {
			fc.AddFeature(stationFeature(seg.From))
		}
		fc.AddFeature(stationFeature(seg.To))
	}
	return fc.MarshalJSON()
}

func stationFeature(st transit.Station) *geojson.Feature {
	p, _ := geo.ToPoint(st.Coordinate)
	f := geojson.NewPointFeature([]float64{p.Lon(), p.Lat()})
	f.SetProperty("id", st.ID)
	f.SetProperty("groupId", st.GroupID)
	f.SetProperty("name", st.Name)
	f.SetProperty("nameRoman", st.NameRoman)
	return f
}
