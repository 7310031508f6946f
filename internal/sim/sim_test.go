package sim

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"virtual-conductor/internal/geo"
	"virtual-conductor/internal/transit"
)

func TestSpeedProfileSumsToDistance(t *testing.T) {
	cases := []struct {
		name     string
		distance float64
		vmax     float64
	}{
		{"long run reaches cruise", 5000, kmh(100)},
		{"short hop is a triangle", 300, kmh(100)},
		{"tram", 450, kmh(40)},
		{"bullet train", 60000, kmh(285)},
		{"tiny", 3, kmh(80)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := SpeedProfile(tc.distance, tc.vmax, DefaultAccel, DefaultDecel)
			require.NotEmpty(t, p)
			sum := 0.0
			for _, v := range p {
				assert.GreaterOrEqual(t, v, 0.0)
				sum += v
			}
			assert.InDelta(t, tc.distance, sum, 1e-6)
		})
	}
}

func TestSpeedProfileShape(t *testing.T) {
	p := SpeedProfile(5000, kmh(100), DefaultAccel, DefaultDecel)
	peak := 0
	for i, v := range p {
		if v > p[peak] {
			peak = i
		}
	}
	assert.Less(t, p[0], p[peak])
	assert.Less(t, p[len(p)-1], p[peak])
	// roughly 33s to accelerate, so the first samples must be increasing
	for i := 1; i < 10; i++ {
		assert.Greater(t, p[i], p[i-1])
	}
}

func TestSpeedProfileDegenerate(t *testing.T) {
	assert.Empty(t, SpeedProfile(0, kmh(100), DefaultAccel, DefaultDecel))
	assert.Empty(t, SpeedProfile(-5, kmh(100), DefaultAccel, DefaultDecel))
	assert.Empty(t, SpeedProfile(100, 0, DefaultAccel, DefaultDecel))
	assert.Empty(t, SpeedProfile(100, kmh(100), 0, DefaultDecel))
}

func TestMaxSpeed(t *testing.T) {
	normal := &transit.Line{LineType: transit.LineTypeNormal}
	tram := &transit.Line{LineType: transit.LineTypeTram}
	bullet := &transit.Line{LineType: transit.LineTypeBulletTrain}
	ltd := &transit.TrainType{Kind: transit.KindLimitedExpress}

	assert.Equal(t, kmh(100), MaxSpeed(normal, nil))
	assert.Equal(t, kmh(40), MaxSpeed(tram, nil))
	assert.Equal(t, limitedExpressCap, MaxSpeed(normal, ltd))
	assert.Equal(t, limitedExpressCap, MaxSpeed(tram, ltd))
	assert.Equal(t, bulletTrainCap, MaxSpeed(bullet, ltd))
	assert.Equal(t, kmh(100), MaxSpeed(nil, nil))
	assert.Equal(t, kmh(100), MaxSpeed(&transit.Line{LineType: "MAGLEV"}, nil))
}

func line3() []transit.Station {
	return []transit.Station{
		{ID: 1, GroupID: 1, NameRoman: "A", Coordinate: transit.LatLon(35.0000, 139.0), StopCondition: transit.StopAll},
		{ID: 2, GroupID: 2, NameRoman: "B", Coordinate: transit.LatLon(35.0100, 139.0), StopCondition: transit.StopNot},
		{ID: 3, GroupID: 3, NameRoman: "C", Coordinate: transit.LatLon(35.0200, 139.0), StopCondition: transit.StopAll},
		{ID: 4, GroupID: 4, NameRoman: "D", StopCondition: transit.StopAll}, // no coordinate
		{ID: 5, GroupID: 5, NameRoman: "E", Coordinate: transit.LatLon(35.0250, 139.0), StopCondition: transit.StopAll},
	}
}

func TestBuildSegmentsFoldsPassStations(t *testing.T) {
	segs := BuildSegments(line3(), SegmentOptions{Line: &transit.Line{LineType: transit.LineTypeNormal}})
	require.Len(t, segs, 2)
	assert.Equal(t, 1, segs[0].From.GroupID)
	assert.Equal(t, 3, segs[0].To.GroupID)
	assert.Len(t, segs[0].Path, 3)
	assert.Equal(t, 5, segs[1].To.GroupID)

	want := geo.PathLength(segs[0].Path)
	assert.InDelta(t, want, segs[0].Length, 1e-9)
	sum := 0.0
	for _, v := range segs[0].Profile {
		sum += v
	}
	assert.InDelta(t, segs[0].Length, sum, 1e-6)
}

func TestSimulatorWalksAndResets(t *testing.T) {
	segs := BuildSegments(line3(), SegmentOptions{Line: &transit.Line{LineType: transit.LineTypeNormal}})
	s := New(segs).WithClock(func() time.Time { return time.Unix(0, 0) })
	start := s.Position()
	require.True(t, start.Valid())

	// first tick moves off the origin toward B
	loc := s.Tick()
	assert.Greater(t, geo.Distance(start.Coordinate, loc.Coordinate), 0.0)
	assert.Equal(t, 0, s.Segment())

	for s.Segment() == 0 {
		s.Tick()
	}
	assert.InDelta(t, 0, geo.Distance(s.Position().Coordinate, segs[0].To.Coordinate), 1e-6)

	total := len(segs[0].Profile) + len(segs[1].Profile)
	s = New(segs)
	for i := 0; i < total; i++ {
		loc = s.Tick()
	}
	// the terminus itself is reported before the run starts over
	last := segs[len(segs)-1]
	assert.InDelta(t, 0, geo.Distance(loc.Coordinate, last.To.Coordinate), 1e-6)
	assert.Equal(t, len(segs)-1, s.Segment())
	assert.Zero(t, s.Speed())

	loc = s.Tick()
	assert.Equal(t, 0, s.Segment(), "wraps back to the first segment")
	assert.Equal(t, 0, s.Sample())
	assert.InDelta(t, 0, geo.Distance(loc.Coordinate, segs[0].From.Coordinate), 1e-6)

	loc = s.Tick()
	assert.Greater(t, geo.Distance(segs[0].From.Coordinate, loc.Coordinate), 0.0, "moving again")
}

func TestSimulatorTravelsSegmentLength(t *testing.T) {
	segs := BuildSegments(line3(), SegmentOptions{Line: &transit.Line{LineType: transit.LineTypeSubway}})
	s := New(segs)
	prev := s.Position().Coordinate
	travelled := 0.0
	for i := 0; i < len(segs[0].Profile)-1; i++ {
		loc := s.Tick()
		travelled += geo.Distance(prev, loc.Coordinate)
		prev = loc.Coordinate
	}
	// everything but the final sample, within a few metres of turn slack
	last := segs[0].Profile[len(segs[0].Profile)-1]
	assert.InDelta(t, segs[0].Length-last, travelled, 20)
}

func TestSimulatorEmpty(t *testing.T) {
	s := New(nil)
	assert.NotPanics(t, func() { s.Tick() })
	assert.False(t, s.Tick().Valid())
}

func TestTrackGeoJSON(t *testing.T) {
	segs := BuildSegments(line3(), SegmentOptions{})
	b, err := New(segs).TrackGeoJSON()
	require.NoError(t, err)

	var doc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type string `json:"type"`
			} `json:"geometry"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(b, &doc))
	assert.Equal(t, "FeatureCollection", doc.Type)
	// two lines plus three stopping stations
	assert.Len(t, doc.Features, 5)
	assert.Equal(t, "LineString", doc.Features[0].Geometry.Type)
	assert.Equal(t, "Point", doc.Features[1].Geometry.Type)
}

func TestRunnerDeliversTicks(t *testing.T) {
	segs := BuildSegments(line3(), SegmentOptions{})
	var n atomic.Int32
	r := NewRunner(New(segs), 10*time.Millisecond, 1, func(context.Context, transit.Location) { n.Add(1) }, nil)
	r.Start(context.Background())
	assert.Eventually(t, func() bool { return n.Load() >= 3 }, time.Second, 5*time.Millisecond)
	r.Stop()
}
