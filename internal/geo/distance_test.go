package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"virtual-conductor/internal/transit"
)

var (
	shibuya   = transit.LatLon(35.658034, 139.701636)
	shinjuku  = transit.LatLon(35.690921, 139.700258)
	tokyo     = transit.LatLon(35.681236, 139.767125)
	shinOsaka = transit.LatLon(34.733165, 135.500214)
)

func TestDistanceSameCoordinateIsZero(t *testing.T) {
	for _, c := range []transit.Coordinate{shibuya, shinjuku, tokyo, shinOsaka} {
		assert.Zero(t, Distance(c, c))
	}
}

func TestDistanceSymmetric(t *testing.T) {
	pairs := [][2]transit.Coordinate{
		{shibuya, shinjuku},
		{tokyo, shinOsaka},
		{shinjuku, tokyo},
	}
	for _, p := range pairs {
		assert.InDelta(t, Distance(p[0], p[1]), Distance(p[1], p[0]), 1e-9)
	}
}

func TestDistanceKnownPair(t *testing.T) {
	// Shibuya -> Shinjuku is roughly 3.65 km.
	d := Distance(shibuya, shinjuku)
	assert.InDelta(t, 3650, d, 50)
}

func TestDistanceMissingComponentIsZero(t *testing.T) {
	lat := 35.0
	cases := []struct {
		name string
		a, b transit.Coordinate
	}{
		{"nil latitude", transit.Coordinate{Longitude: &lat}, shibuya},
		{"nil longitude", shibuya, transit.Coordinate{Latitude: &lat}},
		{"both empty", transit.Coordinate{}, transit.Coordinate{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, 0.0, Distance(tc.a, tc.b))
		})
	}
}

func TestPathLength(t *testing.T) {
	path := []transit.Coordinate{shibuya, shinjuku, tokyo}
	want := Distance(shibuya, shinjuku) + Distance(shinjuku, tokyo)
	assert.InDelta(t, want, PathLength(path), 1e-9)
	assert.Zero(t, PathLength(path[:1]))
	assert.Zero(t, PathLength(nil))
}

func TestAdvanceMovesTowardTarget(t *testing.T) {
	brng := Bearing(shibuya, shinjuku)
	before := Distance(shibuya, shinjuku)
	next := Advance(shibuya, brng, 500)
	after := Distance(next, shinjuku)
	assert.InDelta(t, before-500, after, 15)
	assert.Equal(t, transit.Coordinate{}, Advance(transit.Coordinate{}, brng, 500))
}
