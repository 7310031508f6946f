// Package geo holds the distance math used by the proximity engine and
// the motion simulator.
package geo

import (
	"math"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"

	"virtual-conductor/internal/transit"
)

// GRS80 parameters for the short-distance ellipsoidal approximation.
const (
	semiMajorAxis  = 6378137.0
	eccentricitySq = 0.00669438002301188
	meridianNumer  = 6335439.32708317 // a(1-e²)
)

func toRad(deg float64) float64 { return deg * math.Pi / 180 }

// Distance returns the metres between a and b. Missing components yield 0.
func Distance(a, b transit.Coordinate) float64 {
	if !a.Valid() || !b.Valid() {
		return 0
	}
	lat1, lon1 := toRad(*a.Latitude), toRad(*a.Longitude)
	lat2, lon2 := toRad(*b.Latitude), toRad(*b.Longitude)

	dLat := lat1 - lat2
	dLon := lon1 - lon2
	latAvg := (lat1 + lat2) / 2

	sinLat := math.Sin(latAvg)
	w := 1 - eccentricitySq*sinLat*sinLat
	m := meridianNumer / math.Pow(w, 1.5)
	n := semiMajorAxis / math.Sqrt(w)

	dy := m * dLat
	dx := n * math.Cos(latAvg) * dLon
	d := math.Sqrt(dy*dy + dx*dx)
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return 0
	}
	return d
}

// PathLength sums Distance over consecutive points.
func PathLength(path []transit.Coordinate) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += Distance(path[i-1], path[i])
	}
	return total
}

// ToPoint converts to an orb.Point (lon, lat). ok is false when a side is missing.
func ToPoint(c transit.Coordinate) (orb.Point, bool) {
	if !c.Valid() {
		return orb.Point{}, false
	}
	return orb.Point{*c.Longitude, *c.Latitude}, true
}

// FromPoint converts an orb.Point back to a Coordinate.
func FromPoint(p orb.Point) transit.Coordinate {
	return transit.LatLon(p.Lat(), p.Lon())
}

// Bearing returns the initial bearing in degrees [0, 360) from a to b.
func Bearing(a, b transit.Coordinate) float64 {
	pa, ok1 := ToPoint(a)
	pb, ok2 := ToPoint(b)
	if !ok1 || !ok2 {
		return 0
	}
	brng := orbgeo.Bearing(pa, pb)
	if brng < 0 {
		brng += 360
	}
	return brng
}

// Advance moves from c by meters along bearing (degrees).
func Advance(c transit.Coordinate, bearing, meters float64) transit.Coordinate {
	p, ok := ToPoint(c)
	if !ok {
		return c
	}
	return FromPoint(orbgeo.PointAtBearingAndDistance(p, bearing, meters))
}
