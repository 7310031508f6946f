package proximity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"virtual-conductor/internal/geo"
	"virtual-conductor/internal/transit"
)

const originLat, originLon = 35.0, 139.0

// northOf places a coordinate the given metres due north of the origin.
func northOf(meters float64) transit.Coordinate {
	return geo.Advance(transit.LatLon(originLat, originLon), 0, meters)
}

// station builds a station exactly `meters` (ellipsoidal) north of the origin.
func station(id, group int, meters float64) transit.Station {
	c := northOf(meters)
	// correct for the sphere/ellipsoid difference so Distance is exact enough
	actual := geo.Distance(transit.LatLon(originLat, originLon), c)
	if actual > 0 {
		c = northOf(meters * meters / actual)
	}
	return transit.Station{ID: id, GroupID: group, Coordinate: c, StopCondition: transit.StopAll}
}

func here() transit.Location {
	return transit.Location{Coordinate: transit.LatLon(originLat, originLon)}
}

func TestArrivedNormalLine(t *testing.T) {
	line := &transit.Line{ID: 1, LineType: transit.LineTypeNormal}

	res := Evaluate(Input{
		Stations: []transit.Station{station(1, 10, 150), station(2, 20, 3000)},
		Location: here(),
		Line:     line,
	})
	require.NotNil(t, res.Nearest)
	assert.InDelta(t, 150, res.Nearest.Distance, 1)
	assert.True(t, res.Arrived)
	assert.True(t, res.Refresh)

	res = Evaluate(Input{
		Stations: []transit.Station{station(1, 10, 250), station(2, 20, 3000)},
		Location: here(),
		Line:     line,
	})
	assert.False(t, res.Arrived)
	assert.False(t, res.Refresh)
}

func TestApproachingBulletTrain(t *testing.T) {
	line := &transit.Line{ID: 2, LineType: transit.LineTypeBulletTrain}

	next := station(5, 50, 9000)
	res := Evaluate(Input{
		Stations:    []transit.Station{next, station(6, 60, 40000)},
		Location:    here(),
		Line:        line,
		NextStation: &next,
	})
	assert.True(t, res.Approaching)
	assert.False(t, res.Arrived)

	far := station(5, 50, 11000)
	res = Evaluate(Input{
		Stations:    []transit.Station{far, station(6, 60, 40000)},
		Location:    here(),
		Line:        line,
		NextStation: &far,
	})
	assert.False(t, res.Approaching)
}

func TestApproachingRequiresNearestToBeNext(t *testing.T) {
	line := &transit.Line{ID: 3, LineType: transit.LineTypeNormal}
	junction := station(7, 70, 100)
	next := station(8, 80, 300)

	res := Evaluate(Input{
		Stations:    []transit.Station{junction, next},
		Location:    here(),
		Line:        line,
		NextStation: &next,
	})
	assert.Equal(t, 70, res.Nearest.GroupID)
	assert.False(t, res.Approaching)
}

func TestScoreDoesNotMutateInput(t *testing.T) {
	in := []transit.Station{station(1, 1, 900), station(2, 2, 100)}
	scored := Score(in, here().Coordinate)
	assert.Zero(t, in[0].Distance)
	assert.Zero(t, in[1].Distance)
	assert.Equal(t, 2, scored[0].ID)
}

func TestMissingLineOrStations(t *testing.T) {
	assert.Equal(t, Result{}, Evaluate(Input{Stations: []transit.Station{station(1, 1, 10)}, Location: here()}))
	assert.Equal(t, Result{}, Evaluate(Input{Line: &transit.Line{}, Location: here()}))
}

func TestBadAccuracyFlag(t *testing.T) {
	acc := 500.0
	loc := here()
	loc.Accuracy = &acc
	res := Evaluate(Input{
		Stations: []transit.Station{station(1, 1, 50)},
		Location: loc,
		Line:     &transit.Line{LineType: transit.LineTypeNormal},
	})
	assert.True(t, res.BadAccuracy)
	assert.True(t, res.Arrived)
}

func TestFixWithoutPositionIsNotAnArrival(t *testing.T) {
	st := []transit.Station{station(1, 10, 0), station(2, 20, 100)}
	res := Evaluate(Input{
		Stations:    st,
		Location:    transit.Location{},
		Line:        &transit.Line{LineType: transit.LineTypeNormal},
		NextStation: &st[1],
	})
	assert.Equal(t, Result{}, res)
	assert.Nil(t, res.Nearest)
	assert.False(t, res.Arrived)
	assert.False(t, res.Refresh)
	assert.False(t, res.Approaching)
}

func TestStationsWithoutPositionSortLast(t *testing.T) {
	unplaced := transit.Station{ID: 9, GroupID: 90}
	line := &transit.Line{LineType: transit.LineTypeNormal}

	res := Evaluate(Input{
		Stations: []transit.Station{unplaced, station(1, 10, 600)},
		Location: here(),
		Line:     line,
	})
	require.NotNil(t, res.Nearest)
	assert.Equal(t, 1, res.Nearest.ID)
	assert.False(t, res.Arrived)
	assert.Equal(t, 9, res.Scored[1].ID)

	res = Evaluate(Input{Stations: []transit.Station{unplaced}, Location: here(), Line: line})
	assert.Equal(t, Result{}, res)
}
