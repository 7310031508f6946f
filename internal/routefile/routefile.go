// Package routefile reads a route graph from a JSON document shaped like
// transit.Route.
package routefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"virtual-conductor/internal/transit"
)

var ErrNoStations = errors.New("route has no stations")

func Load(path string) (transit.Route, error) {
	f, err := os.Open(path)
	if err != nil {
		return transit.Route{}, fmt.Errorf("open route file: %w", err)
	}
	defer f.Close()
	r, err := Decode(f)
	if err != nil {
		return transit.Route{}, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Decode parses and normalizes a route. Missing group ids default to the
// station id, stations without a line are listed under the route line, and
// every station shares the route's train type.
func Decode(r io.Reader) (transit.Route, error) {
	var route transit.Route
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&route); err != nil {
		return transit.Route{}, fmt.Errorf("parse route: %w", err)
	}
	if len(route.Stations) == 0 {
		return transit.Route{}, ErrNoStations
	}
	if route.Line.LineType == "" {
		route.Line.LineType = transit.LineTypeNormal
	}
	if route.Line.TransportType == "" {
		route.Line.TransportType = transit.TransportRail
	}
	if route.TrainType != nil {
		route.Line.TrainType = route.TrainType
	}

	seen := map[int]bool{}
	for i := range route.Stations {
		st := &route.Stations[i]
		if st.ID == 0 {
			return transit.Route{}, fmt.Errorf("station %d (%s): missing id", i, st.Name)
		}
		if seen[st.ID] {
			return transit.Route{}, fmt.Errorf("station %d: duplicate id %d", i, st.ID)
		}
		seen[st.ID] = true
		if st.GroupID == 0 {
			st.GroupID = st.ID
		}
		if st.StopCondition == "" {
			st.StopCondition = transit.StopAll
		}
		if st.Line == nil {
			l := route.Line
			st.Line = &l
		}
		st.TrainType = route.TrainType
	}
	return route, nil
}
