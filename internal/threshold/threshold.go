// Package threshold holds the per vehicle class arrival/approach distances.
package threshold

import "virtual-conductor/internal/transit"

// Base distances for an ordinary train, in metres.
const (
	approachNormal = 1000.0
	arriveNormal   = 200.0
)

type Thresholds struct {
	Approach float64 // metres
	Arrive   float64 // metres
}

// For returns the thresholds for a line type. Unknown types get normal values.
func For(lt transit.LineType) Thresholds {
	switch lt {
	case transit.LineTypeBulletTrain:
		return Thresholds{Approach: approachNormal * 10, Arrive: arriveNormal * 2}
	case transit.LineTypeSubway:
		return Thresholds{Approach: approachNormal * 2, Arrive: arriveNormal * 2}
	case transit.LineTypeTram, transit.LineTypeMonorailOrAGT:
		return Thresholds{Approach: approachNormal * 0.5, Arrive: arriveNormal * 0.5}
	default:
		return Thresholds{Approach: approachNormal, Arrive: arriveNormal}
	}
}

func Approach(lt transit.LineType) float64 { return For(lt).Approach }
func Arrive(lt transit.LineType) float64   { return For(lt).Arrive }

// BadAccuracy reports a fix too coarse to tell arrival apart: its radius
// exceeds the arrive threshold. A missing accuracy is not bad.
func BadAccuracy(accuracy *float64, lt transit.LineType) bool {
	if accuracy == nil {
		return false
	}
	return *accuracy > Arrive(lt)
}
