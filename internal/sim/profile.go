package sim

import (
	"math"

	"virtual-conductor/internal/transit"
)

// Default traction figures, m/s².
const (
	DefaultAccel = 3.0 / 3.6 // 3.0 km/h/s
	DefaultDecel = 3.5 / 3.6 // 3.5 km/h/s
)

func kmh(v float64) float64 { return v / 3.6 }

var maxSpeedByLineType = map[transit.LineType]float64{
	transit.LineTypeNormal:        kmh(100),
	transit.LineTypeSubway:        kmh(80),
	transit.LineTypeTram:          kmh(40),
	transit.LineTypeMonorailOrAGT: kmh(60),
	transit.LineTypeBulletTrain:   kmh(285),
	transit.LineTypeOther:         kmh(90),
}

var (
	bulletTrainCap    = kmh(285)
	limitedExpressCap = kmh(130)
	highSpeedRapidCap = kmh(120)
)

// MaxSpeed picks the cruise speed in m/s. Bullet trains always use their
// own cap; limited express and high speed rapid classes have fixed caps
// regardless of line type; everything else follows the line type.
func MaxSpeed(line *transit.Line, tt *transit.TrainType) float64 {
	lt := transit.LineTypeNormal
	if line != nil {
		lt = line.LineType
	}
	if lt == transit.LineTypeBulletTrain {
		return bulletTrainCap
	}
	if tt != nil {
		switch tt.Kind {
		case transit.KindLimitedExpress:
			return limitedExpressCap
		case transit.KindHighSpeedRapid:
			return highSpeedRapidCap
		}
	}
	if v, ok := maxSpeedByLineType[lt]; ok {
		return v
	}
	return maxSpeedByLineType[transit.LineTypeNormal]
}

// SpeedProfile builds a 1 Hz trapezoidal speed profile covering distance
// metres: accelerate at accel up to maxSpeed, cruise, brake at decel. When
// the segment is too short to reach maxSpeed the profile is a triangle.
// Samples are rescaled so their sum equals distance exactly; each sample
// is the metres travelled during that second.
func SpeedProfile(distance, maxSpeed, accel, decel float64) []float64 {
	if distance <= 0 || maxSpeed <= 0 || accel <= 0 || decel <= 0 {
		return nil
	}
	peak := maxSpeed
	tAcc := peak / accel
	tDec := peak / decel
	dAcc := 0.5 * accel * tAcc * tAcc
	dDec := 0.5 * decel * tDec * tDec
	cruise := 0.0
	if dAcc+dDec > distance {
		peak = math.Sqrt(2 * distance * accel * decel / (accel + decel))
		tAcc = peak / accel
		tDec = peak / decel
	} else {
		cruise = (distance - dAcc - dDec) / maxSpeed
	}

	n := int(math.Ceil(tAcc + cruise + tDec))
	if n < 1 {
		n = 1
	}
	profile := make([]float64, n)
	sum := 0.0
	for i := range profile {
		t := float64(i) + 0.5
		var v float64
		switch {
		case t < tAcc:
			v = accel * t
		case t < tAcc+cruise:
			v = peak
		default:
			v = peak - decel*(t-tAcc-cruise)
		}
		if v < 0 {
			v = 0
		}
		profile[i] = v
		sum += v
	}
	if sum <= 0 {
		return nil
	}
	scale := distance / sum
	for i := range profile {
		profile[i] *= scale
	}
	return profile
}
