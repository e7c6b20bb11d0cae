package kick

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/samuelfneumann/humanoidkick/utils/floatutils"
)

// BallKineticEnergy returns the translational kinetic energy of a ball
// of mass m moving with velocity v: ½·m·‖v‖².
func BallKineticEnergy(m float64, v r3.Vec) float64 {
	return 0.5 * m * r3.Norm2(v)
}

// Uprightness maps upDot linearly from [uprightMin, 1] onto [0, 1].
// Values at or below uprightMin map to 0 and values at or above 1 map
// to 1, so the result stays in [0, 1] even when floating point error
// pushes upDot slightly above 1. A uprightMin of 1 or more leaves no
// range to map and always yields 0.
func Uprightness(upDot, uprightMin float64) float64 {
	if uprightMin >= 1.0 || upDot <= uprightMin {
		return 0.0
	}
	return floatutils.Clip((upDot-uprightMin)/(1.0-uprightMin), 0.0, 1.0)
}

// ApproachReward returns exp(-alpha * dist), which lies in (0, 1] for
// non-negative distances and grows as the kicking foot nears the ball.
func ApproachReward(dist, alpha float64) float64 {
	return math.Exp(-alpha * dist)
}

// PowerReward compresses an injected energy deltaE with
// log1p(logK * deltaE). Non-positive deltas earn nothing.
func PowerReward(deltaE, logK float64) float64 {
	if deltaE <= 0.0 {
		return 0.0
	}
	return math.Log1p(logK * deltaE)
}
