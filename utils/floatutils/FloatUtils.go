// Package floatutils provides utilities for working with floats
package floatutils

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

// Clip clips a floating point to within a minimum and maximum value.
// If the floating point exceeds max, then the function returns the max
// If min exceeds the floating point, then the function returns the min
func Clip(value, min, max float64) float64 {
	clipped := math.Min(value, max)
	return math.Max(clipped, min)
}

// ClipInterval is a wrapper to use Clip with an r1.Interval instead of
// a separate max and min value
func ClipInterval(value float64, interval r1.Interval) float64 {
	return Clip(value, interval.Min, interval.Max)
}

// ClipVec returns a copy of v with each element clipped to interval
func ClipVec(v mat.Vector, interval r1.Interval) *mat.VecDense {
	clipped := mat.NewVecDense(v.Len(), nil)
	for i := 0; i < v.Len(); i++ {
		clipped.SetVec(i, ClipInterval(v.AtVec(i), interval))
	}
	return clipped
}

// Wrap wraps x so that it lies in [min, max)
func Wrap(x, min, max float64) float64 {
	diff := max - min
	for x >= max {
		x -= diff
	}
	for x < min {
		x += diff
	}
	return x
}

// Sign returns 1.0 for non-negative values and -1.0 otherwise
func Sign(x float64) float64 {
	if x < 0.0 {
		return -1.0
	}
	return 1.0
}
