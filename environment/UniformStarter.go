package environment

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/stat/distmv"
)

// UniformStarter samples starting states uniformly from a box given by
// one interval per feature
type UniformStarter struct {
	features int
	seed     uint64
	bounds   []r1.Interval
	rand     *distmv.Uniform
}

// NewUniformStarter returns a new UniformStarter sampling feature i
// from bounds[i]
func NewUniformStarter(bounds []r1.Interval, seed uint64) UniformStarter {
	source := rand.NewSource(seed)
	rand := distmv.NewUniform(bounds, source)

	return UniformStarter{len(bounds), seed, bounds, rand}
}

// Start returns a starting state vector
func (u UniformStarter) Start() *mat.VecDense {
	return mat.NewVecDense(u.features, u.rand.Rand(nil))
}

// Bounds returns the interval each feature is sampled from
func (u UniformStarter) Bounds() []r1.Interval {
	bounds := make([]r1.Interval, len(u.bounds))
	copy(bounds, u.bounds)
	return bounds
}

// Seed returns the seed of the UniformStarter's source
func (u UniformStarter) Seed() uint64 {
	return u.seed
}
