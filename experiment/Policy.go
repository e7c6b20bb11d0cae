package experiment

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	env "github.com/samuelfneumann/humanoidkick/environment"
	ts "github.com/samuelfneumann/humanoidkick/timestep"
)

// Policy selects actions in an environment
type Policy interface {
	SelectAction(t ts.TimeStep) *mat.VecDense
}

// Uniform is a Policy which selects each action dimension uniformly at
// random within the bounds of an action specification
type Uniform struct {
	dists []distuv.Uniform
}

// NewUniform returns a new Uniform policy over the action spec a,
// seeded with seed
func NewUniform(a env.Spec, seed uint64) *Uniform {
	src := rand.NewSource(seed)

	dists := make([]distuv.Uniform, a.Len())
	for i := range dists {
		dists[i] = distuv.Uniform{
			Min: a.LowerBound.AtVec(i),
			Max: a.UpperBound.AtVec(i),
			Src: src,
		}
	}
	return &Uniform{dists}
}

// SelectAction samples a new action, ignoring t
func (u *Uniform) SelectAction(ts.TimeStep) *mat.VecDense {
	action := mat.NewVecDense(len(u.dists), nil)
	for i := range u.dists {
		action.SetVec(i, u.dists[i].Rand())
	}
	return action
}
