// Package environment outlines the interfaces and structs needed to
// implement concrete kick environments. Concrete environments own the
// physics and produce a Snapshot each step; an Episode turns the
// Snapshots into TimeSteps by threading the kick latch, the step
// counter and the previous ball velocity through the kick evaluators.
package environment

import (
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/humanoidkick/timestep"
)

// Starter implements a distribution of starting states and samples starting
// states for environments
type Starter interface {
	Start() *mat.VecDense
}

// Ender determines when an episode should end. If the episode should
// end, End() modifies the timestep so that it is the last step of the
// episode with the appropriate end type and returns true.
type Ender interface {
	End(t *timestep.TimeStep, s Snapshot) bool
}

// Environment implements a simulated kick environment
type Environment interface {
	// Reset starts a new episode and returns its first step
	Reset() timestep.TimeStep

	// Step takes one action in the environment. The returned boolean
	// is true when the step is the last of its episode.
	Step(action *mat.VecDense) (timestep.TimeStep, bool)

	LastTimeStep() timestep.TimeStep
	ObservationSpec() Spec
	ActionSpec() Spec
}
