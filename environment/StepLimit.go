package environment

import (
	"github.com/samuelfneumann/humanoidkick/kick"
	"github.com/samuelfneumann/humanoidkick/timestep"
)

// StepLimit implements the Ender interface to end episodes once the
// step counter reaches the maximum step count of a kick.TerminationParams
type StepLimit struct {
	params kick.TerminationParams
}

// NewStepLimit creates and returns a new step limit
func NewStepLimit(p kick.TerminationParams) StepLimit {
	return StepLimit{p}
}

// End determines whether or not the current episode should be ended,
// returning a boolean to indicate episode termination. If the episode
// should be ended End() marks the timestep as the last step of the
// episode with end type timestep.Timeout.
func (s StepLimit) End(t *timestep.TimeStep, _ Snapshot) bool {
	if kick.IsTimeout(t.Number, s.params) {
		t.SetEnd(timestep.Timeout)
		return true
	}
	return false
}
