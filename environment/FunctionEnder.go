package environment

import (
	"github.com/samuelfneumann/humanoidkick/kick"
	"github.com/samuelfneumann/humanoidkick/timestep"
)

// FunctionEnder ends an episode whenever a function of the physical
// state snapshot returns true.
type FunctionEnder struct {
	end     func(Snapshot) bool
	endType timestep.EndType
}

// NewFunctionEnder returns a new FunctionEnder which ends episodes with
// end type endType when f returns true.
func NewFunctionEnder(f func(Snapshot) bool, endType timestep.EndType) Ender {
	return &FunctionEnder{f, endType}
}

// NewFallEnder returns an Ender which ends episodes with end type
// timestep.Fallen when the humanoid's base is too low or too tilted
func NewFallEnder(p kick.TerminationParams) Ender {
	return NewFunctionEnder(func(s Snapshot) bool {
		return kick.IsFallen(s.BaseHeight, s.UpDot, p)
	}, timestep.Fallen)
}

// End determines whether or not the current episode should be ended,
// returning a boolean to indicate episode termination. If the episode
// should be ended, End() will mark the timestep as the last step with
// the appropriate ending type.
func (f *FunctionEnder) End(t *timestep.TimeStep, s Snapshot) bool {
	if f.end(s) {
		t.SetEnd(f.endType)
		return true
	}
	return false
}
