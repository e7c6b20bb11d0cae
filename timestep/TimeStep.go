// Package timestep implements timesteps of the agent-environment interaction
package timestep

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/samuelfneumann/humanoidkick/kick"
)

// StepType denotes the type of step that a TimeStep can be, either  first
// environmental step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// EndType denotes why an episode ended
type EndType int

const (
	// NotEnded is the EndType of every First and Mid TimeStep
	NotEnded EndType = iota

	// Fallen denotes an episode that ended because the humanoid fell.
	// This is a true termination and the state has no successor value.
	Fallen

	// Timeout denotes an episode cut off at the step cap. This is a
	// truncation, the successor state still has a value.
	Timeout
)

func (e EndType) String() string {
	switch e {
	case Fallen:
		return "Fallen"
	case Timeout:
		return "Timeout"
	default:
		return "NotEnded"
	}
}

// TimeStep packages together a single timestep in an environment
type TimeStep struct {
	stepType StepType
	endType  EndType

	Reward      float64
	Discount    float64
	Terms       kick.Terms
	Observation []float32
	Number      int

	// EpisodeID identifies the episode the TimeStep belongs to
	EpisodeID uuid.UUID
}

// New returns a new TimeStep of type t with reward r, discount d and
// observation o, which is the n-th step of episode id
func New(t StepType, r, d float64, o []float32, n int,
	id uuid.UUID) TimeStep {
	return TimeStep{
		stepType:    t,
		Reward:      r,
		Discount:    d,
		Observation: o,
		Number:      n,
		EpisodeID:   id,
	}
}

// SetEnd marks the TimeStep as the last of its episode. The discount
// is set to 0 on termination by falling and left unchanged on timeout.
func (t *TimeStep) SetEnd(e EndType) {
	if e == NotEnded {
		panic("setEnd: cannot end a timestep with NotEnded")
	}
	t.stepType = Last
	t.endType = e
	if e == Fallen {
		t.Discount = 0.0
	}
}

// First returns whether a TimeStep is the first in an environment
func (t *TimeStep) First() bool {
	return t.stepType == First
}

// Mid returns whether a TimeStep is a middle step in an environment
func (t *TimeStep) Mid() bool {
	return t.stepType == Mid
}

// Last returns whether a TimeStep is the last step in an environment
func (t *TimeStep) Last() bool {
	return t.stepType == Last
}

// StepType returns the type of the TimeStep
func (t *TimeStep) StepType() StepType {
	return t.stepType
}

// EndType returns why the episode ended, or NotEnded if the TimeStep is
// not the last of its episode
func (t *TimeStep) EndType() EndType {
	return t.endType
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  End: %v  |  Reward:  %.2f  |  " +
		"Discount: %.2f  |  Step Number:  %v  |  Kicked: %v"

	return fmt.Sprintf(str, t.stepType, t.endType, t.Reward, t.Discount,
		t.Number, t.Terms.Kicked)
}
