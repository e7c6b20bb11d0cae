package environment

import (
	"fmt"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/samuelfneumann/humanoidkick/kick"
	"github.com/samuelfneumann/humanoidkick/timestep"
)

// Episode is the per-episode record of a single environment. It owns
// the only state the kick evaluators need across steps: the kick latch,
// the step counter and the ball velocity of the previous step.
//
// Each environment instance needs its own Episode. An Episode is not
// safe for concurrent use, but Episodes of different environments never
// interact and may be advanced concurrently.
type Episode struct {
	id       uuid.UUID
	config   kick.Config
	discount float64
	enders   []Ender

	started     bool
	ended       bool
	kicked      bool
	step        int
	prevBallVel r3.Vec
	ret         float64
	last        timestep.TimeStep
}

// NewEpisode returns a new Episode which evaluates steps with config
// and reports the discount on every non-terminal step. Episodes end on
// falling, checked first, and on timeout.
func NewEpisode(config kick.Config, discount float64) *Episode {
	enders := []Ender{
		NewFallEnder(config.Termination),
		NewStepLimit(config.Termination),
	}
	return &Episode{config: config, discount: discount, enders: enders}
}

// Begin starts a new episode from the Snapshot of the reset state and
// returns its first step. The kick latch, step counter, previous ball
// velocity and return are all reset.
func (e *Episode) Begin(s Snapshot) timestep.TimeStep {
	e.id = uuid.New()
	e.started = true
	e.ended = false
	e.kicked = false
	e.step = 0
	e.prevBallVel = s.BallVel
	e.ret = 0.0

	obs := kick.BuildObservation(s.ObsInput(), e.config.Observation)
	e.last = timestep.New(timestep.First, 0.0, e.discount, obs, e.step, e.id)
	return e.last
}

// Advance evaluates the Snapshot reached after taking action and
// returns the resulting step. The step is the last of the episode if
// the humanoid has fallen or the episode has timed out, in which case
// Begin must be called before the Episode can be advanced again.
func (e *Episode) Advance(s Snapshot, action mat.Vector) timestep.TimeStep {
	if !e.started {
		panic("advance: episode has not begun")
	}
	if e.ended {
		panic(fmt.Sprintf("advance: episode %v has ended", e.id))
	}

	in := s.RewardInput(e.prevBallVel, action)
	reward, terms, kicked := kick.ComputeReward(in, e.kicked,
		e.config.Weights, e.config.Params)

	e.kicked = kicked
	e.prevBallVel = s.BallVel
	e.step++
	e.ret += reward

	obs := kick.BuildObservation(s.ObsInput(), e.config.Observation)
	t := timestep.New(timestep.Mid, reward, e.discount, obs, e.step, e.id)
	t.Terms = terms

	for _, ender := range e.enders {
		if ender.End(&t, s) {
			e.ended = true
			break
		}
	}

	e.last = t
	return t
}

// ID returns the id of the current episode
func (e *Episode) ID() uuid.UUID {
	return e.id
}

// Kicked returns the current value of the kick latch
func (e *Episode) Kicked() bool {
	return e.kicked
}

// Step returns the number of steps taken in the current episode
func (e *Episode) Step() int {
	return e.step
}

// Return returns the undiscounted return accumulated so far
func (e *Episode) Return() float64 {
	return e.ret
}

// Ended returns whether the current episode has ended
func (e *Episode) Ended() bool {
	return e.ended
}

// LastTimeStep returns the most recent step of the episode
func (e *Episode) LastTimeStep() timestep.TimeStep {
	return e.last
}

// Config returns the configuration the Episode evaluates steps with
func (e *Episode) Config() kick.Config {
	return e.config
}
