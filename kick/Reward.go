// Package kick implements the per-step evaluators of the humanoid kick
// task: the shaped reward with its one-shot kick latch, the termination
// predicates, and the flat observation vector.
//
// Every function in this package is pure. The only state carried
// between calls is the kicked latch, which callers thread through
// ComputeReward themselves (see environment.Episode).
package kick

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// PowerGate determines on which steps the power term may fire.
type PowerGate int

const (
	// GateOnLatch lets the power term fire on the kicking step and on
	// every step after it. Later steps usually inject no energy, so in
	// practice this adds a short tail while the contact resolves.
	GateOnLatch PowerGate = iota

	// GateOnKick lets the power term fire only on the step where the
	// latch first closes.
	GateOnKick
)

// String returns the config file name of the gate
func (g PowerGate) String() string {
	switch g {
	case GateOnLatch:
		return "latch"
	case GateOnKick:
		return "kick"
	default:
		return fmt.Sprintf("PowerGate(%d)", int(g))
	}
}

// MarshalText implements encoding.TextMarshaler
func (g PowerGate) MarshalText() ([]byte, error) {
	switch g {
	case GateOnLatch, GateOnKick:
		return []byte(g.String()), nil
	}
	return nil, fmt.Errorf("marshalText: unknown power gate %d", int(g))
}

// UnmarshalText implements encoding.TextUnmarshaler
func (g *PowerGate) UnmarshalText(text []byte) error {
	switch string(text) {
	case "latch":
		*g = GateOnLatch
	case "kick":
		*g = GateOnKick
	default:
		return fmt.Errorf("unmarshalText: unknown power gate %q, want "+
			"\"latch\" or \"kick\"", string(text))
	}
	return nil
}

// RewardWeights scales each reward term in the total reward
type RewardWeights struct {
	Power    float64 `json:"w_power" yaml:"w_power"`
	Alive    float64 `json:"w_alive" yaml:"w_alive"`
	Upright  float64 `json:"w_upright" yaml:"w_upright"`
	Approach float64 `json:"w_approach" yaml:"w_approach"`
	AngVel   float64 `json:"w_ang_vel" yaml:"w_ang_vel"`
	Action   float64 `json:"w_action" yaml:"w_action"`
}

// DefaultRewardWeights returns the default reward weights
func DefaultRewardWeights() RewardWeights {
	return RewardWeights{
		Power:    10.0,
		Alive:    1.0,
		Upright:  1.0,
		Approach: 0.2,
		AngVel:   0.05,
		Action:   0.01,
	}
}

// RewardParams holds the shaping parameters of the reward terms.
//
// None of these are validated. A VMinContact of 0 turns every foot-ball
// contact into a kick and an UprightMin of at least 1 makes the
// uprightness term 0 for every physical orientation. Both are left to
// the caller.
type RewardParams struct {
	// EnergyLogK scales the injected ball energy inside log1p
	EnergyLogK float64 `json:"energy_log_k" yaml:"energy_log_k"`

	// VMinContact is the minimum ball speed for a contact to count as
	// a kick
	VMinContact float64 `json:"v_min_contact" yaml:"v_min_contact"`

	// ApproachAlpha is the decay rate of exp(-alpha * dist)
	ApproachAlpha float64 `json:"approach_alpha" yaml:"approach_alpha"`

	// UprightMin is the up_dot below which uprightness becomes 0
	UprightMin float64 `json:"upright_min" yaml:"upright_min"`

	PowerGate PowerGate `json:"power_gate" yaml:"power_gate"`
}

// DefaultRewardParams returns the default reward shaping parameters
func DefaultRewardParams() RewardParams {
	return RewardParams{
		EnergyLogK:    1.0,
		VMinContact:   0.5,
		ApproachAlpha: 6.0,
		UprightMin:    0.6,
		PowerGate:     GateOnLatch,
	}
}

// RewardInput is the part of a physical state snapshot that the reward
// depends on. PrevBallVel must be the ball velocity of the previous
// step in the same episode.
type RewardInput struct {
	BallMass     float64
	BallVel      r3.Vec
	PrevBallVel  r3.Vec
	UpDot        float64
	BaseAngVel   r3.Vec
	Action       mat.Vector // nil is treated as a zero action
	FootBallDist float64

	Alive           bool
	FootBallContact bool
}

// ComputeReward computes the reward for a single step given the latch
// value kicked returned by the previous call in the same episode
// (false on the first step of an episode). It returns the total
// reward, the individual terms for logging, and the latch value to
// pass to the next call.
//
// The latch closes on the first step with a foot-ball contact at which
// the ball moves at least VMinContact fast, and then stays closed.
// Before the latch closes only the approach term guides the foot
// toward the ball; once closed the approach term is 0 and the power
// term rewards energy injected into the ball.
func ComputeReward(in RewardInput, kicked bool, w RewardWeights,
	p RewardParams) (float64, Terms, bool) {
	// Energy injected into the ball this step. Natural decay of the
	// ball's speed is not penalized.
	e := BallKineticEnergy(in.BallMass, in.BallVel)
	ePrev := BallKineticEnergy(in.BallMass, in.PrevBallVel)
	deltaE := math.Max(0.0, e-ePrev)

	// One-shot kick detection
	kickedNow := !kicked && in.FootBallContact &&
		r3.Norm(in.BallVel) >= p.VMinContact
	kickedNext := kicked || kickedNow

	var terms Terms
	terms.DeltaE = deltaE
	terms.KickedNow = kickedNow
	terms.Kicked = kickedNext

	if in.Alive {
		terms.Alive = 1.0
	}
	terms.Upright = Uprightness(in.UpDot, p.UprightMin)

	// Approach shaping only until the kick has happened
	if !kickedNext {
		terms.Approach = ApproachReward(in.FootBallDist, p.ApproachAlpha)
	}

	if powerGateOpen(p.PowerGate, kickedNow, kickedNext) {
		terms.Power = PowerReward(deltaE, p.EnergyLogK)
	}

	// Penalties are never clipped
	terms.AngVel = r3.Norm2(in.BaseAngVel)
	if in.Action != nil {
		terms.Action = mat.Dot(in.Action, in.Action)
	}

	total := w.Power*terms.Power +
		w.Alive*terms.Alive +
		w.Upright*terms.Upright +
		w.Approach*terms.Approach -
		w.AngVel*terms.AngVel -
		w.Action*terms.Action

	return total, terms, kickedNext
}

func powerGateOpen(g PowerGate, kickedNow, kickedNext bool) bool {
	if g == GateOnKick {
		return kickedNow
	}
	return kickedNext
}
