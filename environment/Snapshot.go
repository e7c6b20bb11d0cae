package environment

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/samuelfneumann/humanoidkick/kick"
)

// Snapshot is the physical state of a kick environment after a physics
// step, as derived by the simulator. Snapshots are read-only to the
// evaluators; the previous ball velocity is not part of a Snapshot
// since it is episode history and is kept by the Episode.
type Snapshot struct {
	Q  []float64 // joint positions
	QD []float64 // joint velocities

	BaseHeight float64
	BaseLinVel r3.Vec
	BaseAngVel r3.Vec

	// UpDot is the dot product of the base's up axis with world up
	UpDot float64

	// ProjectedGravity is world gravity expressed in the base frame
	ProjectedGravity r3.Vec

	BallMass   float64
	BallPosRel r3.Vec // ball position relative to the base
	BallVel    r3.Vec

	FootPosRelToBall r3.Vec
	FootBallDist     float64
	FootBallContact  bool

	Alive bool
}

// RewardInput returns the reward input for the Snapshot given the ball
// velocity of the previous step and the action taken
func (s Snapshot) RewardInput(prevBallVel r3.Vec,
	action mat.Vector) kick.RewardInput {
	return kick.RewardInput{
		BallMass:        s.BallMass,
		BallVel:         s.BallVel,
		PrevBallVel:     prevBallVel,
		UpDot:           s.UpDot,
		BaseAngVel:      s.BaseAngVel,
		Action:          action,
		FootBallDist:    s.FootBallDist,
		Alive:           s.Alive,
		FootBallContact: s.FootBallContact,
	}
}

// ObsInput returns the observation input for the Snapshot. A Snapshot
// always carries every optional block, so any ObsSpec may be used with
// the result.
func (s Snapshot) ObsInput() kick.ObsInput {
	gravity := s.ProjectedGravity
	ballVel := s.BallVel
	footRel := s.FootPosRelToBall

	return kick.ObsInput{
		Q:                s.Q,
		QD:               s.QD,
		BaseLinVel:       s.BaseLinVel,
		BaseAngVel:       s.BaseAngVel,
		BallPosRel:       s.BallPosRel,
		ProjectedGravity: &gravity,
		BallVel:          &ballVel,
		FootPosRelToBall: &footRel,
	}
}
