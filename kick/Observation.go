package kick

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Names of the observation blocks, in the order they appear in an
// observation vector
const (
	BlockQ                = "q"
	BlockQD               = "qd"
	BlockBaseLinVel       = "base_lin_vel"
	BlockBaseAngVel       = "base_ang_vel"
	BlockBallPosRel       = "ball_pos_rel"
	BlockProjectedGravity = "projected_gravity"
	BlockBallVel          = "ball_vel"
	BlockFootRel          = "foot_pos_rel_to_ball"
)

// ObsSpec toggles the optional observation blocks
type ObsSpec struct {
	ProjectedGravity bool `json:"use_projected_gravity" yaml:"use_projected_gravity"`
	BallVel          bool `json:"use_ball_vel" yaml:"use_ball_vel"`
	FootRel          bool `json:"use_foot_rel" yaml:"use_foot_rel"`
}

// DefaultObsSpec returns an ObsSpec with all optional blocks enabled
func DefaultObsSpec() ObsSpec {
	return ObsSpec{
		ProjectedGravity: true,
		BallVel:          true,
		FootRel:          true,
	}
}

// ObsInput holds the state vectors an observation is built from. The
// optional blocks are pointers; nil means the value was not supplied.
type ObsInput struct {
	Q  []float64 // joint positions
	QD []float64 // joint velocities

	BaseLinVel r3.Vec
	BaseAngVel r3.Vec
	BallPosRel r3.Vec // ball position relative to the reference point

	ProjectedGravity *r3.Vec
	BallVel          *r3.Vec
	FootPosRelToBall *r3.Vec
}

// Block describes where one block of state lies in an observation
// vector
type Block struct {
	Name   string
	Offset int
	Len    int
}

// Layout returns the blocks of an observation vector built with spec
// for nq joint positions and nqd joint velocities, in element order.
// Downstream models depend on this order positionally, so any change to
// it must be versioned by the caller.
func (s ObsSpec) Layout(nq, nqd int) []Block {
	blocks := make([]Block, 0, 8)
	offset := 0
	add := func(name string, length int) {
		blocks = append(blocks, Block{Name: name, Offset: offset, Len: length})
		offset += length
	}

	add(BlockQ, nq)
	add(BlockQD, nqd)
	add(BlockBaseLinVel, 3)
	add(BlockBaseAngVel, 3)
	add(BlockBallPosRel, 3)
	if s.ProjectedGravity {
		add(BlockProjectedGravity, 3)
	}
	if s.BallVel {
		add(BlockBallVel, 3)
	}
	if s.FootRel {
		add(BlockFootRel, 3)
	}
	return blocks
}

// Len returns the length of an observation vector built with spec for
// nq joint positions and nqd joint velocities
func (s ObsSpec) Len(nq, nqd int) int {
	length := nq + nqd + 9
	for _, enabled := range []bool{s.ProjectedGravity, s.BallVel, s.FootRel} {
		if enabled {
			length += 3
		}
	}
	return length
}

// BuildObservation concatenates the mandatory blocks and the optional
// blocks enabled by spec into one flat single precision vector, in the
// order given by spec.Layout.
//
// Requesting an optional block that in does not supply is a caller or
// configuration error and causes a panic.
func BuildObservation(in ObsInput, spec ObsSpec) []float32 {
	obs := make([]float32, 0, spec.Len(len(in.Q), len(in.QD)))

	obs = appendFloats(obs, in.Q)
	obs = appendFloats(obs, in.QD)
	obs = appendVec(obs, in.BaseLinVel)
	obs = appendVec(obs, in.BaseAngVel)
	obs = appendVec(obs, in.BallPosRel)

	if spec.ProjectedGravity {
		obs = appendVec(obs, required(in.ProjectedGravity,
			BlockProjectedGravity))
	}
	if spec.BallVel {
		obs = appendVec(obs, required(in.BallVel, BlockBallVel))
	}
	if spec.FootRel {
		obs = appendVec(obs, required(in.FootPosRelToBall, BlockFootRel))
	}

	return obs
}

func required(v *r3.Vec, block string) r3.Vec {
	if v == nil {
		panic(fmt.Sprintf("buildObservation: block %v requested by the "+
			"observation spec but not supplied", block))
	}
	return *v
}

func appendFloats(obs []float32, values []float64) []float32 {
	for _, v := range values {
		obs = append(obs, float32(v))
	}
	return obs
}

func appendVec(obs []float32, v r3.Vec) []float32 {
	return append(obs, float32(v.X), float32(v.Y), float32(v.Z))
}
