package environment

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// SpecType determines what kind of specification a Spec is. A Spec can
// specify the layout of an action or an observation.
type SpecType int

const (
	Action SpecType = iota
	Observation
)

func (s SpecType) String() string {
	switch s {
	case Action:
		return "Action"
	case Observation:
		return "Observation"
	default:
		return fmt.Sprintf("SpecType(%d)", int(s))
	}
}

// Cardinality determines the cardinality of a number (discrete or continuous)
type Cardinality string

const (
	Continuous Cardinality = "Continuous"
	Discrete   Cardinality = "Discrete"
)

// Spec implements an environment specification, which tells the type,
// shape, and bounds of an action or observation in an environment
type Spec struct {
	Shape      mat.Vector
	Type       SpecType
	LowerBound mat.Vector
	UpperBound mat.Vector
	Cardinality
}

// NewSpec constructs a new environment specification
// The shape argument outlines the shape of the data described by the
// specification. The argument t outlines what the specification is
// describing (e.g. actions, observations, etc.). The cardinality
// arguments describes whether the values that the spec describes are
// continuous or discrete.
func NewSpec(shape mat.Vector, t SpecType, lowerBound,
	upperBound mat.Vector, cardinality Cardinality) Spec {
	if shape.Len() != lowerBound.Len() {
		panic(fmt.Sprintf("newSpec: shape length %v must match lower "+
			"bounds length %v", shape.Len(), lowerBound.Len()))
	}
	if shape.Len() != upperBound.Len() {
		panic(fmt.Sprintf("newSpec: shape length %v must match upper "+
			"bounds length %v", shape.Len(), upperBound.Len()))
	}
	return Spec{shape, t, lowerBound, upperBound, cardinality}
}

// Len returns the number of features the Spec describes
func (s Spec) Len() int {
	return s.Shape.Len()
}

// Contains returns whether v lies within the bounds of the Spec
func (s Spec) Contains(v mat.Vector) bool {
	if v.Len() != s.Len() {
		return false
	}
	for i := 0; i < v.Len(); i++ {
		if v.AtVec(i) < s.LowerBound.AtVec(i) ||
			v.AtVec(i) > s.UpperBound.AtVec(i) {
			return false
		}
	}
	return true
}
