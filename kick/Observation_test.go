package kick

import (
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func fullObsInput() ObsInput {
	gravity := r3.Vec{X: 0, Y: 0, Z: -1}
	ballVel := r3.Vec{X: 16, Y: 17, Z: 18}
	footRel := r3.Vec{X: 19, Y: 20, Z: 21}

	return ObsInput{
		Q:                []float64{1, 2},
		QD:               []float64{3, 4},
		BaseLinVel:       r3.Vec{X: 5, Y: 6, Z: 7},
		BaseAngVel:       r3.Vec{X: 8, Y: 9, Z: 10},
		BallPosRel:       r3.Vec{X: 11, Y: 12, Z: 13},
		ProjectedGravity: &gravity,
		BallVel:          &ballVel,
		FootPosRelToBall: &footRel,
	}
}

func TestBuildObservationOrder(t *testing.T) {
	obs := BuildObservation(fullObsInput(), DefaultObsSpec())

	want := []float32{
		1, 2, 3, 4,
		5, 6, 7,
		8, 9, 10,
		11, 12, 13,
		0, 0, -1,
		16, 17, 18,
		19, 20, 21,
	}
	if len(obs) != len(want) {
		t.Fatalf("observation length = %v, want %v", len(obs), len(want))
	}
	for i := range want {
		if obs[i] != want[i] {
			t.Errorf("obs[%v] = %v, want %v", i, obs[i], want[i])
		}
	}
}

func TestBuildObservationLength(t *testing.T) {
	in := fullObsInput()
	nq, nqd := len(in.Q), len(in.QD)
	mandatory := nq + nqd + 9

	for mask := 0; mask < 8; mask++ {
		spec := ObsSpec{
			ProjectedGravity: mask&1 != 0,
			BallVel:          mask&2 != 0,
			FootRel:          mask&4 != 0,
		}
		enabled := 0
		for _, b := range []bool{spec.ProjectedGravity, spec.BallVel, spec.FootRel} {
			if b {
				enabled++
			}
		}

		obs := BuildObservation(in, spec)
		if want := mandatory + 3*enabled; len(obs) != want {
			t.Errorf("spec %+v: length = %v, want %v", spec, len(obs), want)
		}
		if spec.Len(nq, nqd) != len(obs) {
			t.Errorf("spec %+v: Len = %v, built %v", spec, spec.Len(nq, nqd),
				len(obs))
		}
	}
}

func TestBuildObservationMinimal(t *testing.T) {
	in := ObsInput{
		Q:          []float64{1},
		QD:         []float64{2},
		BaseLinVel: r3.Vec{X: 3},
	}

	// Optional inputs may be absent when their blocks are disabled
	obs := BuildObservation(in, ObsSpec{})
	if len(obs) != 11 {
		t.Fatalf("minimal observation length = %v, want 11", len(obs))
	}
	if obs[0] != 1 || obs[1] != 2 || obs[2] != 3 {
		t.Errorf("minimal observation = %v", obs)
	}
}

func TestBuildObservationMissingBlockPanics(t *testing.T) {
	tests := []struct {
		block string
		clear func(*ObsInput)
	}{
		{BlockProjectedGravity, func(in *ObsInput) { in.ProjectedGravity = nil }},
		{BlockBallVel, func(in *ObsInput) { in.BallVel = nil }},
		{BlockFootRel, func(in *ObsInput) { in.FootPosRelToBall = nil }},
	}

	for _, test := range tests {
		in := fullObsInput()
		test.clear(&in)

		func() {
			defer func() {
				r := recover()
				if r == nil {
					t.Errorf("missing %v: expected panic", test.block)
					return
				}
				msg, ok := r.(string)
				if !ok || !strings.Contains(msg, test.block) {
					t.Errorf("missing %v: panic %v should name the block",
						test.block, r)
				}
			}()
			BuildObservation(in, DefaultObsSpec())
		}()
	}
}

func TestObsSpecLayout(t *testing.T) {
	spec := ObsSpec{ProjectedGravity: false, BallVel: true, FootRel: true}
	layout := spec.Layout(4, 4)

	wantNames := []string{BlockQ, BlockQD, BlockBaseLinVel, BlockBaseAngVel,
		BlockBallPosRel, BlockBallVel, BlockFootRel}
	if len(layout) != len(wantNames) {
		t.Fatalf("layout has %v blocks, want %v", len(layout), len(wantNames))
	}

	offset := 0
	for i, block := range layout {
		if block.Name != wantNames[i] {
			t.Errorf("block %v = %v, want %v", i, block.Name, wantNames[i])
		}
		if block.Offset != offset {
			t.Errorf("block %v offset = %v, want %v", block.Name,
				block.Offset, offset)
		}
		offset += block.Len
	}
	if offset != spec.Len(4, 4) {
		t.Errorf("layout covers %v elements, want %v", offset, spec.Len(4, 4))
	}
}
