package timestep

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestSetEnd(t *testing.T) {
	tests := []struct {
		end          EndType
		wantDiscount float64
	}{
		{Fallen, 0.0},
		{Timeout, 0.99},
	}

	for _, test := range tests {
		step := New(Mid, 1.0, 0.99, nil, 3, uuid.New())
		if !step.Mid() || step.EndType() != NotEnded {
			t.Fatalf("new step: type %v, end %v", step.StepType(),
				step.EndType())
		}

		step.SetEnd(test.end)
		if !step.Last() {
			t.Errorf("%v: step should be last", test.end)
		}
		if step.EndType() != test.end {
			t.Errorf("end type = %v, want %v", step.EndType(), test.end)
		}
		if step.Discount != test.wantDiscount {
			t.Errorf("%v: discount = %v, want %v", test.end, step.Discount,
				test.wantDiscount)
		}
	}
}

func TestSetEndNotEndedPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("ending a step with NotEnded should panic")
		}
	}()

	step := New(First, 0.0, 1.0, nil, 0, uuid.New())
	step.SetEnd(NotEnded)
}

func TestString(t *testing.T) {
	step := New(First, 0.5, 1.0, []float32{1, 2}, 0, uuid.New())
	s := step.String()
	for _, want := range []string{"First", "NotEnded", "0.50"} {
		if !strings.Contains(s, want) {
			t.Errorf("%q should contain %q", s, want)
		}
	}
}
