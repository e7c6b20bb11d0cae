package kick

import (
	"fmt"
	"strings"
)

// TermNames lists the diagnostic term names in the order used by
// Terms.Values
var TermNames = [NumTerms]string{
	"r_power",
	"r_alive",
	"r_upright",
	"r_approach",
	"p_ang",
	"p_action",
	"delta_E",
	"kicked_now",
	"kicked",
}

// NumTerms is the number of diagnostic terms
const NumTerms = 9

// Terms holds the individual terms of a single reward computation. It
// is produced fresh on every call and is only meant for logging.
type Terms struct {
	Power    float64 // r_power
	Alive    float64 // r_alive
	Upright  float64 // r_upright
	Approach float64 // r_approach
	AngVel   float64 // p_ang, unweighted
	Action   float64 // p_action, unweighted
	DeltaE   float64 // delta_E

	KickedNow bool // kicked_now
	Kicked    bool // kicked, the updated latch
}

// Values returns the terms in the order of TermNames. Booleans are
// reported as 1.0 or 0.0.
func (t Terms) Values() [NumTerms]float64 {
	return [NumTerms]float64{
		t.Power,
		t.Alive,
		t.Upright,
		t.Approach,
		t.AngVel,
		t.Action,
		t.DeltaE,
		boolToFloat(t.KickedNow),
		boolToFloat(t.Kicked),
	}
}

// Map returns the terms keyed by name
func (t Terms) Map() map[string]float64 {
	values := t.Values()
	m := make(map[string]float64, NumTerms)
	for i, name := range TermNames {
		m[name] = values[i]
	}
	return m
}

func (t Terms) String() string {
	var b strings.Builder
	values := t.Values()
	b.WriteString("Terms |")
	for i, name := range TermNames {
		fmt.Fprintf(&b, " %v: %.4f |", name, values[i])
	}
	return b.String()
}

func boolToFloat(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}
