package kick

// TerminationParams holds the thresholds that end an episode
type TerminationParams struct {
	MinBaseHeight float64 `json:"min_base_height" yaml:"min_base_height"`
	MinUpDot      float64 `json:"min_up_dot" yaml:"min_up_dot"`
	MaxSteps      int     `json:"max_steps" yaml:"max_steps"`
}

// DefaultTerminationParams returns the default termination thresholds
func DefaultTerminationParams() TerminationParams {
	return TerminationParams{
		MinBaseHeight: 0.75,
		MinUpDot:      0.55,
		MaxSteps:      600,
	}
}

// IsFallen returns whether the base has dropped below the minimum
// height or tilted below the minimum up_dot. Either condition alone is
// enough.
func IsFallen(baseHeight, upDot float64, p TerminationParams) bool {
	return baseHeight < p.MinBaseHeight || upDot < p.MinUpDot
}

// IsTimeout returns whether step has reached the step limit. The limit
// itself counts as a timeout.
func IsTimeout(step int, p TerminationParams) bool {
	return step >= p.MaxSteps
}
