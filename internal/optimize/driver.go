package optimize

import "context"

const (
	DriverNelderMead = "nelder-mead"
	DriverHillClimb  = "hill-climb"
)

// Driver is a derivative-free minimizer. Implementations share Result,
// Recorder, and restart semantics so callers can swap search strategies
// without touching the surrounding run plumbing.
type Driver interface {
	Name() string
	Minimize(ctx context.Context, initial []float64, objective Objective) (Result, error)
}

func (nm *NelderMead) Name() string {
	return DriverNelderMead
}

// DriverNames lists the supported minimizers in display order.
func DriverNames() []string {
	return []string{DriverNelderMead, DriverHillClimb}
}

// NormalizeDriverName maps accepted aliases onto canonical driver names.
// Unknown names pass through unchanged for the caller to reject.
func NormalizeDriverName(name string) string {
	switch name {
	case "", DriverNelderMead, "neldermead", "nelder_mead", "simplex":
		return DriverNelderMead
	case DriverHillClimb, "hillclimb", "hill_climb":
		return DriverHillClimb
	default:
		return name
	}
}
