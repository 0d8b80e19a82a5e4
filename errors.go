package spiro

import (
	"errors"
	"fmt"
)

var (
	// ErrDegenerateInput is returned for shapes whose geometry cannot be
	// constructed: consecutive knots that coincide, or coordinates that
	// aren't finite.
	ErrDegenerateInput = errors.New("spiro: degenerate input")
	// ErrSingularSystem is returned when the linearized constraint system
	// has no unique solution, or when the iteration produced non-finite
	// values.
	ErrSingularSystem = errors.New("spiro: singular system")
	// ErrMaxIterations is returned when the solver didn't converge within
	// the configured number of iterations.
	ErrMaxIterations = errors.New("spiro: maximum iterations exceeded")
)

// SolveError describes a failed solve. It wraps one of the sentinel errors
// of this package.
type SolveError struct {
	Err error
	// The knot or segment the failure was detected at, or -1.
	Index int
	// Newton iterations performed before failing.
	Iterations int
	// The residual norm at the time of failure.
	Residual float64
}

func (e *SolveError) Error() string {
	switch {
	case e.Index >= 0:
		return fmt.Sprintf("%s at index %d (iterations: %d, residual: %g)", e.Err, e.Index, e.Iterations, e.Residual)
	default:
		return fmt.Sprintf("%s (iterations: %d, residual: %g)", e.Err, e.Iterations, e.Residual)
	}
}

func (e *SolveError) Unwrap() error { return e.Err }
