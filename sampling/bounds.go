package sampling

import (
	"errors"
	"fmt"
)

// ErrInvalidBounds is returned when the sampling interval [a, b] doesn't
// satisfy a < b.
var ErrInvalidBounds = errors.New("sample bounds must be in [a,b] with a<b")

// Bounds is the support of the proposal distribution.
type Bounds[F Float] struct {
	A F
	B F
}

func (b Bounds[F]) Validate() error {
	return ValidateBounds(b.A, b.B)
}

func (b Bounds[F]) Midpoint() F {
	return (b.A + b.B) / 2
}

// ValidateBounds reports whether a < b. NaN bounds fail as well since the
// comparison is false.
func ValidateBounds[F Float](a, b F) error {
	if !(a < b) {
		return fmt.Errorf("%w (a=%v, b=%v)", ErrInvalidBounds, a, b)
	}
	return nil
}

// /////////////////////////////////////////////////////////////////////////////
// StatusCode
// /////////////////////////////////////////////////////////////////////////////

// StatusCode classifies the outcome of a sampling run.
type StatusCode int

const (
	StatusSuccess StatusCode = iota
	StatusInvalidBounds
	StatusFailure
)

func (s StatusCode) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusInvalidBounds:
		return "invalid_bounds"
	default:
		return "failure"
	}
}

// ExitCode is the process exit code for the status.
func (s StatusCode) ExitCode() int {
	return int(s)
}

// StatusOf maps an error returned by Metropolis to its StatusCode.
func StatusOf(err error) StatusCode {
	switch {
	case err == nil:
		return StatusSuccess
	case errors.Is(err, ErrInvalidBounds):
		return StatusInvalidBounds
	default:
		return StatusFailure
	}
}
