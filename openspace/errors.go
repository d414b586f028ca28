package openspace

import "github.com/pkg/errors"

// Sentinel error kinds a Plan call can fail with, per spec.md section 7.
// Callers match with errors.Is; call sites wrap these with errors.Wrapf to
// add context rather than returning them bare.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrEndpointInCollision = errors.New("endpoint in collision")
	ErrSearchExhausted     = errors.New("search exhausted without a candidate")
	ErrAssemblyInvariant   = errors.New("trajectory assembly invariant violated")
	ErrOptimizerFailure    = errors.New("piecewise-jerk optimizer did not converge")
	ErrNumericOverflow     = errors.New("numeric overflow computing knot count")
)
