package metrics

import "fmt"

// NonConvergenceError reports that IRR root-finding exhausted both the
// Newton-Raphson attempt and the bisection fallback.
type NonConvergenceError struct {
	Iterations int
	LastRate   float64
	LastValue  float64
}

func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("irr did not converge after %d iterations (last rate %.6f, npv %.6f)",
		e.Iterations, e.LastRate, e.LastValue)
}

// DomainError reports a mathematically undefined result, attached to the
// operation that produced it rather than coerced to NaN.
type DomainError struct {
	Op     string
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}
