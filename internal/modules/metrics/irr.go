package metrics

import (
	"math"

	"github.com/aristath/proforma/pkg/formulas"
)

// Root-finding policy for IRR. The solver is an explicit two-stage state
// machine: Newton-Raphson attempt, then bisection fallback, then terminal
// failure. Iteration caps guarantee termination.
const (
	DefaultIRRGuess = 0.10

	maxNewtonIterations = 100
	npvTolerance        = 1e-6
	derivativeEpsilon   = 1e-12

	bisectionLow        = -0.99
	bisectionHigh       = 10.0
	maxBisectIterations = 200
	bisectionWidth      = 1e-13
)

// SolveMethod records which stage of the solver produced the root.
type SolveMethod string

const (
	MethodNewton    SolveMethod = "newton"
	MethodBisection SolveMethod = "bisection"
)

// SolveIRR finds the per-period rate r with NPV(cashflows, r) = 0.
// Fully deterministic: identical inputs always produce identical output.
// Returns NonConvergenceError when both stages fail.
func SolveIRR(cashflows []float64, guess float64) (float64, SolveMethod, error) {
	if rate, ok := newtonIRR(cashflows, guess); ok {
		return rate, MethodNewton, nil
	}
	rate, err := bisectionIRR(cashflows)
	if err != nil {
		return 0, "", err
	}
	return rate, MethodBisection, nil
}

// newtonIRR runs the Newton-Raphson stage. It reports failure instead of
// an error so the caller can fall through to bisection: the iterate
// leaving the sane rate domain or a vanishing derivative are expected
// outcomes for ill-behaved series, not terminal ones.
func newtonIRR(cashflows []float64, guess float64) (float64, bool) {
	rate := guess
	for i := 0; i < maxNewtonIterations; i++ {
		value := formulas.NPV(cashflows, rate)
		if math.Abs(value) < npvTolerance {
			return rate, true
		}

		derivative := formulas.NPVDerivative(cashflows, rate)
		if math.Abs(derivative) < derivativeEpsilon {
			return 0, false
		}

		next := rate - value/derivative
		if math.IsNaN(next) || math.IsInf(next, 0) || next <= bisectionLow || next >= bisectionHigh {
			return 0, false
		}
		rate = next
	}
	return 0, false
}

// bisectionIRR brackets a root over [bisectionLow, bisectionHigh]. If the
// NPV does not change sign over the interval there is no root to find and
// the solver fails terminally.
func bisectionIRR(cashflows []float64) (float64, error) {
	lo, hi := bisectionLow, bisectionHigh
	fLo := formulas.NPV(cashflows, lo)
	fHi := formulas.NPV(cashflows, hi)

	if math.Abs(fLo) < npvTolerance {
		return lo, nil
	}
	if math.Abs(fHi) < npvTolerance {
		return hi, nil
	}
	if fLo*fHi > 0 {
		return 0, &NonConvergenceError{
			Iterations: maxNewtonIterations,
			LastRate:   hi,
			LastValue:  fHi,
		}
	}

	// With a sign change in hand the interval always collapses onto a
	// root; the iteration cap only bounds work, it is not a failure mode.
	mid := lo
	for i := 0; i < maxBisectIterations; i++ {
		mid = (lo + hi) / 2.0
		fMid := formulas.NPV(cashflows, mid)
		if math.Abs(fMid) < npvTolerance || (hi-lo)/2.0 < bisectionWidth {
			return mid, nil
		}
		if fLo*fMid < 0 {
			hi = mid
		} else {
			lo = mid
			fLo = fMid
		}
	}
	return mid, nil
}
