// Package formulas provides the pure financial math shared by the
// underwriting engines: discounting, amortization and small statistics
// helpers. Everything here is stateless and safe for concurrent use.
package formulas

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// NPV calculates the net present value of a cash-flow series at a
// per-period discount rate. CF_0 is discounted by (1+r)^0, i.e. not at all.
func NPV(cashflows []float64, rate float64) float64 {
	npv := 0.0
	for t, cf := range cashflows {
		npv += cf / math.Pow(1.0+rate, float64(t))
	}
	return npv
}

// NPVDerivative is d(NPV)/dr, the analytic derivative used by
// Newton-Raphson IRR iteration:
//
//	f'(r) = Σ -t * CF_t / (1+r)^(t+1)
func NPVDerivative(cashflows []float64, rate float64) float64 {
	d := 0.0
	for t, cf := range cashflows {
		if t == 0 {
			continue
		}
		d += -float64(t) * cf / math.Pow(1.0+rate, float64(t+1))
	}
	return d
}

// Payment calculates the level periodic payment on an amortizing loan:
//
//	pmt = P * r / (1 - (1+r)^-n)
//
// A zero rate degenerates to straight-line principal repayment.
func Payment(principal, periodRate float64, numPayments int) float64 {
	if numPayments <= 0 {
		return 0
	}
	if periodRate == 0 {
		return principal / float64(numPayments)
	}
	return principal * periodRate / (1.0 - math.Pow(1.0+periodRate, -float64(numPayments)))
}

// Sum adds a series. Empty series sum to zero.
func Sum(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return floats.Sum(values)
}

// PeriodRate converts a nominal annual rate to a per-period rate for the
// given number of periods per year (nominal convention: annual / periods).
func PeriodRate(annualRate float64, periodsPerYear int) float64 {
	if periodsPerYear <= 0 {
		return annualRate
	}
	return annualRate / float64(periodsPerYear)
}

// AnnualRate converts a per-period rate back to a nominal annual rate.
func AnnualRate(periodRate float64, periodsPerYear int) float64 {
	if periodsPerYear <= 0 {
		return periodRate
	}
	return periodRate * float64(periodsPerYear)
}
