package metrics

import (
	"math"
	"testing"

	"github.com/aristath/proforma/pkg/formulas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveIRRKnownValue(t *testing.T) {
	// -1000 up front, 500 for three periods: IRR ~= 23.38%.
	cashflows := []float64{-1000, 500, 500, 500}

	rate, method, err := SolveIRR(cashflows, DefaultIRRGuess)
	require.NoError(t, err)
	assert.Equal(t, MethodNewton, method)
	assert.InDelta(t, 0.2338, rate, 0.001)
}

// For any series the solver converges on, NPV at the solved rate must be
// zero within tolerance.
func TestSolveIRRRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		cashflows []float64
	}{
		{"even payback", []float64{-1000, 500, 500, 500}},
		{"back-loaded", []float64{-5000, 100, 100, 100, 100, 8000}},
		{"long monthly series", monthlySeries(-800000, 6000, 120)},
		{"negative irr", []float64{-1000, 300, 300, 300}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, _, err := SolveIRR(tt.cashflows, DefaultIRRGuess)
			require.NoError(t, err)
			assert.InDelta(t, 0.0, formulas.NPV(tt.cashflows, rate), 1e-4)
		})
	}
}

func TestSolveIRRDeterministic(t *testing.T) {
	cashflows := monthlySeries(-800000, 6000, 120)
	first, _, err := SolveIRR(cashflows, DefaultIRRGuess)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, _, err := SolveIRR(cashflows, DefaultIRRGuess)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

// A wild guess sends the Newton iterate out of the sane rate domain; the
// solver must fall back to bisection and still find the root.
func TestSolveIRRBisectionFallback(t *testing.T) {
	cashflows := []float64{-100, 0, 0, 110} // (1+r)^3 = 1.1

	rate, method, err := SolveIRR(cashflows, 9.9)
	require.NoError(t, err)
	assert.Equal(t, MethodBisection, method)
	assert.InDelta(t, math.Pow(1.1, 1.0/3.0)-1.0, rate, 1e-4)
}

func TestSolveIRRNonConvergence(t *testing.T) {
	// No sign change: NPV is positive at every rate, there is no root.
	cashflows := []float64{100, 50, 25}

	_, _, err := SolveIRR(cashflows, DefaultIRRGuess)
	var nce *NonConvergenceError
	require.ErrorAs(t, err, &nce)
	assert.Greater(t, nce.Iterations, 0)
}

func monthlySeries(initial, monthly float64, months int) []float64 {
	out := make([]float64, months+1)
	out[0] = initial
	for i := 1; i <= months; i++ {
		out[i] = monthly
	}
	return out
}
