package sensitivity

import (
	"context"
	"testing"
	"time"

	"github.com/aristath/proforma/internal/domain"
	"github.com/aristath/proforma/internal/modules/metrics"
	"github.com/aristath/proforma/internal/modules/underwriting"
	"github.com/aristath/proforma/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAnalyzer derives a deterministic IRR from a couple of inputs so
// scenario deltas are predictable without running the real engines.
type fakeAnalyzer struct {
	fail func(a *domain.Assumptions) error
}

func (f *fakeAnalyzer) Analyze(a *domain.Assumptions) (*domain.Projection, *metrics.Result, error) {
	if f.fail != nil {
		if err := f.fail(a); err != nil {
			return nil, nil, err
		}
	}
	// IRR responds linearly to the exit cap rate and nothing else.
	return &domain.Projection{}, &metrics.Result{LeveredIRR: a.Exit.ExitCapRate}, nil
}

func testLog() zerolog.Logger {
	return logger.New(logger.Config{Level: "error"})
}

func baseline() *domain.Assumptions {
	return &domain.Assumptions{
		Exit: domain.ExitAssumptions{ExitCapRate: 0.065, SellingCostsPct: 0.02},
		Debt: domain.DebtTerms{LoanAmount: 1_000_000, InterestRate: 0.045, AmortizationYears: 25},
	}
}

func TestRunMatrixShape(t *testing.T) {
	engine := NewEngine(&fakeAnalyzer{}, 4, testLog())

	batch, err := engine.Run(context.Background(), baseline())
	require.NoError(t, err)

	assert.Len(t, batch.Scenarios, 60)
	assert.Len(t, batch.Impacts, 15)
	assert.Len(t, batch.Milestones, 4)
	assert.Zero(t, batch.Failures)
	assert.False(t, batch.Cancelled)
	assert.NotEqual(t, batch.ID.String(), "00000000-0000-0000-0000-000000000000")

	// The unperturbed IRR anchors every delta.
	assert.InDelta(t, 0.065, batch.BaselineIRR, 1e-12)
}

func TestRunDeltas(t *testing.T) {
	engine := NewEngine(&fakeAnalyzer{}, 4, testLog())

	batch, err := engine.Run(context.Background(), baseline())
	require.NoError(t, err)

	for _, s := range batch.Scenarios {
		if s.AssumptionID == "exit_cap_rate" {
			// IRR = cap rate in the fake, so +10% cap -> +65 bps.
			want := 0.065 * s.DeltaPct / 100 * 10000
			assert.InDelta(t, want, s.IRRDeltaBps, 1e-6)
		} else {
			assert.InDelta(t, 0, s.IRRDeltaBps, 1e-9, s.AssumptionID)
		}
	}

	// exit_cap_rate must rank first; everything else is flat.
	assert.Equal(t, "exit_cap_rate", batch.Impacts[0].AssumptionID)
}

func TestRunBaselineNeverPerturbed(t *testing.T) {
	engine := NewEngine(&fakeAnalyzer{}, 8, testLog())
	base := baseline()

	_, err := engine.Run(context.Background(), base)
	require.NoError(t, err)

	// 60 concurrent runs later the caller's snapshot is untouched.
	assert.Equal(t, 0.065, base.Exit.ExitCapRate)
	assert.Equal(t, 0.045, base.Debt.InterestRate)
}

func TestRunPartialFailure(t *testing.T) {
	// One scenario (interest rate -20%) fails; the batch must keep the
	// other 59 and exclude the failure from aggregation.
	fake := &fakeAnalyzer{
		fail: func(a *domain.Assumptions) error {
			if a.Debt.InterestRate < 0.04 {
				return &metrics.NonConvergenceError{Iterations: 100}
			}
			return nil
		},
	}
	engine := NewEngine(fake, 4, testLog())

	batch, err := engine.Run(context.Background(), baseline())
	require.NoError(t, err)

	assert.Equal(t, 1, batch.Failures)

	valid := 0
	for _, s := range batch.Scenarios {
		if s.Failed {
			assert.Equal(t, "interest_rate", s.AssumptionID)
			assert.Equal(t, -20.0, s.DeltaPct)
			assert.Contains(t, s.Error, "did not converge")
		} else {
			valid++
		}
	}
	assert.Equal(t, 59, valid)

	for _, imp := range batch.Impacts {
		if imp.AssumptionID == "interest_rate" {
			assert.InDelta(t, 0, imp.MeanAbsBps, 1e-9)
		}
	}
}

func TestRunCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := NewEngine(&fakeAnalyzer{}, 1, testLog())
	batch, err := engine.Run(ctx, baseline())
	require.NoError(t, err)

	assert.True(t, batch.Cancelled)
	for _, s := range batch.Scenarios {
		assert.True(t, s.Failed)
		assert.Equal(t, "cancelled", s.Error)
	}
}

// Perturbing an assumption that only affects the exit must leave every
// cash-flow line identical to the baseline.
func TestScenarioIsolation(t *testing.T) {
	svc := underwriting.New(testLog())
	base := &domain.Assumptions{
		Property: domain.PropertyTerms{PurchasePrice: 1_800_000, RentableSF: 10_000},
		Leases: []domain.LeaseTerm{{
			UnitID: "1", Tenant: "Tenant", Type: domain.LeaseNNN,
			BaseRent: 10_000, SquareFeet: 10_000, RecoveryShare: 1.0,
			TermStart: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
			TermEnd:   time.Date(2045, 1, 1, 0, 0, 0, 0, time.UTC),
		}},
		Debt: domain.DebtTerms{LoanAmount: 1_000_000, InterestRate: 0.045, AmortizationYears: 25},
		Exit: domain.ExitAssumptions{ExitCapRate: 0.065},
		Analysis: domain.AnalysisWindow{
			StartDate:  time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
			NumPeriods: 60,
			PeriodType: domain.PeriodMonthly,
		},
		DiscountRate: 0.08,
	}

	baseProj, _, err := svc.Analyze(base)
	require.NoError(t, err)

	var exitCap Assumption
	for _, a := range Registry() {
		if a.ID == "exit_cap_rate" {
			exitCap = a
		}
	}
	require.NotNil(t, exitCap.Apply)

	perturbed := base.Clone()
	exitCap.Apply(perturbed, 1.10)
	perturbedProj, _, err := svc.Analyze(perturbed)
	require.NoError(t, err)

	require.Len(t, perturbedProj.Lines, len(baseProj.Lines))
	for i := range baseProj.Lines {
		assert.Equal(t, baseProj.Lines[i], perturbedProj.Lines[i], "period %d", i)
	}
}
