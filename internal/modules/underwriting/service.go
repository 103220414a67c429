// Package underwriting is the single entry point for callers: it runs
// the cash-flow engine over the hold period plus a 12-month tail, applies
// debt, and hands the result to the metrics engine. The tail exists only
// so terminal value is capitalized on forward NOI; returned cash-flow
// lines cover the hold period.
package underwriting

import (
	"github.com/aristath/proforma/internal/domain"
	"github.com/aristath/proforma/internal/modules/cashflow"
	"github.com/aristath/proforma/internal/modules/metrics"
	"github.com/rs/zerolog"
)

// Service orchestrates one full underwriting run. Safe for concurrent
// use: both engines are stateless and every run works on its own clone.
type Service struct {
	cashflow *cashflow.Engine
	metrics  *metrics.Engine
	log      zerolog.Logger
}

// New creates an underwriting service with fresh engine instances.
func New(log zerolog.Logger) *Service {
	return &Service{
		cashflow: cashflow.NewEngine(log),
		metrics:  metrics.NewEngine(log),
		log:      log.With().Str("component", "underwriting").Logger(),
	}
}

// holdPeriods resolves how many reporting periods the investor holds.
// A zero hold period means the exit happens at the end of the analysis
// window.
func holdPeriods(a *domain.Assumptions) int {
	ppy := a.Analysis.PeriodType.PeriodsPerYear()
	hold := a.Exit.HoldPeriodYears * ppy
	if hold <= 0 || hold > a.Analysis.NumPeriods {
		return a.Analysis.NumPeriods
	}
	return hold
}

// Analyze projects the property and computes return metrics. The input
// snapshot is never mutated; projection happens on an extended clone so
// forward NOI at exit is computed, not extrapolated.
func (s *Service) Analyze(a *domain.Assumptions) (*domain.Projection, *metrics.Result, error) {
	hold := holdPeriods(a)
	tail := 12 / a.Analysis.PeriodType.MonthsPer()

	extended := a.Clone()
	extended.Analysis.NumPeriods = hold + tail

	proj, err := s.cashflow.Project(extended)
	if err != nil {
		return nil, nil, err
	}

	schedule := s.metrics.ApplyDebt(proj, a.Debt)

	result, err := s.metrics.Compute(metrics.Input{
		Projection:  proj,
		Assumptions: a,
		Schedule:    schedule,
		HoldPeriods: hold,
	})
	if err != nil {
		return nil, nil, err
	}

	// Trim the tail: callers see the hold period they asked for.
	trimmed := &domain.Projection{Lines: proj.Lines[:hold]}
	for _, l := range trimmed.Lines {
		trimmed.Summary.TotalRevenue += l.BaseRent + l.PercentageRent + l.Recoveries
		trimmed.Summary.TotalExpenses += l.VacancyLoss + l.CreditLoss + l.OperatingExpenses
		trimmed.Summary.TotalNOI += l.NOI
		trimmed.Summary.TotalCapital += l.CapitalItems
		trimmed.Summary.TotalDebtService += l.DebtService
		trimmed.Summary.TotalLeveredCF += l.LeveredCF
	}

	return trimmed, result, nil
}
