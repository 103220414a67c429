// Package cashflow projects period-by-period property cash flows for a
// set of leases, operating expenses and capital assumptions. It is the
// leaf engine: pure computation, no I/O, deterministic for identical
// inputs.
package cashflow

import (
	"fmt"
	"math"
	"time"

	"github.com/aristath/proforma/internal/domain"
	"github.com/rs/zerolog"
)

// Engine builds the period grid and computes revenue, expense, NOI and
// unlevered cash-flow lines. Debt service is applied downstream by the
// metrics engine.
type Engine struct {
	log zerolog.Logger
}

// NewEngine creates a cash-flow engine.
func NewEngine(log zerolog.Logger) *Engine {
	return &Engine{
		log: log.With().Str("component", "cashflow").Logger(),
	}
}

// Project validates the assumptions and computes the full projection.
// Structural errors (ValidationError, ConfigurationError,
// DuplicateLeaseConflict) fail fast before any period is generated.
func (e *Engine) Project(a *domain.Assumptions) (*domain.Projection, error) {
	if err := e.validate(a); err != nil {
		return nil, err
	}

	periods, err := GeneratePeriods(a.Analysis.StartDate, a.Analysis.NumPeriods, a.Analysis.PeriodType)
	if err != nil {
		return nil, err
	}

	months := monthGrid(a.Analysis.StartDate, a.Analysis.NumPeriods, a.Analysis.PeriodType)
	monthsPer := a.Analysis.PeriodType.MonthsPer()

	lines := make([]domain.CashFlowLine, len(periods))
	for i := range lines {
		lines[i].Period = periods[i]
	}

	for m, month := range months {
		reportIdx := m / monthsPer
		yearIdx := m / 12

		recoverable, total := e.monthlyOpex(a, yearIdx)

		var base, pct, recoveries float64
		for li := range a.Leases {
			rev, err := computeLeaseMonth(&a.Leases[li], month, recoverable)
			if err != nil {
				return nil, err
			}
			base += rev.BaseRent
			pct += rev.PercentageRent
			recoveries += rev.Recoveries
		}

		grossPotential := base + pct
		vacancy := a.Vacancy.RateFor(reportIdx) * grossPotential
		credit := a.CreditLossRate * grossPotential

		// Management fee is a percentage of effective gross revenue.
		egr := grossPotential + recoveries - vacancy - credit
		opex := total + a.ManagementFeePct*math.Max(0, egr)

		capital, operating := e.monthlyCapital(a, month, m, monthsPer)
		opex += operating

		noi := grossPotential + recoveries - vacancy - credit - opex

		line := &lines[reportIdx]
		line.BaseRent += base
		line.PercentageRent += pct
		line.Recoveries += recoveries
		line.VacancyLoss += vacancy
		line.CreditLoss += credit
		line.OperatingExpenses += opex
		line.NOI += noi
		line.CapitalItems += capital
		line.UnleveredCF += noi - capital
	}

	proj := &domain.Projection{Lines: lines}
	for _, l := range lines {
		proj.Summary.TotalRevenue += l.BaseRent + l.PercentageRent + l.Recoveries
		proj.Summary.TotalExpenses += l.VacancyLoss + l.CreditLoss + l.OperatingExpenses
		proj.Summary.TotalNOI += l.NOI
		proj.Summary.TotalCapital += l.CapitalItems
	}

	e.log.Debug().
		Int("periods", len(lines)).
		Int("leases", len(a.Leases)).
		Float64("total_noi", proj.Summary.TotalNOI).
		Msg("Projection complete")

	return proj, nil
}

// monthlyOpex returns the property's (recoverable, total) operating
// expenses for one month, with each line grown annually at its own rate.
func (e *Engine) monthlyOpex(a *domain.Assumptions, yearIdx int) (recoverable, total float64) {
	for _, line := range a.Expenses {
		amount := line.AnnualAmount * math.Pow(1.0+line.GrowthRate, float64(yearIdx)) / 12.0
		total += amount
		if line.Recoverable {
			recoverable += amount
		}
	}
	return recoverable, total
}

// monthlyCapital returns (capital, operating) outflows for one month.
// Reserves accrue monthly; TI and leasing commissions hit the month a
// lease expires; scheduled items hit the first month of their reporting
// period. Items flagged operating roll into opex (and therefore NOI)
// instead of the capital line.
func (e *Engine) monthlyCapital(a *domain.Assumptions, month domain.Period, monthIdx, monthsPer int) (capital, operating float64) {
	capital = a.Capital.ReservePSFPerYear * a.Property.RentableSF / 12.0

	for li := range a.Leases {
		lease := &a.Leases[li]
		if month.Contains(lease.TermEnd) {
			capital += (a.Capital.TIAllowancePSF + a.Capital.LeasingCommissionPSF) * lease.SquareFeet
		}
	}

	for _, item := range a.Capital.Items {
		if item.PeriodIndex*monthsPer != monthIdx {
			continue
		}
		if item.Operating {
			operating += item.Amount
		} else {
			capital += item.Amount
		}
	}
	return capital, operating
}

// validate enforces the structural invariants before any computation.
func (e *Engine) validate(a *domain.Assumptions) error {
	if a.Analysis.NumPeriods <= 0 {
		return &ValidationError{Field: "num_periods", Reason: "must be positive"}
	}
	if a.Analysis.StartDate.IsZero() {
		return &ValidationError{Field: "start_date", Reason: "must be set"}
	}

	analysisEnd := a.Analysis.StartDate.AddDate(0, a.Analysis.NumPeriods*a.Analysis.PeriodType.MonthsPer(), 0)

	for i := range a.Leases {
		lease := &a.Leases[i]
		subject := fmt.Sprintf("lease %s/%s", lease.UnitID, lease.Tenant)

		if !lease.TermEnd.After(lease.TermStart) {
			return &ValidationError{
				Field:  subject,
				Reason: fmt.Sprintf("term end %s not after term start %s", lease.TermEnd.Format("2006-01-02"), lease.TermStart.Format("2006-01-02")),
			}
		}
		if lease.BaseRent < 0 {
			return &ConfigurationError{Subject: subject, Err: fmt.Errorf("negative base rent %.2f", lease.BaseRent)}
		}
		if lease.RecoveryShare < 0 || lease.RecoveryShare > 1 {
			return &ConfigurationError{Subject: subject, Err: fmt.Errorf("recovery share %.4f outside [0,1]", lease.RecoveryShare)}
		}
		if _, ok := recoveryByType[lease.Type]; !ok {
			return &ConfigurationError{Subject: subject, Err: fmt.Errorf("unknown lease type %q", lease.Type)}
		}
		if lease.Percentage != nil && lease.Percentage.Rate <= 0 {
			return &ConfigurationError{Subject: subject, Err: fmt.Errorf("percentage rent rate must be positive")}
		}

		// Every escalation must resolve for every elapsed year the lease
		// can see inside the analysis window. The last active month starts
		// strictly before the earlier of term end and analysis end.
		lastActive := minTime(lease.TermEnd, analysisEnd).AddDate(0, 0, -1)
		maxYears := wholeYearsBetween(lease.TermStart, lastActive)
		if err := lease.Escalation.Validate(maxYears); err != nil {
			return &ConfigurationError{Subject: subject + " escalation", Err: err}
		}

		for j := i + 1; j < len(a.Leases); j++ {
			if lease.Overlaps(&a.Leases[j]) {
				return &DuplicateLeaseConflict{
					UnitID:  lease.UnitID,
					TenantA: lease.Tenant,
					TenantB: a.Leases[j].Tenant,
				}
			}
		}
	}

	for _, line := range a.Expenses {
		if line.AnnualAmount < 0 {
			return &ConfigurationError{Subject: "expense " + line.Name, Err: fmt.Errorf("negative annual amount %.2f", line.AnnualAmount)}
		}
	}

	return nil
}

func wholeYearsBetween(start, end time.Time) int {
	if !end.After(start) {
		return 0
	}
	years := end.Year() - start.Year()
	if start.AddDate(years, 0, 0).After(end) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
