package cashflow

import (
	"time"

	"github.com/aristath/proforma/internal/domain"
)

// GeneratePeriods builds the deterministic period grid for a projection.
// Annual periods collapse 12 monthly steps per index, so period N of an
// annual grid covers the same dates as periods 12N..12N+11 of a monthly
// one.
func GeneratePeriods(start time.Time, numPeriods int, periodType domain.PeriodType) ([]domain.Period, error) {
	if numPeriods <= 0 {
		return nil, &ValidationError{Field: "num_periods", Reason: "must be positive"}
	}
	if start.IsZero() {
		return nil, &ValidationError{Field: "start_date", Reason: "must be set"}
	}
	if periodType != domain.PeriodMonthly && periodType != domain.PeriodAnnual {
		return nil, &ValidationError{Field: "period_type", Reason: "must be monthly or annual"}
	}

	months := periodType.MonthsPer()
	periods := make([]domain.Period, numPeriods)
	cursor := start
	for i := 0; i < numPeriods; i++ {
		next := cursor.AddDate(0, months, 0)
		periods[i] = domain.Period{
			Index: i,
			Start: cursor,
			End:   next,
			Type:  periodType,
		}
		cursor = next
	}
	return periods, nil
}

// monthGrid expands a reporting window into its monthly sub-periods.
// The engine always computes at monthly resolution and collapses, which
// keeps monthly and annual projections numerically consistent.
func monthGrid(start time.Time, numPeriods int, periodType domain.PeriodType) []domain.Period {
	months := numPeriods * periodType.MonthsPer()
	grid := make([]domain.Period, months)
	cursor := start
	for i := 0; i < months; i++ {
		next := cursor.AddDate(0, 1, 0)
		grid[i] = domain.Period{
			Index: i,
			Start: cursor,
			End:   next,
			Type:  domain.PeriodMonthly,
		}
		cursor = next
	}
	return grid
}
