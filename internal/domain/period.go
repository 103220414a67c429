package domain

import "time"

// PeriodType selects the reporting interval for a projection.
type PeriodType string

const (
	PeriodMonthly PeriodType = "monthly"
	PeriodAnnual  PeriodType = "annual"
)

// MonthsPer returns how many calendar months one period index covers.
func (pt PeriodType) MonthsPer() int {
	if pt == PeriodAnnual {
		return 12
	}
	return 1
}

// PeriodsPerYear returns how many periods make up one year.
func (pt PeriodType) PeriodsPerYear() int {
	if pt == PeriodAnnual {
		return 1
	}
	return 12
}

// Period is one reporting interval in the projection grid.
// End is exclusive: a monthly period starting 2026-01-01 ends 2026-02-01.
type Period struct {
	Index int        `json:"index"`
	Start time.Time  `json:"start"`
	End   time.Time  `json:"end"`
	Type  PeriodType `json:"type"`
}

// Contains reports whether t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// CashFlowLine is the aggregated cash flow for one period.
// Revenue and expense components always reconcile: NOI equals
// BaseRent + PercentageRent + Recoveries - VacancyLoss - CreditLoss - OperatingExpenses.
type CashFlowLine struct {
	Period Period `json:"period"`

	BaseRent          float64 `json:"base_rent"`
	PercentageRent    float64 `json:"percentage_rent"`
	Recoveries        float64 `json:"recoveries"`
	VacancyLoss       float64 `json:"vacancy_loss"`
	CreditLoss        float64 `json:"credit_loss"`
	OperatingExpenses float64 `json:"operating_expenses"`
	NOI               float64 `json:"noi"`

	CapitalItems float64 `json:"capital_items"`
	UnleveredCF  float64 `json:"unlevered_cf"`

	// Debt fields are zero until a debt schedule is applied.
	DebtService float64 `json:"debt_service"`
	Interest    float64 `json:"interest"`
	Principal   float64 `json:"principal"`
	LeveredCF   float64 `json:"levered_cf"`
}

// ProjectionSummary holds whole-horizon totals for display and sanity checks.
type ProjectionSummary struct {
	TotalRevenue     float64 `json:"total_revenue"`
	TotalExpenses    float64 `json:"total_expenses"`
	TotalNOI         float64 `json:"total_noi"`
	TotalCapital     float64 `json:"total_capital"`
	TotalDebtService float64 `json:"total_debt_service"`
	TotalLeveredCF   float64 `json:"total_levered_cf"`
}

// Projection is the ordered cash-flow output of one engine run.
type Projection struct {
	Lines   []CashFlowLine    `json:"lines"`
	Summary ProjectionSummary `json:"summary"`
}

// NOISeries returns the per-period NOI values.
func (p *Projection) NOISeries() []float64 {
	out := make([]float64, len(p.Lines))
	for i, l := range p.Lines {
		out[i] = l.NOI
	}
	return out
}

// UnleveredSeries returns the per-period unlevered cash flows.
func (p *Projection) UnleveredSeries() []float64 {
	out := make([]float64, len(p.Lines))
	for i, l := range p.Lines {
		out[i] = l.UnleveredCF
	}
	return out
}

// LeveredSeries returns the per-period levered cash flows.
func (p *Projection) LeveredSeries() []float64 {
	out := make([]float64, len(p.Lines))
	for i, l := range p.Lines {
		out[i] = l.LeveredCF
	}
	return out
}
