package domain

import "time"

// LeaseType determines who bears operating expenses and how recoveries
// are calculated.
type LeaseType string

const (
	LeaseNNN           LeaseType = "nnn"
	LeaseModifiedGross LeaseType = "modified_gross"
	LeaseGross         LeaseType = "gross"
	LeaseGround        LeaseType = "ground"
)

// PercentageRent holds retail overage terms. Rent above the breakpoint is
// owed at Rate; a natural breakpoint is derived from annual base rent and
// the rate instead of being fixed in the lease.
type PercentageRent struct {
	Rate              float64 `json:"rate" yaml:"rate"`
	Breakpoint        float64 `json:"breakpoint,omitempty" yaml:"breakpoint,omitempty"`
	NaturalBreakpoint bool    `json:"natural_breakpoint,omitempty" yaml:"natural_breakpoint,omitempty"`
	AnnualSales       float64 `json:"annual_sales" yaml:"annual_sales"`
	SalesGrowth       float64 `json:"sales_growth,omitempty" yaml:"sales_growth,omitempty"`
}

// LeaseTerm is one tenant's lease. Immutable during a computation; the
// engine never writes back into it.
type LeaseTerm struct {
	UnitID string    `json:"unit_id" yaml:"unit_id"`
	Tenant string    `json:"tenant" yaml:"tenant"`
	Type   LeaseType `json:"type" yaml:"type"`

	// BaseRent is the monthly rent at lease start.
	BaseRent   float64        `json:"base_rent" yaml:"base_rent"`
	SquareFeet float64        `json:"square_feet" yaml:"square_feet"`
	Escalation EscalationSpec `json:"escalation" yaml:"escalation"`

	// RecoveryShare is the tenant's pro-rata share of recoverable opex.
	RecoveryShare float64 `json:"recovery_share" yaml:"recovery_share"`

	// Modified gross only: expenses below the stop stay with the landlord;
	// a positive RecoveryCap limits the annual recovery billed.
	ExpenseStop float64 `json:"expense_stop,omitempty" yaml:"expense_stop,omitempty"`
	RecoveryCap float64 `json:"recovery_cap,omitempty" yaml:"recovery_cap,omitempty"`

	Percentage *PercentageRent `json:"percentage_rent,omitempty" yaml:"percentage_rent,omitempty"`

	TermStart time.Time `json:"term_start" yaml:"term_start"`
	TermEnd   time.Time `json:"term_end" yaml:"term_end"`
}

// Active reports whether the lease covers any part of the period.
// Leases whose term does not reach the period contribute zero.
func (l *LeaseTerm) Active(p Period) bool {
	return l.TermStart.Before(p.End) && p.Start.Before(l.TermEnd)
}

// ElapsedYears returns whole years between lease start and the period
// start, floored at zero. Escalation resolves at this annual granularity.
func (l *LeaseTerm) ElapsedYears(p Period) int {
	if p.Start.Before(l.TermStart) {
		return 0
	}
	years := p.Start.Year() - l.TermStart.Year()
	anniversary := l.TermStart.AddDate(years, 0, 0)
	if anniversary.After(p.Start) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// Overlaps reports whether two leases occupy the same unit in
// overlapping date ranges.
func (l *LeaseTerm) Overlaps(other *LeaseTerm) bool {
	if l.UnitID != other.UnitID {
		return false
	}
	return l.TermStart.Before(other.TermEnd) && other.TermStart.Before(l.TermEnd)
}

func (l *LeaseTerm) clone() LeaseTerm {
	out := *l
	out.Escalation = l.Escalation.clone()
	if l.Percentage != nil {
		pr := *l.Percentage
		out.Percentage = &pr
	}
	return out
}
