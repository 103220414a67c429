package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestCloneIsDeep(t *testing.T) {
	base := &Assumptions{
		Leases: []LeaseTerm{{
			UnitID:     "A",
			Tenant:     "Acme",
			Type:       LeaseNNN,
			BaseRent:   5000,
			Escalation: EscalationSpec{Method: EscalationCPI, Index: []float64{0.02, 0.03}, Cap: 0.05},
			Percentage: &PercentageRent{Rate: 0.06, AnnualSales: 2_000_000},
			TermStart:  date(2030, 1, 1),
			TermEnd:    date(2040, 1, 1),
		}},
		Expenses: []ExpenseLine{{Name: ExpensePropertyTaxes, AnnualAmount: 90000, Recoverable: true}},
		Vacancy:  VacancyAssumptions{GeneralRate: 0.05, Overrides: map[int]float64{3: 0.10}},
		Capital:  CapitalAssumptions{Items: []CapitalItem{{PeriodIndex: 12, Amount: 50000}}},
	}

	clone := base.Clone()
	clone.Leases[0].BaseRent = 9999
	clone.Leases[0].Escalation.Index[0] = 0.99
	clone.Leases[0].Percentage.Rate = 0.99
	clone.Expenses[0].AnnualAmount = 1
	clone.Vacancy.Overrides[3] = 0.99
	clone.Capital.Items[0].Amount = 1

	assert.Equal(t, 5000.0, base.Leases[0].BaseRent)
	assert.Equal(t, 0.02, base.Leases[0].Escalation.Index[0])
	assert.Equal(t, 0.06, base.Leases[0].Percentage.Rate)
	assert.Equal(t, 90000.0, base.Expenses[0].AnnualAmount)
	assert.Equal(t, 0.10, base.Vacancy.Overrides[3])
	assert.Equal(t, 50000.0, base.Capital.Items[0].Amount)
}

func TestLeaseActiveAndElapsed(t *testing.T) {
	lease := LeaseTerm{
		UnitID:    "A",
		TermStart: date(2030, 6, 1),
		TermEnd:   date(2035, 6, 1),
	}

	before := Period{Start: date(2030, 5, 1), End: date(2030, 6, 1), Type: PeriodMonthly}
	first := Period{Start: date(2030, 6, 1), End: date(2030, 7, 1), Type: PeriodMonthly}
	later := Period{Start: date(2033, 8, 1), End: date(2033, 9, 1), Type: PeriodMonthly}
	after := Period{Start: date(2035, 6, 1), End: date(2035, 7, 1), Type: PeriodMonthly}

	assert.False(t, lease.Active(before))
	assert.True(t, lease.Active(first))
	assert.True(t, lease.Active(later))
	assert.False(t, lease.Active(after))

	assert.Equal(t, 0, lease.ElapsedYears(first))
	assert.Equal(t, 3, lease.ElapsedYears(later))
	// Month before the anniversary still counts as the prior lease year.
	assert.Equal(t, 2, lease.ElapsedYears(Period{Start: date(2033, 5, 1), End: date(2033, 6, 1)}))
}

func TestLeaseOverlaps(t *testing.T) {
	a := LeaseTerm{UnitID: "A", TermStart: date(2030, 1, 1), TermEnd: date(2032, 1, 1)}
	b := LeaseTerm{UnitID: "A", TermStart: date(2031, 6, 1), TermEnd: date(2033, 1, 1)}
	c := LeaseTerm{UnitID: "A", TermStart: date(2032, 1, 1), TermEnd: date(2034, 1, 1)}
	d := LeaseTerm{UnitID: "B", TermStart: date(2030, 1, 1), TermEnd: date(2040, 1, 1)}

	assert.True(t, a.Overlaps(&b))
	// Back-to-back terms do not conflict: end dates are exclusive.
	assert.False(t, a.Overlaps(&c))
	assert.False(t, a.Overlaps(&d))
}

func TestVacancyRateFor(t *testing.T) {
	v := VacancyAssumptions{GeneralRate: 0.05, Overrides: map[int]float64{2: 0.25}}
	assert.Equal(t, 0.05, v.RateFor(0))
	assert.Equal(t, 0.25, v.RateFor(2))
}

func TestInitialEquity(t *testing.T) {
	a := &Assumptions{
		Property: PropertyTerms{PurchasePrice: 1_800_000, AcquisitionCosts: 25_000},
		Debt:     DebtTerms{LoanAmount: 1_000_000},
	}
	require.Equal(t, 825_000.0, a.InitialEquity())
}
