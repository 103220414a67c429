package domain

import "time"

// Canonical operating expense line names. Sensitivity perturbations
// address expense lines by these names.
const (
	ExpensePropertyTaxes = "property_taxes"
	ExpenseInsurance     = "insurance"
	ExpenseCAM           = "cam"
	ExpenseUtilities     = "utilities"
	ExpenseRepairs       = "repairs_maintenance"
)

// ExpenseLine is one annual operating expense with its own growth rate.
// Recoverable lines feed tenant recoveries under NNN and modified gross
// leases.
type ExpenseLine struct {
	Name         string  `json:"name" yaml:"name"`
	AnnualAmount float64 `json:"annual_amount" yaml:"annual_amount"`
	GrowthRate   float64 `json:"growth_rate" yaml:"growth_rate"`
	Recoverable  bool    `json:"recoverable" yaml:"recoverable"`
}

// PropertyTerms holds the acquisition-side inputs.
type PropertyTerms struct {
	Name             string  `json:"name" yaml:"name"`
	PurchasePrice    float64 `json:"purchase_price" yaml:"purchase_price"`
	AcquisitionCosts float64 `json:"acquisition_costs" yaml:"acquisition_costs"`
	RentableSF       float64 `json:"rentable_sf" yaml:"rentable_sf"`
}

// VacancyAssumptions is either a single project-wide rate or a per-period
// override table keyed by period index. Overrides win where present.
type VacancyAssumptions struct {
	GeneralRate float64         `json:"general_rate" yaml:"general_rate"`
	Overrides   map[int]float64 `json:"overrides,omitempty" yaml:"overrides,omitempty"`
}

// RateFor returns the vacancy rate applicable to a period index.
func (v VacancyAssumptions) RateFor(periodIndex int) float64 {
	if rate, ok := v.Overrides[periodIndex]; ok {
		return rate
	}
	return v.GeneralRate
}

// CapitalItem is one discrete outflow. Operating items roll into NOI;
// everything else only reduces cash available for distribution.
type CapitalItem struct {
	PeriodIndex int     `json:"period_index" yaml:"period_index"`
	Amount      float64 `json:"amount" yaml:"amount"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Operating   bool    `json:"operating,omitempty" yaml:"operating,omitempty"`
}

// CapitalAssumptions covers re-leasing costs and reserves. TI and leasing
// commissions are charged per square foot of each lease that expires
// inside the analysis window; reserves accrue per rentable square foot
// per year.
type CapitalAssumptions struct {
	TIAllowancePSF       float64       `json:"ti_allowance_psf" yaml:"ti_allowance_psf"`
	LeasingCommissionPSF float64       `json:"leasing_commission_psf" yaml:"leasing_commission_psf"`
	ReservePSFPerYear    float64       `json:"reserve_psf_per_year" yaml:"reserve_psf_per_year"`
	Items                []CapitalItem `json:"items,omitempty" yaml:"items,omitempty"`
}

// DebtTerms describes a standard amortizing acquisition loan.
type DebtTerms struct {
	LoanAmount        float64 `json:"loan_amount" yaml:"loan_amount"`
	InterestRate      float64 `json:"interest_rate" yaml:"interest_rate"`
	AmortizationYears int     `json:"amortization_years" yaml:"amortization_years"`
}

// ExitAssumptions describes the disposition.
type ExitAssumptions struct {
	HoldPeriodYears int     `json:"hold_period_years" yaml:"hold_period_years"`
	ExitCapRate     float64 `json:"exit_cap_rate" yaml:"exit_cap_rate"`
	SellingCostsPct float64 `json:"selling_costs_pct" yaml:"selling_costs_pct"`
}

// AnalysisWindow configures the projection grid.
type AnalysisWindow struct {
	StartDate  time.Time  `json:"start_date" yaml:"start_date"`
	NumPeriods int        `json:"num_periods" yaml:"num_periods"`
	PeriodType PeriodType `json:"period_type" yaml:"period_type"`
}

// Assumptions is the full baseline snapshot for one underwriting run.
// Engines treat it as immutable; sensitivity analysis works exclusively
// on Clone copies so concurrent runs share nothing mutable.
type Assumptions struct {
	Property         PropertyTerms      `json:"property" yaml:"property"`
	Leases           []LeaseTerm        `json:"leases" yaml:"leases"`
	Expenses         []ExpenseLine      `json:"expenses" yaml:"expenses"`
	ManagementFeePct float64            `json:"management_fee_pct" yaml:"management_fee_pct"`
	Vacancy          VacancyAssumptions `json:"vacancy" yaml:"vacancy"`
	CreditLossRate   float64            `json:"credit_loss_rate" yaml:"credit_loss_rate"`
	Capital          CapitalAssumptions `json:"capital" yaml:"capital"`
	Debt             DebtTerms          `json:"debt" yaml:"debt"`
	Exit             ExitAssumptions    `json:"exit" yaml:"exit"`
	Analysis         AnalysisWindow     `json:"analysis" yaml:"analysis"`
	DiscountRate     float64            `json:"discount_rate" yaml:"discount_rate"`
}

// InitialEquity is the cash the investor puts in at close.
func (a *Assumptions) InitialEquity() float64 {
	return a.Property.PurchasePrice - a.Debt.LoanAmount + a.Property.AcquisitionCosts
}

// Clone deep-copies the snapshot. Every slice and map the engines read is
// duplicated so a perturbed copy can be modified freely.
func (a *Assumptions) Clone() *Assumptions {
	out := *a

	out.Leases = make([]LeaseTerm, len(a.Leases))
	for i := range a.Leases {
		out.Leases[i] = a.Leases[i].clone()
	}

	out.Expenses = make([]ExpenseLine, len(a.Expenses))
	copy(out.Expenses, a.Expenses)

	if a.Vacancy.Overrides != nil {
		out.Vacancy.Overrides = make(map[int]float64, len(a.Vacancy.Overrides))
		for k, v := range a.Vacancy.Overrides {
			out.Vacancy.Overrides[k] = v
		}
	}

	if a.Capital.Items != nil {
		out.Capital.Items = make([]CapitalItem, len(a.Capital.Items))
		copy(out.Capital.Items, a.Capital.Items)
	}

	return &out
}

// ExpenseByName returns a pointer into the Expenses slice, or nil.
// Callers perturbing an expense line must operate on a Clone.
func (a *Assumptions) ExpenseByName(name string) *ExpenseLine {
	for i := range a.Expenses {
		if a.Expenses[i].Name == name {
			return &a.Expenses[i]
		}
	}
	return nil
}
