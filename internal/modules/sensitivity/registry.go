package sensitivity

import "github.com/aristath/proforma/internal/domain"

// DeltaPcts are the four perturbation scenarios run per assumption,
// relative to its baseline value.
var DeltaPcts = []float64{-20, -10, 10, 20}

// Registry returns the fixed set of 15 tracked assumptions, versioned
// with the engine. Each Apply scales its parameter multiplicatively on
// the cloned snapshot it receives; an assumption whose parameter is
// absent from a given deal (e.g. an expense line the property does not
// carry) degenerates to a zero-impact scenario rather than an error.
func Registry() []Assumption {
	return []Assumption{
		{
			ID: "exit_cap_rate", Label: "Exit Cap Rate", Category: CategoryExit,
			Apply: func(a *domain.Assumptions, f float64) { a.Exit.ExitCapRate *= f },
		},
		{
			ID: "base_rent", Label: "Base Rent", Category: CategoryRevenue,
			Apply: func(a *domain.Assumptions, f float64) {
				for i := range a.Leases {
					a.Leases[i].BaseRent *= f
				}
			},
		},
		{
			ID: "vacancy_rate", Label: "Vacancy Rate", Category: CategoryRevenue,
			Apply: func(a *domain.Assumptions, f float64) {
				a.Vacancy.GeneralRate *= f
				for k := range a.Vacancy.Overrides {
					a.Vacancy.Overrides[k] *= f
				}
			},
		},
		{
			ID: "credit_loss", Label: "Credit Loss", Category: CategoryRevenue,
			Apply: func(a *domain.Assumptions, f float64) { a.CreditLossRate *= f },
		},
		{
			ID: "rent_escalation", Label: "Rent Escalation", Category: CategoryRevenue,
			Apply: func(a *domain.Assumptions, f float64) {
				for i := range a.Leases {
					esc := &a.Leases[i].Escalation
					switch esc.Method {
					case domain.EscalationFixedPercent:
						esc.Rate *= f
					case domain.EscalationFixedDollar:
						esc.Delta *= f
					case domain.EscalationCPI:
						for j := range esc.Index {
							esc.Index[j] *= f
						}
					}
					// Stepped escalation is contractual and not perturbed.
				}
			},
		},
		{
			ID: "property_taxes", Label: "Property Taxes", Category: CategoryExpenses,
			Apply: scaleExpense(domain.ExpensePropertyTaxes),
		},
		{
			ID: "insurance", Label: "Insurance", Category: CategoryExpenses,
			Apply: scaleExpense(domain.ExpenseInsurance),
		},
		{
			ID: "cam", Label: "CAM Expenses", Category: CategoryExpenses,
			Apply: scaleExpense(domain.ExpenseCAM),
		},
		{
			ID: "utilities", Label: "Utilities", Category: CategoryExpenses,
			Apply: scaleExpense(domain.ExpenseUtilities),
		},
		{
			ID: "repairs_maintenance", Label: "Repairs & Maintenance", Category: CategoryExpenses,
			Apply: scaleExpense(domain.ExpenseRepairs),
		},
		{
			ID: "management_fee", Label: "Management Fee", Category: CategoryExpenses,
			Apply: func(a *domain.Assumptions, f float64) { a.ManagementFeePct *= f },
		},
		{
			ID: "ti_allowance", Label: "TI Allowance", Category: CategoryCapital,
			Apply: func(a *domain.Assumptions, f float64) { a.Capital.TIAllowancePSF *= f },
		},
		{
			ID: "leasing_commissions", Label: "Leasing Commissions", Category: CategoryCapital,
			Apply: func(a *domain.Assumptions, f float64) { a.Capital.LeasingCommissionPSF *= f },
		},
		{
			ID: "interest_rate", Label: "Interest Rate", Category: CategoryFinancing,
			Apply: func(a *domain.Assumptions, f float64) { a.Debt.InterestRate *= f },
		},
		{
			ID: "selling_costs", Label: "Selling Costs", Category: CategoryExit,
			Apply: func(a *domain.Assumptions, f float64) { a.Exit.SellingCostsPct *= f },
		},
	}
}

func scaleExpense(name string) func(*domain.Assumptions, float64) {
	return func(a *domain.Assumptions, f float64) {
		if line := a.ExpenseByName(name); line != nil {
			line.AnnualAmount *= f
		}
	}
}
