package metrics

import (
	"github.com/aristath/proforma/internal/domain"
	"github.com/aristath/proforma/pkg/formulas"
)

// DebtPayment is one month of a standard amortization schedule.
type DebtPayment struct {
	Month     int     `json:"month"`
	Payment   float64 `json:"payment"`
	Interest  float64 `json:"interest"`
	Principal float64 `json:"principal"`
	Balance   float64 `json:"balance"`
}

// DebtSchedule is the monthly amortization of an acquisition loan,
// computed once per run and sliced into reporting periods as needed.
type DebtSchedule struct {
	MonthlyPayment float64
	Payments       []DebtPayment
}

// BuildSchedule amortizes the loan over numMonths of the projection.
// The schedule stops accruing once the loan fully amortizes; months past
// that point carry zero payment and zero balance.
func BuildSchedule(debt domain.DebtTerms, numMonths int) *DebtSchedule {
	if debt.LoanAmount <= 0 || numMonths <= 0 {
		return &DebtSchedule{Payments: make([]DebtPayment, maxInt(numMonths, 0))}
	}

	monthlyRate := debt.InterestRate / 12.0
	totalPayments := debt.AmortizationYears * 12
	payment := formulas.Payment(debt.LoanAmount, monthlyRate, totalPayments)

	schedule := &DebtSchedule{
		MonthlyPayment: payment,
		Payments:       make([]DebtPayment, numMonths),
	}

	balance := debt.LoanAmount
	for m := 0; m < numMonths; m++ {
		entry := DebtPayment{Month: m}
		if balance > 0 && m < totalPayments {
			interest := balance * monthlyRate
			principal := payment - interest
			if principal > balance {
				// Final payment retires the remaining balance.
				principal = balance
			}
			entry.Interest = interest
			entry.Principal = principal
			entry.Payment = interest + principal
			balance -= principal
			if balance < 0.005 {
				// Sub-cent residue from the level-payment rounding.
				balance = 0
			}
		}
		entry.Balance = balance
		schedule.Payments[m] = entry
	}
	return schedule
}

// BalanceAfter returns the outstanding balance after numMonths of
// payments. Used to net the loan payoff out of sale proceeds at exit.
func (s *DebtSchedule) BalanceAfter(numMonths int) float64 {
	if numMonths <= 0 {
		if len(s.Payments) == 0 {
			return 0
		}
		return s.Payments[0].Balance + s.Payments[0].Principal
	}
	if numMonths > len(s.Payments) {
		numMonths = len(s.Payments)
	}
	return s.Payments[numMonths-1].Balance
}

// PeriodDebtService aggregates the monthly schedule into reporting
// periods: (debt service, interest, principal) per period.
func (s *DebtSchedule) PeriodDebtService(periodType domain.PeriodType, numPeriods int) (service, interest, principal []float64) {
	monthsPer := periodType.MonthsPer()
	service = make([]float64, numPeriods)
	interest = make([]float64, numPeriods)
	principal = make([]float64, numPeriods)
	for m, p := range s.Payments {
		idx := m / monthsPer
		if idx >= numPeriods {
			break
		}
		service[idx] += p.Payment
		interest[idx] += p.Interest
		principal[idx] += p.Principal
	}
	return service, interest, principal
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
