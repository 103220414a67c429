// Package metrics derives investor return metrics from a projected
// cash-flow series: IRR, NPV, equity multiple, cash-on-cash, DSCR,
// amortization and exit valuation.
package metrics

import (
	"fmt"

	"github.com/aristath/proforma/internal/domain"
	"github.com/aristath/proforma/pkg/formulas"
	"github.com/rs/zerolog"
)

// DSCREntry is the debt service coverage for one period. BelowOne flags
// coverage under 1.0x; downstream consumers decide severity.
type DSCREntry struct {
	Period   int     `json:"period"`
	Value    float64 `json:"value"`
	BelowOne bool    `json:"below_one"`
}

// Result is the return summary for one underwriting run. IRRs are
// nominal annual rates, consistent with the discount-rate convention
// (per-period rate × periods per year).
type Result struct {
	LeveredIRR         float64     `json:"levered_irr"`
	UnleveredIRR       float64     `json:"unlevered_irr"`
	LeveredIRRMethod   SolveMethod `json:"levered_irr_method"`
	UnleveredIRRMethod SolveMethod `json:"unlevered_irr_method"`

	NPV            float64 `json:"npv"`
	EquityMultiple float64 `json:"equity_multiple"`

	ExitValue       float64 `json:"exit_value"`
	NetSaleProceeds float64 `json:"net_sale_proceeds"`
	LoanPayoff      float64 `json:"loan_payoff"`
	InitialEquity   float64 `json:"initial_equity"`
	ForwardNOI      float64 `json:"forward_noi"`

	CashOnCash []float64   `json:"cash_on_cash_by_period"`
	DSCR       []DSCREntry `json:"dscr_by_period"`
}

// Input carries one metrics computation. The projection must extend at
// least 12 months past the hold so terminal NOI is the forward 12-month
// NOI as of the exit period, not the trailing NOI.
type Input struct {
	Projection  *domain.Projection
	Assumptions *domain.Assumptions
	Schedule    *DebtSchedule
	HoldPeriods int
}

// Engine computes investment metrics. Stateless apart from its logger.
type Engine struct {
	log zerolog.Logger
}

// NewEngine creates a metrics engine.
func NewEngine(log zerolog.Logger) *Engine {
	return &Engine{
		log: log.With().Str("component", "metrics").Logger(),
	}
}

// ApplyDebt amortizes the loan across the projection and fills the debt
// service, interest, principal and levered cash-flow fields of every
// line. Returns the monthly schedule for exit payoff calculations.
func (e *Engine) ApplyDebt(proj *domain.Projection, debt domain.DebtTerms) *DebtSchedule {
	if len(proj.Lines) == 0 {
		return BuildSchedule(debt, 0)
	}

	periodType := proj.Lines[0].Period.Type
	numMonths := len(proj.Lines) * periodType.MonthsPer()
	schedule := BuildSchedule(debt, numMonths)

	service, interest, principal := schedule.PeriodDebtService(periodType, len(proj.Lines))
	proj.Summary.TotalDebtService = 0
	proj.Summary.TotalLeveredCF = 0
	for i := range proj.Lines {
		line := &proj.Lines[i]
		line.DebtService = service[i]
		line.Interest = interest[i]
		line.Principal = principal[i]
		line.LeveredCF = line.UnleveredCF - line.DebtService
		proj.Summary.TotalDebtService += line.DebtService
		proj.Summary.TotalLeveredCF += line.LeveredCF
	}
	return schedule
}

// NPV discounts a cash-flow series at a nominal annual rate, converting
// to a per-period rate consistent with the period type.
func (e *Engine) NPV(cashflows []float64, annualRate float64, periodType domain.PeriodType) float64 {
	return formulas.NPV(cashflows, formulas.PeriodRate(annualRate, periodType.PeriodsPerYear()))
}

// ExitValue capitalizes forward 12-month NOI at the exit cap rate and
// nets out selling costs. A non-positive cap rate is undefined.
func (e *Engine) ExitValue(forwardNOI, exitCapRate, sellingCostsPct float64) (gross, net float64, err error) {
	if exitCapRate <= 0 {
		return 0, 0, &DomainError{
			Op:     "exit_value",
			Reason: fmt.Sprintf("exit cap rate must be positive, got %.4f", exitCapRate),
		}
	}
	gross = forwardNOI / exitCapRate
	net = gross * (1.0 - sellingCostsPct)
	return gross, net, nil
}

// Compute derives the full metrics result. Numerical errors
// (NonConvergenceError, DomainError) carry the computation context; the
// caller decides severity.
func (e *Engine) Compute(in Input) (*Result, error) {
	proj, a := in.Projection, in.Assumptions
	periodType := a.Analysis.PeriodType
	ppy := periodType.PeriodsPerYear()
	tail := 12 / periodType.MonthsPer()

	if in.HoldPeriods <= 0 {
		return nil, &DomainError{Op: "metrics", Reason: "hold period must cover at least one period"}
	}
	if len(proj.Lines) < in.HoldPeriods+tail {
		return nil, &DomainError{
			Op:     "forward_noi",
			Reason: fmt.Sprintf("projection has %d periods, need %d for a 12-month tail past the hold", len(proj.Lines), in.HoldPeriods+tail),
		}
	}

	forwardNOI := 0.0
	for i := in.HoldPeriods; i < in.HoldPeriods+tail; i++ {
		forwardNOI += proj.Lines[i].NOI
	}

	gross, net, err := e.ExitValue(forwardNOI, a.Exit.ExitCapRate, a.Exit.SellingCostsPct)
	if err != nil {
		return nil, err
	}

	initialEquity := a.InitialEquity()
	if initialEquity <= 0 {
		return nil, &DomainError{
			Op:     "equity",
			Reason: fmt.Sprintf("initial equity must be positive, got %.2f", initialEquity),
		}
	}

	payoff := in.Schedule.BalanceAfter(in.HoldPeriods * periodType.MonthsPer())

	// Levered equity series: outlay, hold-period cash flows, then net
	// sale proceeds after loan payoff in the final period.
	levered := make([]float64, in.HoldPeriods+1)
	levered[0] = -initialEquity
	for i := 0; i < in.HoldPeriods; i++ {
		levered[i+1] = proj.Lines[i].LeveredCF
	}
	levered[in.HoldPeriods] += net - payoff

	unlevered := make([]float64, in.HoldPeriods+1)
	unlevered[0] = -(a.Property.PurchasePrice + a.Property.AcquisitionCosts)
	for i := 0; i < in.HoldPeriods; i++ {
		unlevered[i+1] = proj.Lines[i].UnleveredCF
	}
	unlevered[in.HoldPeriods] += net

	// The 10% default guess is annual; the solver works in per-period
	// rates.
	guess := formulas.PeriodRate(DefaultIRRGuess, ppy)
	leveredIRR, leveredMethod, err := SolveIRR(levered, guess)
	if err != nil {
		return nil, fmt.Errorf("levered irr: %w", err)
	}
	unleveredIRR, unleveredMethod, err := SolveIRR(unlevered, guess)
	if err != nil {
		return nil, fmt.Errorf("unlevered irr: %w", err)
	}

	result := &Result{
		LeveredIRR:         formulas.AnnualRate(leveredIRR, ppy),
		UnleveredIRR:       formulas.AnnualRate(unleveredIRR, ppy),
		LeveredIRRMethod:   leveredMethod,
		UnleveredIRRMethod: unleveredMethod,
		NPV:                e.NPV(levered, a.DiscountRate, periodType),
		ExitValue:          gross,
		NetSaleProceeds:    net,
		LoanPayoff:         payoff,
		InitialEquity:      initialEquity,
		ForwardNOI:         forwardNOI,
		CashOnCash:         make([]float64, in.HoldPeriods),
	}

	// Equity multiple: total distributions over total equity invested.
	// Negative period cash flows are additional equity in, not negative
	// distributions.
	distributions := 0.0
	invested := initialEquity
	for _, cf := range levered[1:] {
		if cf >= 0 {
			distributions += cf
		} else {
			invested += -cf
		}
	}
	result.EquityMultiple = distributions / invested

	for i := 0; i < in.HoldPeriods; i++ {
		line := proj.Lines[i]
		result.CashOnCash[i] = line.LeveredCF / initialEquity
		if line.DebtService > 0 {
			dscr := line.NOI / line.DebtService
			result.DSCR = append(result.DSCR, DSCREntry{
				Period:   i,
				Value:    dscr,
				BelowOne: dscr < 1.0,
			})
		}
	}

	e.log.Debug().
		Float64("levered_irr", result.LeveredIRR).
		Float64("npv", result.NPV).
		Float64("exit_value", gross).
		Str("irr_method", string(leveredMethod)).
		Msg("Metrics computed")

	return result, nil
}
