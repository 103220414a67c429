package cashflow

import (
	"fmt"
	"math"

	"github.com/aristath/proforma/internal/domain"
)

// leaseRevenue is one lease's contribution to a single month.
type leaseRevenue struct {
	BaseRent       float64
	PercentageRent float64
	Recoveries     float64
}

// recoveryFunc computes the landlord's recovery revenue for one month
// given the month's recoverable opex. One function per lease type keeps
// each rule independently testable.
type recoveryFunc func(lease *domain.LeaseTerm, recoverableOpex float64) float64

var recoveryByType = map[domain.LeaseType]recoveryFunc{
	domain.LeaseNNN:           recoverNNN,
	domain.LeaseModifiedGross: recoverModifiedGross,
	domain.LeaseGross:         recoverNothing,
	domain.LeaseGround:        recoverNothing,
}

// recoverNNN: the tenant reimburses 100% of recoverable opex pro-rata.
func recoverNNN(lease *domain.LeaseTerm, recoverableOpex float64) float64 {
	return lease.RecoveryShare * recoverableOpex
}

// recoverModifiedGross: expenses up to the stop stay with the landlord;
// the recovery billed is optionally capped.
func recoverModifiedGross(lease *domain.LeaseTerm, recoverableOpex float64) float64 {
	monthlyStop := lease.ExpenseStop / 12.0
	recovery := lease.RecoveryShare * math.Max(0, recoverableOpex-monthlyStop)
	if lease.RecoveryCap > 0 {
		recovery = math.Min(recovery, lease.RecoveryCap/12.0)
	}
	return recovery
}

// recoverNothing: gross and ground leases generate no expense recoveries.
func recoverNothing(_ *domain.LeaseTerm, _ float64) float64 {
	return 0
}

// computeLeaseMonth resolves one lease's revenue for one month.
// month is a monthly-resolution period; recoverableOpex is that month's
// recoverable opex for the whole property.
func computeLeaseMonth(lease *domain.LeaseTerm, month domain.Period, recoverableOpex float64) (leaseRevenue, error) {
	var rev leaseRevenue
	if !lease.Active(month) {
		return rev, nil
	}

	elapsed := lease.ElapsedYears(month)
	rent, err := lease.Escalation.Apply(lease.BaseRent, elapsed)
	if err != nil {
		return rev, &ConfigurationError{Subject: fmt.Sprintf("lease %s/%s escalation", lease.UnitID, lease.Tenant), Err: err}
	}
	rev.BaseRent = rent

	if lease.Percentage != nil {
		pct, err := percentageRentMonth(lease, rent, elapsed)
		if err != nil {
			return rev, err
		}
		rev.PercentageRent = pct
	}

	recover, ok := recoveryByType[lease.Type]
	if !ok {
		return rev, &ConfigurationError{
			Subject: fmt.Sprintf("lease %s/%s", lease.UnitID, lease.Tenant),
			Err:     fmt.Errorf("unknown lease type %q", lease.Type),
		}
	}
	rev.Recoveries = recover(lease, recoverableOpex)

	return rev, nil
}

// percentageRentMonth computes retail overage rent for one month.
// The breakpoint is either fixed in the lease or "natural": the sales
// level at which percentage rent would equal the current base rent.
// Overage applies independently of base-rent escalation.
func percentageRentMonth(lease *domain.LeaseTerm, currentMonthlyRent float64, elapsedYears int) (float64, error) {
	pr := lease.Percentage
	if pr.Rate <= 0 {
		return 0, &ConfigurationError{
			Subject: fmt.Sprintf("lease %s/%s percentage rent", lease.UnitID, lease.Tenant),
			Err:     fmt.Errorf("rate must be positive, got %.4f", pr.Rate),
		}
	}

	annualBreakpoint := pr.Breakpoint
	if pr.NaturalBreakpoint {
		annualBreakpoint = currentMonthlyRent * 12.0 / pr.Rate
	}

	annualSales := pr.AnnualSales * math.Pow(1.0+pr.SalesGrowth, float64(elapsedYears))
	monthlySales := annualSales / 12.0
	monthlyBreakpoint := annualBreakpoint / 12.0

	return math.Max(0, monthlySales-monthlyBreakpoint) * pr.Rate, nil
}
