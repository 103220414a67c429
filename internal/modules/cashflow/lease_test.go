package cashflow

import (
	"testing"

	"github.com/aristath/proforma/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoveryByLeaseType(t *testing.T) {
	tests := []struct {
		name            string
		lease           domain.LeaseTerm
		recoverableOpex float64
		want            float64
	}{
		{
			name:            "nnn recovers full pro-rata share",
			lease:           domain.LeaseTerm{Type: domain.LeaseNNN, RecoveryShare: 0.40},
			recoverableOpex: 10000,
			want:            4000,
		},
		{
			name: "modified gross recovers above the stop",
			lease: domain.LeaseTerm{
				Type:          domain.LeaseModifiedGross,
				RecoveryShare: 1.0,
				ExpenseStop:   60000, // 5000/month
			},
			recoverableOpex: 8000,
			want:            3000,
		},
		{
			name: "modified gross below the stop recovers nothing",
			lease: domain.LeaseTerm{
				Type:          domain.LeaseModifiedGross,
				RecoveryShare: 1.0,
				ExpenseStop:   120000,
			},
			recoverableOpex: 8000,
			want:            0,
		},
		{
			name: "modified gross recovery cap binds",
			lease: domain.LeaseTerm{
				Type:          domain.LeaseModifiedGross,
				RecoveryShare: 1.0,
				ExpenseStop:   60000,
				RecoveryCap:   12000, // 1000/month
			},
			recoverableOpex: 8000,
			want:            1000,
		},
		{
			name:            "gross lease recovers nothing",
			lease:           domain.LeaseTerm{Type: domain.LeaseGross, RecoveryShare: 1.0},
			recoverableOpex: 10000,
			want:            0,
		},
		{
			name:            "ground lease recovers nothing",
			lease:           domain.LeaseTerm{Type: domain.LeaseGround, RecoveryShare: 1.0},
			recoverableOpex: 10000,
			want:            0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recover := recoveryByType[tt.lease.Type]
			require.NotNil(t, recover)
			assert.InDelta(t, tt.want, recover(&tt.lease, tt.recoverableOpex), 1e-9)
		})
	}
}

// If all leases in a period are NNN with recovery shares summing to 1.0,
// total recoveries must equal 100% of that period's recoverable opex.
func TestFullRecoveryInvariant(t *testing.T) {
	shares := []float64{0.25, 0.35, 0.40}
	recoverableOpex := 12345.67

	total := 0.0
	for _, share := range shares {
		lease := domain.LeaseTerm{Type: domain.LeaseNNN, RecoveryShare: share}
		total += recoverNNN(&lease, recoverableOpex)
	}
	assert.InDelta(t, recoverableOpex, total, 1e-9)
}

func TestPercentageRent(t *testing.T) {
	month := domain.Period{Start: date(2030, 1, 1), End: date(2030, 2, 1), Type: domain.PeriodMonthly}

	tests := []struct {
		name  string
		lease domain.LeaseTerm
		want  float64
	}{
		{
			name: "fixed breakpoint overage",
			lease: domain.LeaseTerm{
				Type: domain.LeaseNNN, BaseRent: 10000,
				TermStart: date(2030, 1, 1), TermEnd: date(2040, 1, 1),
				Percentage: &domain.PercentageRent{
					Rate:        0.06,
					Breakpoint:  1_800_000,
					AnnualSales: 2_400_000,
				},
			},
			// (2.4M - 1.8M)/12 * 6%
			want: 3000,
		},
		{
			name: "sales below breakpoint owe nothing",
			lease: domain.LeaseTerm{
				Type: domain.LeaseNNN, BaseRent: 10000,
				TermStart: date(2030, 1, 1), TermEnd: date(2040, 1, 1),
				Percentage: &domain.PercentageRent{
					Rate:        0.06,
					Breakpoint:  3_000_000,
					AnnualSales: 2_400_000,
				},
			},
			want: 0,
		},
		{
			name: "natural breakpoint derived from base rent",
			lease: domain.LeaseTerm{
				Type: domain.LeaseNNN, BaseRent: 10000,
				TermStart: date(2030, 1, 1), TermEnd: date(2040, 1, 1),
				Percentage: &domain.PercentageRent{
					Rate:              0.06,
					NaturalBreakpoint: true,
					AnnualSales:       2_400_000,
				},
			},
			// natural breakpoint = 120k/6% = 2M; (2.4M-2M)/12 * 6%
			want: 2000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rev, err := computeLeaseMonth(&tt.lease, month, 0)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, rev.PercentageRent, 1e-9)
		})
	}
}

func TestInactiveLeaseContributesZero(t *testing.T) {
	lease := domain.LeaseTerm{
		Type: domain.LeaseNNN, BaseRent: 10000, RecoveryShare: 1.0,
		TermStart: date(2031, 1, 1), TermEnd: date(2040, 1, 1),
	}
	month := domain.Period{Start: date(2030, 1, 1), End: date(2030, 2, 1), Type: domain.PeriodMonthly}

	rev, err := computeLeaseMonth(&lease, month, 5000)
	require.NoError(t, err)
	assert.Zero(t, rev.BaseRent)
	assert.Zero(t, rev.Recoveries)
	assert.Zero(t, rev.PercentageRent)
}
