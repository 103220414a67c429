package sensitivity

import (
	"github.com/aristath/proforma/internal/domain"
	"github.com/google/uuid"
)

// Category groups assumptions for display.
type Category string

const (
	CategoryRevenue   Category = "revenue"
	CategoryExpenses  Category = "expenses"
	CategoryCapital   Category = "capital"
	CategoryFinancing Category = "financing"
	CategoryExit      Category = "exit"
)

// Assumption is one tracked underwriting driver: an identifier plus the
// mapping onto the concrete parameter it perturbs. Apply scales the
// parameter by factor on a cloned snapshot; it must never touch shared
// state.
type Assumption struct {
	ID       string
	Label    string
	Category Category
	Apply    func(a *domain.Assumptions, factor float64)
}

// Tier is the criticality classification of one assumption.
type Tier string

const (
	TierCritical Tier = "CRITICAL"
	TierHigh     Tier = "HIGH"
	TierMedium   Tier = "MEDIUM"
	TierLow      Tier = "LOW"
)

// ClassifyTier maps an aggregate absolute IRR impact in basis points to
// its criticality tier.
func ClassifyTier(meanAbsBps float64) Tier {
	switch {
	case meanAbsBps > 500:
		return TierCritical
	case meanAbsBps >= 200:
		return TierHigh
	case meanAbsBps >= 50:
		return TierMedium
	default:
		return TierLow
	}
}

// ScenarioResult is one assumption × one perturbation scenario. A failed
// scenario carries its error marker and is excluded from aggregation.
type ScenarioResult struct {
	AssumptionID string  `json:"assumption_id"`
	DeltaPct     float64 `json:"delta_pct"`
	PerturbedIRR float64 `json:"perturbed_irr,omitempty"`
	IRRDeltaBps  float64 `json:"irr_delta_bps"`
	Failed       bool    `json:"failed,omitempty"`
	Error        string  `json:"error,omitempty"`
}

// AssumptionImpact is the ranked aggregate for one assumption.
type AssumptionImpact struct {
	AssumptionID    string           `json:"assumption_id"`
	Label           string           `json:"label"`
	Category        Category         `json:"category"`
	Rank            int              `json:"rank"`
	MeanAbsBps      float64          `json:"mean_abs_bps"`
	Tier            Tier             `json:"tier"`
	CumulativeShare float64          `json:"cumulative_share"`
	Scenarios       []ScenarioResult `json:"scenarios"`
}

// Milestone is one progressive-disclosure bundle: refine the named
// assumptions and the IRR estimate should land within the accuracy band.
type Milestone struct {
	Name          string   `json:"name"`
	AccuracyBps   float64  `json:"accuracy_bps"`
	AssumptionIDs []string `json:"assumption_ids"`
}

// BatchResult is the outcome of one sensitivity analysis: the baseline
// anchor IRR, all scenario results (valid and failed), the criticality
// ranking, and milestone recommendations. Cancelled marks a batch the
// caller aborted; partial results already computed remain valid.
type BatchResult struct {
	ID          uuid.UUID          `json:"id"`
	BaselineIRR float64            `json:"baseline_irr"`
	Scenarios   []ScenarioResult   `json:"scenarios"`
	Impacts     []AssumptionImpact `json:"impacts"`
	Milestones  []Milestone        `json:"milestones"`
	Failures    int                `json:"failures"`
	Cancelled   bool               `json:"cancelled,omitempty"`
}
