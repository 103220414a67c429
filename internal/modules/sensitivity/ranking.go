package sensitivity

import (
	"sort"

	"github.com/aristath/proforma/pkg/formulas"
)

// rank aggregates scenario deltas per assumption, classifies criticality,
// and orders assumptions by descending impact with the cumulative share
// of total absolute impact each prefix explains. Failed scenarios are
// excluded from aggregation.
func (e *Engine) rank(results []ScenarioResult) []AssumptionImpact {
	byAssumption := make(map[string][]ScenarioResult, len(e.registry))
	for _, r := range results {
		byAssumption[r.AssumptionID] = append(byAssumption[r.AssumptionID], r)
	}

	impacts := make([]AssumptionImpact, 0, len(e.registry))
	for _, assumption := range e.registry {
		scenarios := byAssumption[assumption.ID]

		deltas := make([]float64, 0, len(scenarios))
		for _, s := range scenarios {
			if !s.Failed {
				deltas = append(deltas, s.IRRDeltaBps)
			}
		}

		impacts = append(impacts, AssumptionImpact{
			AssumptionID: assumption.ID,
			Label:        assumption.Label,
			Category:     assumption.Category,
			MeanAbsBps:   formulas.MeanAbs(deltas),
			Tier:         ClassifyTier(formulas.MeanAbs(deltas)),
			Scenarios:    scenarios,
		})
	}

	// Descending by impact; ties break on ID so the ranking is
	// deterministic.
	sort.SliceStable(impacts, func(i, j int) bool {
		if impacts[i].MeanAbsBps != impacts[j].MeanAbsBps {
			return impacts[i].MeanAbsBps > impacts[j].MeanAbsBps
		}
		return impacts[i].AssumptionID < impacts[j].AssumptionID
	})

	total := 0.0
	for _, imp := range impacts {
		total += imp.MeanAbsBps
	}
	cumulative := 0.0
	for i := range impacts {
		impacts[i].Rank = i + 1
		cumulative += impacts[i].MeanAbsBps
		if total > 0 {
			impacts[i].CumulativeShare = cumulative / total
		}
	}
	return impacts
}

// milestoneSpec maps a disclosure bundle to the tiers it includes and the
// IRR accuracy band refining those assumptions should buy.
var milestoneSpecs = []struct {
	name        string
	accuracyBps float64
	includes    map[Tier]bool
}{
	{"Napkin", 300, map[Tier]bool{TierCritical: true}},
	{"Envelope", 150, map[Tier]bool{TierCritical: true, TierHigh: true}},
	{"Memo", 50, map[Tier]bool{TierCritical: true, TierHigh: true, TierMedium: true}},
	{"Kitchen Sink", 10, map[Tier]bool{TierCritical: true, TierHigh: true, TierMedium: true, TierLow: true}},
}

// milestones derives the progressive-disclosure bundles from the ranked
// impacts. Included assumptions keep ranking order.
func milestones(impacts []AssumptionImpact) []Milestone {
	out := make([]Milestone, 0, len(milestoneSpecs))
	for _, spec := range milestoneSpecs {
		ids := make([]string, 0, len(impacts))
		for _, imp := range impacts {
			if spec.includes[imp.Tier] {
				ids = append(ids, imp.AssumptionID)
			}
		}
		out = append(out, Milestone{
			Name:          spec.name,
			AccuracyBps:   spec.accuracyBps,
			AssumptionIDs: ids,
		})
	}
	return out
}
