// Package sensitivity quantifies how sensitive an investment's IRR is to
// each tracked underwriting assumption. It re-runs the cash-flow and
// metrics engines against perturbed clones of the baseline snapshot,
// aggregates IRR deltas, ranks criticality, and derives progressive-
// disclosure milestone recommendations.
package sensitivity

import (
	"context"
	"runtime"

	"github.com/aristath/proforma/internal/domain"
	"github.com/aristath/proforma/internal/modules/metrics"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Analyzer runs one full baseline-or-perturbed underwriting pass. The
// underwriting service implements it; tests substitute fakes.
type Analyzer interface {
	Analyze(a *domain.Assumptions) (*domain.Projection, *metrics.Result, error)
}

// Engine runs the perturbation matrix. The scenario runs are
// embarrassingly parallel: every run receives an independently cloned
// snapshot, so the fan-out needs no locks.
type Engine struct {
	analyzer Analyzer
	registry []Assumption
	workers  int
	log      zerolog.Logger
}

// NewEngine creates a sensitivity engine. workers bounds the fan-out
// pool; zero or negative means one worker per available core.
func NewEngine(analyzer Analyzer, workers int, log zerolog.Logger) *Engine {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Engine{
		analyzer: analyzer,
		registry: Registry(),
		workers:  workers,
		log:      log.With().Str("component", "sensitivity").Logger(),
	}
}

// Run executes the unperturbed baseline plus one scenario per assumption
// per delta. A failing scenario is recorded with an error marker and
// excluded from ranking; it never aborts the batch. Cancelling ctx stops
// scheduling new scenarios between runs: already-computed results remain
// valid and are returned with Cancelled set.
func (e *Engine) Run(ctx context.Context, baseline *domain.Assumptions) (*BatchResult, error) {
	_, baseMetrics, err := e.analyzer.Analyze(baseline.Clone())
	if err != nil {
		return nil, err
	}
	baselineIRR := baseMetrics.LeveredIRR

	type job struct {
		assumption Assumption
		deltaPct   float64
	}
	jobs := make([]job, 0, len(e.registry)*len(DeltaPcts))
	for _, assumption := range e.registry {
		for _, delta := range DeltaPcts {
			jobs = append(jobs, job{assumption: assumption, deltaPct: delta})
		}
	}

	results := make([]ScenarioResult, len(jobs))

	g, runCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, j := range jobs {
		i, j := i, j
		result := ScenarioResult{AssumptionID: j.assumption.ID, DeltaPct: j.deltaPct}

		// Cancellation is checked between scenario runs, never inside
		// one, so partial results stay consistent.
		if runCtx.Err() != nil {
			result.Failed = true
			result.Error = "cancelled"
			results[i] = result
			continue
		}

		g.Go(func() error {
			perturbed := baseline.Clone()
			j.assumption.Apply(perturbed, 1.0+j.deltaPct/100.0)

			_, m, err := e.analyzer.Analyze(perturbed)
			if err != nil {
				result.Failed = true
				result.Error = err.Error()
				e.log.Warn().
					Str("assumption", j.assumption.ID).
					Float64("delta_pct", j.deltaPct).
					Err(err).
					Msg("Scenario run failed")
			} else {
				result.PerturbedIRR = m.LeveredIRR
				result.IRRDeltaBps = (m.LeveredIRR - baselineIRR) * 10000.0
			}
			results[i] = result
			return nil
		})
	}
	_ = g.Wait()

	batch := &BatchResult{
		ID:          uuid.New(),
		BaselineIRR: baselineIRR,
		Scenarios:   results,
		Cancelled:   ctx.Err() != nil,
	}
	for _, r := range results {
		if r.Failed {
			batch.Failures++
		}
	}

	batch.Impacts = e.rank(results)
	batch.Milestones = milestones(batch.Impacts)

	e.log.Info().
		Str("batch_id", batch.ID.String()).
		Float64("baseline_irr", baselineIRR).
		Int("scenarios", len(results)).
		Int("failures", batch.Failures).
		Bool("cancelled", batch.Cancelled).
		Msg("Sensitivity batch complete")

	return batch, nil
}
