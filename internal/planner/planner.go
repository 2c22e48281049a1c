// internal/planner/planner.go

// Package planner orchestrates the full pipeline: parse the request into an
// intent, retrieve candidates, score and rank them, assemble the weekly
// plan and annotate it with advice. Generation never fails; every stage
// degrades to something usable.
package planner

import (
	"context"
	"time"

	"fitcoach-backend/internal/common/logger"
	"fitcoach-backend/internal/common/metrics"
	"fitcoach-backend/internal/common/observability"
	"fitcoach-backend/internal/models"
	"fitcoach-backend/internal/planner/advice"
	"fitcoach-backend/internal/planner/assembly"
	"fitcoach-backend/internal/planner/intent"
	"fitcoach-backend/internal/planner/retrieval"
	"fitcoach-backend/internal/planner/scoring"
)

type Planner struct {
	extractor *intent.Extractor
	retriever *retrieval.Retriever
	scorer    *scoring.Scorer
	assembler *assembly.Assembler
	annotator *advice.Annotator
	obs       *observability.Observability
	logger    logger.Logger
}

// New wires the pipeline stages together. obs may be nil.
func New(
	extractor *intent.Extractor,
	retriever *retrieval.Retriever,
	scorer *scoring.Scorer,
	assembler *assembly.Assembler,
	annotator *advice.Annotator,
	obs *observability.Observability,
	log logger.Logger,
) *Planner {
	return &Planner{
		extractor: extractor,
		retriever: retriever,
		scorer:    scorer,
		assembler: assembler,
		annotator: annotator,
		obs:       obs,
		logger:    log.WithFields(map[string]interface{}{"component": "planner"}),
	}
}

// Generate builds an annotated workout plan for a free-text request.
func (p *Planner) Generate(ctx context.Context, query string) *models.WorkoutPlan {
	start := time.Now()

	it := p.extractor.Extract(query)

	candidates := p.retriever.Retrieve(ctx, it)
	ranked := p.scorer.Rank(candidates, it)

	plan := p.assembler.Assemble(it, ranked)
	p.annotator.AnnotatePlan(ctx, plan)
	p.annotator.Customize(ctx, plan, query)

	elapsed := time.Since(start)
	outcome := "assembled"
	if len(ranked) == 0 {
		outcome = "fallback"
	}

	metrics.PlansGenerated.WithLabelValues(plan.Level).Inc()
	metrics.PlanGenerationDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
	if p.obs != nil {
		p.obs.RecordPlanGenerated(ctx, plan.Level)
		p.obs.RecordPlanDuration(ctx, elapsed, outcome)
	}

	p.logger.Info("plan generated", map[string]interface{}{
		"level":      plan.Level,
		"days":       plan.DaysPerWeek,
		"candidates": len(candidates),
		"ranked":     len(ranked),
		"outcome":    outcome,
		"durationMs": elapsed.Milliseconds(),
	})

	return plan
}
