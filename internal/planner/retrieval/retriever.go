// internal/planner/retrieval/retriever.go

// Package retrieval fetches candidate exercises for an intent. A ladder of
// progressively looser queries keeps the candidate pool big enough even for
// very restrictive requests; search failures degrade to an empty pool
// instead of erroring.
package retrieval

import (
	"context"

	"fitcoach-backend/internal/common/logger"
	"fitcoach-backend/internal/common/metrics"
	"fitcoach-backend/internal/models"
	"fitcoach-backend/internal/planner/retrieval/queries"
	"fitcoach-backend/internal/planner/vocabulary"
)

// Relaxation stage names, used in logs and metrics.
const (
	StagePrimary       = "primary"
	StageEquipmentOnly = "equipment_only"
	StageMovementNames = "movement_names"
)

type Config struct {
	PrimarySize int
	// FallbackSize bounds the relaxed queries, which match far more records
	// than the primary one.
	FallbackSize int
	// RelaxationMultiplier sets the pool floor: days_per_week times this
	// value. Below the floor the next relaxation stage runs.
	RelaxationMultiplier int
}

func LoadConfig() *Config {
	return &Config{
		PrimarySize:          500,
		FallbackSize:         200,
		RelaxationMultiplier: 2,
	}
}

// CompatibilityFilter reports whether a record would survive downstream
// filtering for an intent. The pool floor counts only records that pass,
// so an exclusive request with many raw hits but few usable ones still
// relaxes instead of starving the assembler.
type CompatibilityFilter interface {
	Compatible(ex models.Exercise, it models.Intent) bool
}

type Retriever struct {
	config *Config
	client SearchClient
	filter CompatibilityFilter
	logger logger.Logger
}

// NewRetriever builds a retriever. filter may be nil, in which case every
// hit counts towards the floor.
func NewRetriever(config *Config, client SearchClient, filter CompatibilityFilter, log logger.Logger) *Retriever {
	return &Retriever{
		config: config,
		client: client,
		filter: filter,
		logger: log.WithFields(map[string]interface{}{"component": "retriever"}),
	}
}

// Retrieve runs the relaxation ladder for an intent. The result may be
// empty; the caller decides what an empty pool means.
func (r *Retriever) Retrieve(ctx context.Context, it models.Intent) []models.Exercise {
	floor := it.DaysPerWeek * r.config.RelaxationMultiplier

	pool := r.search(ctx, StagePrimary, queries.BuildPrimary(it), r.config.PrimarySize)

	if r.usable(pool, it) < floor {
		metrics.RetrievalFallbacks.WithLabelValues(StageEquipmentOnly).Inc()
		r.logger.Warn("candidate pool below floor, relaxing to equipment only", map[string]interface{}{
			"poolSize": len(pool),
			"usable":   r.usable(pool, it),
			"floor":    floor,
		})
		more := r.search(ctx, StageEquipmentOnly, queries.BuildEquipmentOnly(it), r.config.FallbackSize)
		pool = mergeByTitle(pool, more)
	}

	if r.usable(pool, it) < floor {
		metrics.RetrievalFallbacks.WithLabelValues(StageMovementNames).Inc()
		r.logger.Warn("candidate pool still below floor, searching basic movements", map[string]interface{}{
			"poolSize": len(pool),
			"usable":   r.usable(pool, it),
			"floor":    floor,
		})
		more := r.search(ctx, StageMovementNames, queries.BuildMovementNames(vocabulary.BasicBodyweightMovements), r.config.FallbackSize)
		pool = mergeByTitle(pool, more)
	}

	return pool
}

// usable counts records that pass the compatibility gate. Raw hit counts
// overstate the pool for exclusive-equipment intents.
func (r *Retriever) usable(pool []models.Exercise, it models.Intent) int {
	if r.filter == nil {
		return len(pool)
	}
	n := 0
	for _, ex := range pool {
		if r.filter.Compatible(ex, it) {
			n++
		}
	}
	return n
}

func (r *Retriever) search(ctx context.Context, stage string, body map[string]interface{}, size int) []models.Exercise {
	results, err := r.client.Search(ctx, body, size)
	if err != nil {
		r.logger.WithError(err).Error("search stage failed", map[string]interface{}{
			"stage": stage,
		})
		return nil
	}

	r.logger.Debug("search stage completed", map[string]interface{}{
		"stage": stage,
		"hits":  len(results),
	})
	return results
}

// mergeByTitle appends additions that are not already in the pool. Title is
// the identity of an exercise record.
func mergeByTitle(pool, additions []models.Exercise) []models.Exercise {
	seen := make(map[string]bool, len(pool))
	for _, ex := range pool {
		seen[ex.Title] = true
	}
	for _, ex := range additions {
		if ex.Title == "" || seen[ex.Title] {
			continue
		}
		seen[ex.Title] = true
		pool = append(pool, ex)
	}
	return pool
}
