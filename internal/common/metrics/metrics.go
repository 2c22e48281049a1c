// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PlansGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plans_generated_total",
			Help: "Total number of workout plans generated",
		},
		[]string{"level"},
	)

	RetrievalFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "retrieval_fallback_total",
			Help: "Total number of retrieval fallback activations by stage",
		},
		[]string{"stage"},
	)

	AdvisorFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "advisor_fallback_total",
			Help: "Total number of rule-based advice fallbacks",
		},
	)

	PlanGenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "plan_generation_duration_seconds",
			Help: "Duration of plan generation in seconds",
		},
		[]string{"outcome"},
	)

	HistoryOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "history_operations_total",
			Help: "Total number of workout history operations",
		},
		[]string{"operation", "status"},
	)
)
