// internal/planner/advice/annotator.go
package advice

import (
	"context"

	"fitcoach-backend/internal/common/logger"
	"fitcoach-backend/internal/common/metrics"
	"fitcoach-backend/internal/models"
)

// Annotator fills in AI recommendations and plan-level training tips.
// Annotation is best effort: any advisor failure falls back to rule-based
// text, so an annotated plan always comes back.
type Annotator struct {
	advisor  Advisor
	fallback *RuleBasedAdvisor
	logger   logger.Logger
}

// NewAnnotator builds an annotator. advisor may be nil, in which case all
// advice is rule-based.
func NewAnnotator(advisor Advisor, log logger.Logger) *Annotator {
	return &Annotator{
		advisor:  advisor,
		fallback: NewRuleBasedAdvisor(),
		logger:   log.WithFields(map[string]interface{}{"component": "annotator"}),
	}
}

// AnnotatePlan mutates plan in place, attaching a tip to every exercise and
// training tips to the plan.
func (a *Annotator) AnnotatePlan(ctx context.Context, plan *models.WorkoutPlan) {
	for di := range plan.WorkoutDays {
		day := &plan.WorkoutDays[di]
		for ei := range day.Exercises {
			day.Exercises[ei].AIRecommendations = a.exerciseTip(ctx, day.Exercises[ei], plan.Level)
		}
	}

	plan.TrainingTips = a.planTips(ctx, plan)
}

// Customize tailors the plan to any special request found in the query.
// It is best effort like the rest of annotation: advisors that cannot
// customize are skipped, and any failure leaves the plan unchanged.
func (a *Annotator) Customize(ctx context.Context, plan *models.WorkoutPlan, query string) {
	customizer, ok := a.advisor.(PlanCustomizer)
	if !ok {
		return
	}

	request, err := customizer.ExtractCustomization(ctx, query)
	if err != nil {
		a.logger.WithError(err).Warn("customization extraction failed, keeping base plan", nil)
		return
	}
	if request == "" {
		return
	}

	custom, err := customizer.CustomizePlan(ctx, plan, request)
	if err != nil {
		a.logger.WithError(err).Warn("plan customization failed, keeping base plan", map[string]interface{}{
			"request": request,
		})
		return
	}

	plan.Customization = custom
	plan.TrainingTips = append(plan.TrainingTips, custom.SpecialConsiderations...)
	plan.PlanOverview += " This plan has been customized: " + request

	a.logger.Info("plan customized", map[string]interface{}{
		"request": request,
	})
}

func (a *Annotator) exerciseTip(ctx context.Context, ex models.Exercise, level string) string {
	if a.advisor != nil {
		tip, err := a.advisor.ExerciseTip(ctx, ex, level)
		if err == nil {
			return tip
		}
		metrics.AdvisorFallbacks.Inc()
		a.logger.WithError(err).Warn("advisor failed, using rule-based tip", map[string]interface{}{
			"exercise": ex.Title,
		})
	}

	tip, _ := a.fallback.ExerciseTip(ctx, ex, level)
	return tip
}

func (a *Annotator) planTips(ctx context.Context, plan *models.WorkoutPlan) []string {
	if a.advisor != nil {
		tips, err := a.advisor.PlanTips(ctx, plan)
		if err == nil {
			return tips
		}
		metrics.AdvisorFallbacks.Inc()
		a.logger.WithError(err).Warn("advisor failed, using rule-based training tips", nil)
	}

	tips, _ := a.fallback.PlanTips(ctx, plan)
	return tips
}
