// internal/planner/advice/customizer.go
package advice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	apperrors "fitcoach-backend/internal/common/errors"
	"fitcoach-backend/internal/models"
)

// PlanCustomizer tailors a finished plan to a special request embedded in
// the user's query, such as "tailor it for a swimmer". Advisors that cannot
// customize simply do not implement it.
type PlanCustomizer interface {
	// ExtractCustomization pulls the customization request out of the query.
	// An empty string means the query carries no special request.
	ExtractCustomization(ctx context.Context, query string) (string, error)
	// CustomizePlan produces modifications for the plan given the request.
	CustomizePlan(ctx context.Context, plan *models.WorkoutPlan, request string) (*models.PlanCustomization, error)
}

const (
	extractionSystemPrompt    = "You are a fitness expert assistant that helps analyze workout requests."
	customizationSystemPrompt = "You are an expert fitness coach specialized in tailoring workout plans to specific needs."
)

// ExtractCustomization asks the model to isolate any special modification
// instructions in the query.
func (a *MistralAdvisor) ExtractCustomization(ctx context.Context, query string) (string, error) {
	prompt := fmt.Sprintf(
		"Extract any special customization instructions or specific workout modifications "+
			"from this user query. Return ONLY the customization part, or \"None\" if the query "+
			"has no special instructions.\n\nQuery: %s",
		query,
	)

	text, err := a.completeAs(ctx, extractionSystemPrompt, prompt)
	if err != nil {
		return "", err
	}

	text = strings.Trim(strings.TrimSpace(text), `"'`)
	if strings.EqualFold(text, "none") {
		return "", nil
	}
	return text, nil
}

// simplifiedPlan is the compact plan view sent to the model, enough context
// to reason about modifications without the full exercise records.
type simplifiedPlan struct {
	Level        string          `json:"level"`
	DaysPerWeek  int             `json:"days_per_week"`
	PlanOverview string          `json:"plan_overview"`
	Days         []simplifiedDay `json:"days"`
}

type simplifiedDay struct {
	DayNumber int      `json:"day_number"`
	Overview  string   `json:"overview"`
	Exercises []string `json:"exercises"`
}

// looseStrings accepts a JSON array of strings or a bare string, models are
// not consistent about which shape they return.
type looseStrings []string

func (l *looseStrings) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*l = list
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	if single != "" {
		*l = []string{single}
	}
	return nil
}

// CustomizePlan asks the model how to adapt the plan to the request.
func (a *MistralAdvisor) CustomizePlan(ctx context.Context, plan *models.WorkoutPlan, request string) (*models.PlanCustomization, error) {
	compact := simplifiedPlan{
		Level:        plan.Level,
		DaysPerWeek:  plan.DaysPerWeek,
		PlanOverview: plan.PlanOverview,
	}
	for _, day := range plan.WorkoutDays {
		titles := make([]string, 0, len(day.Exercises))
		for _, ex := range day.Exercises {
			titles = append(titles, ex.Title)
		}
		compact.Days = append(compact.Days, simplifiedDay{
			DayNumber: day.DayNumber,
			Overview:  day.Overview,
			Exercises: titles,
		})
	}

	planJSON, err := json.Marshal(compact)
	if err != nil {
		return nil, apperrors.NewAdviceGenerationFailedError(err)
	}

	prompt := fmt.Sprintf(
		"Adapt this workout plan to the following request: %q\n\nPlan: %s\n\n"+
			"Return ONLY a JSON object with these fields: "+
			"{\"exercise_modifications\": [...], \"structure_changes\": [...], \"special_considerations\": [...]}",
		request, planJSON,
	)

	text, err := a.completeAs(ctx, customizationSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		ExerciseModifications looseStrings `json:"exercise_modifications"`
		StructureChanges      looseStrings `json:"structure_changes"`
		SpecialConsiderations looseStrings `json:"special_considerations"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &parsed); err != nil {
		return nil, apperrors.NewAdviceGenerationFailedError(fmt.Errorf("customization decode error: %v", err))
	}
	if len(parsed.ExerciseModifications) == 0 && len(parsed.StructureChanges) == 0 && len(parsed.SpecialConsiderations) == 0 {
		return nil, apperrors.NewAdviceGenerationFailedError(errors.New("empty customization"))
	}

	return &models.PlanCustomization{
		Request:               request,
		ExerciseModifications: parsed.ExerciseModifications,
		StructureChanges:      parsed.StructureChanges,
		SpecialConsiderations: parsed.SpecialConsiderations,
	}, nil
}

// stripCodeFence unwraps completions that come back inside a markdown fence.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
