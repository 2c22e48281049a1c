// internal/models/workout.go
package models

import "time"

// Exercise is a single exercise document as stored in the search index.
// Field names match the `_source` layout of the workouts index.
type Exercise struct {
	Title             string `json:"Title"`
	Description       string `json:"Description"`
	Type              string `json:"Type"`
	Equipment         string `json:"Equipment"`
	BodyPart          string `json:"BodyPart"`
	Level             string `json:"Level"`
	AIRecommendations string `json:"AI_Recommendations,omitempty"`
}

// WorkoutDay is one day of a weekly plan.
type WorkoutDay struct {
	DayNumber int        `json:"day_number"`
	Overview  string     `json:"overview"`
	Exercises []Exercise `json:"exercises"`
}

// PlanCustomization records how a finished plan was tailored to a special
// request found in the user's query.
type PlanCustomization struct {
	Request               string   `json:"request"`
	ExerciseModifications []string `json:"exercise_modifications,omitempty"`
	StructureChanges      []string `json:"structure_changes,omitempty"`
	SpecialConsiderations []string `json:"special_considerations,omitempty"`
}

// WorkoutPlan is the final response of the planning pipeline. Every day in a
// finished plan carries at least one exercise.
type WorkoutPlan struct {
	Level             string             `json:"level"`
	DaysPerWeek       int                `json:"days_per_week"`
	MinutesPerSession int                `json:"minutes_per_session"`
	PlanOverview      string             `json:"plan_overview"`
	TrainingTips      []string           `json:"training_tips,omitempty"`
	Customization     *PlanCustomization `json:"customization,omitempty"`
	WorkoutDays       []WorkoutDay       `json:"workout_days"`
}

// HistoryEntry is a persisted workout plan with its originating query.
type HistoryEntry struct {
	ID          string       `json:"id,omitempty"`
	UserID      string       `json:"user_id"`
	Query       string       `json:"query,omitempty"`
	WorkoutPlan *WorkoutPlan `json:"workout_plan"`
	Timestamp   time.Time    `json:"timestamp"`
}
