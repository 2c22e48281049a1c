// internal/planner/assembly/fallback.go
package assembly

import (
	"fitcoach-backend/internal/models"
	"fitcoach-backend/internal/planner/vocabulary"
)

// FallbackPlan is the canned single-day bodyweight plan returned when
// retrieval produced nothing usable. It requires no equipment and carries
// its own tips, so it works without any collaborator.
func FallbackPlan(it models.Intent) *models.WorkoutPlan {
	level := it.Level
	if level == "" {
		level = models.LevelBeginner
	}

	exercises := []models.Exercise{
		{
			Title:             "Push-ups",
			Description:       "Start in a high plank, lower your chest to the floor and press back up.",
			Type:              "Strength",
			Equipment:         vocabulary.EquipBodyOnly,
			BodyPart:          "Chest",
			Level:             models.LevelBeginner,
			AIRecommendations: "Keep your body in a straight line from head to heels. Drop to your knees if full reps break down.",
		},
		{
			Title:             "Bodyweight Squats",
			Description:       "Stand with feet shoulder-width apart, sit back and down, then drive back up.",
			Type:              "Strength",
			Equipment:         vocabulary.EquipBodyOnly,
			BodyPart:          "Quadriceps",
			Level:             models.LevelBeginner,
			AIRecommendations: "Keep your heels down and chest up. Go only as deep as you can with a neutral spine.",
		},
		{
			Title:             "Plank",
			Description:       "Hold a straight line on your forearms and toes, bracing your core.",
			Type:              "Strength",
			Equipment:         vocabulary.EquipBodyOnly,
			BodyPart:          "Core",
			Level:             models.LevelBeginner,
			AIRecommendations: "Squeeze your glutes and avoid letting your hips sag. Stop the set when your form breaks.",
		},
	}

	return &models.WorkoutPlan{
		Level:             level,
		DaysPerWeek:       1,
		MinutesPerSession: it.MinutesPerSession,
		PlanOverview:      "A basic full-body session to get you started while we could not match your exact request.",
		TrainingTips: []string{
			"Warm up for 5-10 minutes before every session.",
			"Repeat this session 2-3 times this week with a rest day in between.",
			"Try rephrasing your request to get a more specific plan.",
		},
		WorkoutDays: []models.WorkoutDay{
			{
				DayNumber: 1,
				Overview:  "Full-body basics using only your bodyweight.",
				Exercises: exercises,
			},
		},
	}
}
