// internal/planner/assembly/assembler_test.go
package assembly

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitcoach-backend/internal/common/logger"
	"fitcoach-backend/internal/models"
	"fitcoach-backend/internal/planner/scoring"
	"fitcoach-backend/internal/planner/vocabulary"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestAssembler(t *testing.T) *Assembler {
	return NewAssembler(LoadConfig(), logger.NewTestLogger(t))
}

func candidate(title, bodyPart string, score int) scoring.Candidate {
	return scoring.Candidate{
		Exercise: models.Exercise{
			Title:     title,
			Equipment: vocabulary.EquipBodyOnly,
			BodyPart:  bodyPart,
			Level:     models.LevelBeginner,
		},
		Score: score,
	}
}

// broadPool covers every focus so any split can be filled.
func broadPool() []scoring.Candidate {
	return []scoring.Candidate{
		candidate("Push Up", "Chest", 10),
		candidate("Incline Push Up", "Chest", 9),
		candidate("Overhead Press", "Shoulders", 9),
		candidate("Lateral Raise", "Shoulders", 8),
		candidate("Tricep Dip", "Triceps", 8),
		candidate("Pull Up", "Back", 10),
		candidate("Inverted Row", "Back", 9),
		candidate("Bicep Curl", "Biceps", 8),
		candidate("Hammer Curl", "Biceps", 7),
		candidate("Squat", "Quadriceps", 10),
		candidate("Lunge", "Quadriceps", 9),
		candidate("Romanian Deadlift", "Hamstrings", 9),
		candidate("Glute Bridge", "Glutes", 8),
		candidate("Calf Raise", "Calves", 7),
		candidate("Plank", "Core", 8),
		candidate("Crunch", "Abdominals", 7),
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestAssembler_ThreeDaySplit(t *testing.T) {
	assembler := createTestAssembler(t)
	it := models.Intent{Level: models.LevelBeginner, DaysPerWeek: 3, MinutesPerSession: 30}

	plan := assembler.Assemble(it, broadPool())

	require.Len(t, plan.WorkoutDays, 3)
	assert.Equal(t, 3, plan.DaysPerWeek)
	assert.Contains(t, plan.WorkoutDays[0].Overview, "Push")
	assert.Contains(t, plan.WorkoutDays[1].Overview, "Pull")
	assert.Contains(t, plan.WorkoutDays[2].Overview, "Legs")

	// Push day holds only pushing body parts.
	for _, ex := range plan.WorkoutDays[0].Exercises {
		assert.Contains(t, []string{"Chest", "Shoulders", "Triceps"}, ex.BodyPart)
	}
}

func TestAssembler_FullBodyForLowFrequency(t *testing.T) {
	assembler := createTestAssembler(t)
	it := models.Intent{Level: models.LevelBeginner, DaysPerWeek: 2, MinutesPerSession: 30}

	plan := assembler.Assemble(it, broadPool())

	require.Len(t, plan.WorkoutDays, 2)
	for _, day := range plan.WorkoutDays {
		assert.Contains(t, day.Overview, "Full Body")
	}
}

func TestAssembler_UpperLowerForFourDays(t *testing.T) {
	assembler := createTestAssembler(t)
	it := models.Intent{Level: models.LevelIntermediate, DaysPerWeek: 4, MinutesPerSession: 45}

	plan := assembler.Assemble(it, broadPool())

	// The pool is too small to fill all four days without repeats; days
	// that cannot be filled are dropped.
	require.GreaterOrEqual(t, len(plan.WorkoutDays), 2)
	assert.Contains(t, plan.WorkoutDays[0].Overview, "Upper")
	assert.Contains(t, plan.WorkoutDays[1].Overview, "Lower")
	assert.Equal(t, len(plan.WorkoutDays), plan.DaysPerWeek)
}

func TestAssembler_SessionLengthCapsExercises(t *testing.T) {
	assembler := createTestAssembler(t)
	// 20 minutes at 5 minutes per exercise caps each day at 4.
	it := models.Intent{Level: models.LevelBeginner, DaysPerWeek: 1, MinutesPerSession: 20}

	plan := assembler.Assemble(it, broadPool())

	require.Len(t, plan.WorkoutDays, 1)
	assert.LessOrEqual(t, len(plan.WorkoutDays[0].Exercises), 4)
	assert.GreaterOrEqual(t, len(plan.WorkoutDays[0].Exercises), 3)
}

func TestAssembler_NamedSplitOverridesFrequencySplit(t *testing.T) {
	assembler := createTestAssembler(t)
	it := models.Intent{
		Level:             models.LevelIntermediate,
		DaysPerWeek:       3,
		MinutesPerSession: 45,
		NamedSplit:        "bro split",
	}

	plan := assembler.Assemble(it, broadPool())

	require.Len(t, plan.WorkoutDays, 3)
	assert.Contains(t, plan.WorkoutDays[0].Overview, "Chest")
	assert.Contains(t, plan.WorkoutDays[1].Overview, "Back")
	assert.Contains(t, plan.WorkoutDays[2].Overview, "Shoulders")
}

func TestAssembler_NoExerciseRepeatsAcrossDays(t *testing.T) {
	assembler := createTestAssembler(t)
	it := models.Intent{Level: models.LevelBeginner, DaysPerWeek: 5, MinutesPerSession: 30}

	plan := assembler.Assemble(it, broadPool())

	seen := make(map[string]bool)
	for _, day := range plan.WorkoutDays {
		for _, ex := range day.Exercises {
			assert.False(t, seen[ex.Title], "exercise %q appears twice", ex.Title)
			seen[ex.Title] = true
		}
	}
}

// ==========================
// Edge Case Tests
// ==========================

func TestAssembler_EmptyPoolFallsBack(t *testing.T) {
	assembler := createTestAssembler(t)
	it := models.Intent{Level: models.LevelBeginner, DaysPerWeek: 3, MinutesPerSession: 30}

	plan := assembler.Assemble(it, nil)

	require.Len(t, plan.WorkoutDays, 1)
	assert.Equal(t, 1, plan.DaysPerWeek)
	require.Len(t, plan.WorkoutDays[0].Exercises, 3)
	for _, ex := range plan.WorkoutDays[0].Exercises {
		assert.Equal(t, vocabulary.EquipBodyOnly, ex.Equipment)
		assert.NotEmpty(t, ex.AIRecommendations)
	}
	assert.NotEmpty(t, plan.TrainingTips)
}

func TestAssembler_TinyPoolStillMinFills(t *testing.T) {
	assembler := createTestAssembler(t)
	it := models.Intent{Level: models.LevelBeginner, DaysPerWeek: 3, MinutesPerSession: 30}

	pool := []scoring.Candidate{
		candidate("Push Up", "Chest", 10),
		candidate("Squat", "Quadriceps", 9),
		candidate("Plank", "Core", 8),
	}

	plan := assembler.Assemble(it, pool)

	// Only one day can be filled; empty days are dropped and numbering stays
	// sequential.
	require.NotEmpty(t, plan.WorkoutDays)
	for i, day := range plan.WorkoutDays {
		assert.Equal(t, i+1, day.DayNumber)
		assert.NotEmpty(t, day.Exercises)
	}
	assert.Equal(t, len(plan.WorkoutDays), plan.DaysPerWeek)
}

func TestFallbackPlan_DefaultsLevel(t *testing.T) {
	plan := FallbackPlan(models.Intent{MinutesPerSession: 30})
	assert.Equal(t, models.LevelBeginner, plan.Level)
	assert.Equal(t, 30, plan.MinutesPerSession)
}
