// internal/planner/advice/advisor_test.go
package advice

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "fitcoach-backend/internal/common/errors"
	"fitcoach-backend/internal/common/logger"
	"fitcoach-backend/internal/models"
	"fitcoach-backend/internal/planner/vocabulary"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestAdvisor(t *testing.T, baseURL string, maxRetries int) *MistralAdvisor {
	return NewMistralAdvisor(&Config{
		BaseURL:     baseURL,
		APIKey:      "test-key",
		Model:       "mistral-tiny",
		Temperature: 0.7,
		MaxTokens:   300,
		Timeout:     5 * time.Second,
		MaxRetries:  maxRetries,
	}, logger.NewTestLogger(t))
}

func chatCompletionResponse(content string) map[string]interface{} {
	return map[string]interface{}{
		"choices": []interface{}{
			map[string]interface{}{
				"message": map[string]interface{}{
					"role":    "assistant",
					"content": content,
				},
			},
		},
	}
}

func testExercise() models.Exercise {
	return models.Exercise{
		Title:     "Push Up",
		Equipment: vocabulary.EquipBodyOnly,
		BodyPart:  "Chest",
		Level:     models.LevelBeginner,
	}
}

// ==========================
// Mistral Advisor Tests
// ==========================

func TestMistralAdvisor_ExerciseTip(t *testing.T) {
	var gotAuth string
	var gotRequest chatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletionResponse("Keep your body in a straight line. Do not flare your elbows."))
	}))
	defer server.Close()

	advisor := createTestAdvisor(t, server.URL, 0)
	tip, err := advisor.ExerciseTip(context.Background(), testExercise(), models.LevelBeginner)

	require.NoError(t, err)
	assert.Equal(t, "Keep your body in a straight line. Do not flare your elbows.", tip)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "mistral-tiny", gotRequest.Model)
	assert.Equal(t, 0.7, gotRequest.Temperature)
	assert.Equal(t, 300, gotRequest.MaxTokens)
	require.Len(t, gotRequest.Messages, 2)
	assert.Contains(t, gotRequest.Messages[1].Content, "Push Up")
}

func TestMistralAdvisor_RetriesOnServerError(t *testing.T) {
	var calls int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletionResponse("Brace your core. Breathe out on the way up."))
	}))
	defer server.Close()

	advisor := createTestAdvisor(t, server.URL, 2)
	tip, err := advisor.ExerciseTip(context.Background(), testExercise(), models.LevelBeginner)

	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.NotEmpty(t, tip)
}

func TestMistralAdvisor_FailsAfterRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	advisor := createTestAdvisor(t, server.URL, 1)
	_, err := advisor.ExerciseTip(context.Background(), testExercise(), models.LevelBeginner)

	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeAdviceGenerationFailed))
}

func TestMistralAdvisor_PlanTips(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletionResponse("- Warm up first\n- Sleep 8 hours\n- Track your lifts"))
	}))
	defer server.Close()

	advisor := createTestAdvisor(t, server.URL, 0)
	plan := &models.WorkoutPlan{Level: models.LevelBeginner, DaysPerWeek: 3, MinutesPerSession: 30}
	tips, err := advisor.PlanTips(context.Background(), plan)

	require.NoError(t, err)
	assert.Equal(t, []string{"Warm up first", "Sleep 8 hours", "Track your lifts"}, tips)
}

// ==========================
// Truncation Tests
// ==========================

func TestTruncateAdvice(t *testing.T) {
	short := "Keep your core tight."
	assert.Equal(t, short, TruncateAdvice(short))

	long := strings.Repeat("word ", 30) + ". " + strings.Repeat("more ", 20) + ". Third sentence here."
	truncated := TruncateAdvice(long)
	assert.Less(t, len(truncated), len(long))
	assert.NotContains(t, truncated, "Third sentence")
}

// ==========================
// Rule-Based Advisor Tests
// ==========================

func TestRuleBasedAdvisor_Deterministic(t *testing.T) {
	advisor := NewRuleBasedAdvisor()
	ex := testExercise()

	first, err := advisor.ExerciseTip(context.Background(), ex, models.LevelBeginner)
	require.NoError(t, err)
	second, err := advisor.ExerciseTip(context.Background(), ex, models.LevelBeginner)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "shoulder blades")
}

func TestRuleBasedAdvisor_UnknownBodyPart(t *testing.T) {
	advisor := NewRuleBasedAdvisor()
	ex := models.Exercise{Title: "Mystery Move", Equipment: "Unknown Gear", BodyPart: "Neck"}

	tip, err := advisor.ExerciseTip(context.Background(), ex, "elite")
	require.NoError(t, err)
	assert.NotEmpty(t, tip)
}

func TestRuleBasedAdvisor_AmbiguousBodyPartIsStable(t *testing.T) {
	advisor := NewRuleBasedAdvisor()
	// Matches both "Abdominals" and "Core" on the loose pass. The first
	// table entry must win every time.
	ex := models.Exercise{Title: "Hollow Hold", Equipment: "Body Only", BodyPart: "Abdominals and Core"}

	for i := 0; i < 50; i++ {
		tip, err := advisor.ExerciseTip(context.Background(), ex, models.LevelBeginner)
		require.NoError(t, err)
		assert.Contains(t, tip, "Exhale as you contract")
	}
}

func TestRuleBasedAdvisor_PlanTips(t *testing.T) {
	advisor := NewRuleBasedAdvisor()

	tips, err := advisor.PlanTips(context.Background(), &models.WorkoutPlan{
		Level:       models.LevelBeginner,
		DaysPerWeek: 3,
	})
	require.NoError(t, err)
	assert.Len(t, tips, 3)

	highFrequency, err := advisor.PlanTips(context.Background(), &models.WorkoutPlan{
		Level:       models.LevelAdvanced,
		DaysPerWeek: 6,
	})
	require.NoError(t, err)
	assert.Contains(t, highFrequency[2], "rest day")
}

// ==========================
// Annotator Tests
// ==========================

type failingAdvisor struct{}

func (f *failingAdvisor) ExerciseTip(context.Context, models.Exercise, string) (string, error) {
	return "", apperrors.NewAdviceGenerationFailedError(errors.New("advisor down"))
}

func (f *failingAdvisor) PlanTips(context.Context, *models.WorkoutPlan) ([]string, error) {
	return nil, apperrors.NewAdviceGenerationFailedError(errors.New("advisor down"))
}

func testPlan() *models.WorkoutPlan {
	return &models.WorkoutPlan{
		Level:             models.LevelBeginner,
		DaysPerWeek:       1,
		MinutesPerSession: 30,
		WorkoutDays: []models.WorkoutDay{
			{
				DayNumber: 1,
				Exercises: []models.Exercise{testExercise()},
			},
		},
	}
}

func TestAnnotator_FallsBackOnAdvisorFailure(t *testing.T) {
	annotator := NewAnnotator(&failingAdvisor{}, logger.NewTestLogger(t))
	plan := testPlan()

	annotator.AnnotatePlan(context.Background(), plan)

	assert.NotEmpty(t, plan.WorkoutDays[0].Exercises[0].AIRecommendations)
	assert.NotEmpty(t, plan.TrainingTips)
}

func TestAnnotator_NilAdvisorUsesRules(t *testing.T) {
	annotator := NewAnnotator(nil, logger.NewTestLogger(t))
	plan := testPlan()

	annotator.AnnotatePlan(context.Background(), plan)

	assert.NotEmpty(t, plan.WorkoutDays[0].Exercises[0].AIRecommendations)
	assert.Len(t, plan.TrainingTips, 3)
}
