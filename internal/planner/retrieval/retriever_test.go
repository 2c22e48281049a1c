// internal/planner/retrieval/retriever_test.go
package retrieval

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "fitcoach-backend/internal/common/errors"
	"fitcoach-backend/internal/common/logger"
	"fitcoach-backend/internal/models"
	"fitcoach-backend/internal/planner/scoring"
	"fitcoach-backend/internal/planner/vocabulary"
)

// ==========================
// Test Helper Functions
// ==========================

// fakeSearchClient returns canned results per call, in order.
type fakeSearchClient struct {
	results [][]models.Exercise
	errs    []error
	calls   int
	bodies  []map[string]interface{}
}

func (f *fakeSearchClient) Search(_ context.Context, body map[string]interface{}, _ int) ([]models.Exercise, error) {
	idx := f.calls
	f.calls++
	f.bodies = append(f.bodies, body)

	if idx < len(f.errs) && f.errs[idx] != nil {
		return nil, f.errs[idx]
	}
	if idx < len(f.results) {
		return f.results[idx], nil
	}
	return nil, nil
}

func createTestRetriever(t *testing.T, client SearchClient) *Retriever {
	scorer := scoring.NewScorer(scoring.DefaultWeights())
	return NewRetriever(LoadConfig(), client, scorer, logger.NewTestLogger(t))
}

func namedExercises(titles ...string) []models.Exercise {
	out := make([]models.Exercise, 0, len(titles))
	for _, title := range titles {
		out = append(out, models.Exercise{
			Title:     title,
			Equipment: vocabulary.EquipBodyOnly,
			BodyPart:  "Chest",
			Level:     models.LevelBeginner,
		})
	}
	return out
}

// ==========================
// Core Functionality Tests
// ==========================

func TestRetriever_PrimaryQuerySufficient(t *testing.T) {
	client := &fakeSearchClient{
		results: [][]models.Exercise{
			namedExercises("A", "B", "C", "D", "E", "F"),
		},
	}
	retriever := createTestRetriever(t, client)

	it := models.Intent{DaysPerWeek: 3}
	pool := retriever.Retrieve(context.Background(), it)

	assert.Len(t, pool, 6)
	assert.Equal(t, 1, client.calls, "no relaxation stage should run")
}

func TestRetriever_RelaxesToEquipmentOnly(t *testing.T) {
	client := &fakeSearchClient{
		results: [][]models.Exercise{
			namedExercises("A"),
			namedExercises("A", "B", "C", "D", "E", "F"),
		},
	}
	retriever := createTestRetriever(t, client)

	it := models.Intent{DaysPerWeek: 3, Equipment: []string{vocabulary.EquipDumbbell}}
	pool := retriever.Retrieve(context.Background(), it)

	assert.Equal(t, 2, client.calls)
	// "A" from both stages is deduplicated.
	assert.Len(t, pool, 6)
}

func TestRetriever_RelaxesWhenExclusiveIntentEmptiesPool(t *testing.T) {
	machines := make([]models.Exercise, 0, 10)
	for _, title := range []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"} {
		machines = append(machines, models.Exercise{
			Title:     "Machine " + title,
			Equipment: vocabulary.EquipMachine,
			BodyPart:  "Legs",
		})
	}
	bands := make([]models.Exercise, 0, 6)
	for _, title := range []string{"Row", "Curl", "Press", "Pull Apart", "Squat", "Deadlift"} {
		bands = append(bands, models.Exercise{
			Title:     "Band " + title,
			Equipment: vocabulary.EquipBands,
			BodyPart:  "Full Body",
		})
	}

	// Plenty of raw hits, none of which survive the exclusivity gate.
	client := &fakeSearchClient{
		results: [][]models.Exercise{machines, bands},
	}
	retriever := createTestRetriever(t, client)

	it := models.Intent{
		DaysPerWeek:        3,
		Equipment:          []string{vocabulary.EquipBands},
		EquipmentExclusive: true,
	}
	pool := retriever.Retrieve(context.Background(), it)

	assert.Equal(t, 2, client.calls, "a pool of unusable hits must still relax")
	for _, ex := range bands {
		assert.Contains(t, pool, ex)
	}
}

func TestRetriever_RelaxesToMovementNames(t *testing.T) {
	client := &fakeSearchClient{
		results: [][]models.Exercise{
			nil,
			namedExercises("A"),
			namedExercises("Push Up", "Squat", "Plank", "Lunge", "Burpee"),
		},
	}
	retriever := createTestRetriever(t, client)

	it := models.Intent{DaysPerWeek: 3}
	pool := retriever.Retrieve(context.Background(), it)

	assert.Equal(t, 3, client.calls)
	assert.Len(t, pool, 6)
}

func TestRetriever_SearchFailureDegradesToEmpty(t *testing.T) {
	searchErr := apperrors.NewSearchQueryFailedError("fitness_exercises", errors.New("cluster down"))
	client := &fakeSearchClient{
		errs: []error{searchErr, searchErr, apperrors.NewSearchTimeoutError("fitness_exercises")},
	}
	retriever := createTestRetriever(t, client)

	it := models.Intent{DaysPerWeek: 2}
	pool := retriever.Retrieve(context.Background(), it)

	assert.Empty(t, pool)
	assert.Equal(t, 3, client.calls, "every stage is still attempted")
}

// ==========================
// Edge Case Tests
// ==========================

func TestMergeByTitle(t *testing.T) {
	pool := namedExercises("A", "B")
	additions := namedExercises("B", "C", "")

	merged := mergeByTitle(pool, additions)

	require.Len(t, merged, 3)
	assert.Equal(t, "A", merged[0].Title)
	assert.Equal(t, "B", merged[1].Title)
	assert.Equal(t, "C", merged[2].Title)
}

// ==========================
// Elasticsearch Client Tests
// ==========================

func createStubElasticsearch(t *testing.T, handler http.HandlerFunc) *elasticsearch.Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{server.URL},
	})
	require.NoError(t, err)
	return client
}

func TestESClient_Search(t *testing.T) {
	esClient := createStubElasticsearch(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "fitness_exercises")

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"hits": map[string]interface{}{
				"total": map[string]interface{}{"value": 2},
				"hits": []interface{}{
					map[string]interface{}{"_source": map[string]interface{}{
						"Title":     "Push Up",
						"Equipment": "Body Only",
						"BodyPart":  "Chest",
						"Level":     "beginner",
					}},
					map[string]interface{}{"_source": map[string]interface{}{
						"Title":     "Bench Press",
						"Equipment": "Barbell",
						"BodyPart":  "Chest",
						"Level":     "intermediate",
					}},
				},
			},
		})
	})

	client := NewESClient(esClient, "fitness_exercises")
	results, err := client.Search(context.Background(), map[string]interface{}{
		"query": map[string]interface{}{"match_all": map[string]interface{}{}},
	}, 10)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Push Up", results[0].Title)
	assert.Equal(t, "Barbell", results[1].Equipment)
}

func TestESClient_Search_IndexNotFound(t *testing.T) {
	esClient := createStubElasticsearch(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{"type": "index_not_found_exception"},
		})
	})

	client := NewESClient(esClient, "missing_index")
	_, err := client.Search(context.Background(), map[string]interface{}{
		"query": map[string]interface{}{"match_all": map[string]interface{}{}},
	}, 10)

	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeIndexNotFound))
}
