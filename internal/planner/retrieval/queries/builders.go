// Package queries builds the Elasticsearch request bodies used by exercise
// retrieval. Each builder returns a plain map so callers can inspect or
// extend the body before serialization.
package queries

import (
	"strings"

	"fitcoach-backend/internal/models"
	"fitcoach-backend/internal/planner/vocabulary"
)

// BuildPrimary builds the boosted intent query. Equipment matches weigh the
// most, then body parts, then free-text relevance on title and description.
// minimum_should_match keeps pure noise out while still letting any single
// signal qualify a record.
func BuildPrimary(it models.Intent) map[string]interface{} {
	shouldClauses := []interface{}{}

	for _, eq := range it.Equipment {
		shouldClauses = append(shouldClauses, map[string]interface{}{
			"term": map[string]interface{}{
				"Equipment.keyword": map[string]interface{}{
					"value": eq,
					"boost": 3.0,
				},
			},
		})
	}

	if it.NoEquipmentOnly || it.PrefersEquipment(vocabulary.EquipBodyOnly) {
		shouldClauses = append(shouldClauses, map[string]interface{}{
			"terms": map[string]interface{}{
				"Equipment.keyword": []string{vocabulary.EquipBodyOnly, vocabulary.EquipNone},
				"boost":             3.0,
			},
		})
	}

	for _, part := range it.BodyParts {
		shouldClauses = append(shouldClauses, map[string]interface{}{
			"match": map[string]interface{}{
				"BodyPart": map[string]interface{}{
					"query": part,
					"boost": 2.0,
				},
			},
		})
	}

	if terms := freeTextTerms(it); terms != "" {
		shouldClauses = append(shouldClauses, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  terms,
				"fields": []string{"Title^2", "Description", "Equipment^3"},
				"type":   "best_fields",
			},
		})
	}

	if len(shouldClauses) == 0 {
		shouldClauses = append(shouldClauses, map[string]interface{}{
			"match_all": map[string]interface{}{},
		})
	}

	boolQuery := map[string]interface{}{
		"should":               shouldClauses,
		"minimum_should_match": 1,
	}

	if it.Level != "" {
		// Match is analyzed, so index casing of level values does not matter.
		boolQuery["filter"] = []interface{}{
			map[string]interface{}{
				"match": map[string]interface{}{
					"Level": strings.Join(levelLadder(it.Level), " "),
				},
			},
		}
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": boolQuery,
		},
	}
}

// BuildEquipmentOnly builds the first relaxation: drop every constraint
// except equipment so the pool widens without handing the user gear they
// do not have.
func BuildEquipmentOnly(it models.Intent) map[string]interface{} {
	equipment := it.Equipment
	if it.NoEquipmentOnly || len(equipment) == 0 {
		equipment = []string{vocabulary.EquipBodyOnly, vocabulary.EquipNone}
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"terms": map[string]interface{}{
				"Equipment.keyword": equipment,
			},
		},
	}
}

// BuildMovementNames builds the last search-backed relaxation: literal
// matches on well-known movement titles.
func BuildMovementNames(names []string) map[string]interface{} {
	shouldClauses := make([]interface{}, 0, len(names))
	for _, name := range names {
		shouldClauses = append(shouldClauses, map[string]interface{}{
			"match_phrase": map[string]interface{}{
				"Title": name,
			},
		})
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"should":               shouldClauses,
				"minimum_should_match": 1,
			},
		},
	}
}

// freeTextTerms joins the intent signals into one relevance query string.
func freeTextTerms(it models.Intent) string {
	terms := make([]string, 0, len(it.BodyParts)+len(it.Equipment))
	terms = append(terms, it.BodyParts...)
	terms = append(terms, it.Equipment...)
	return strings.Join(terms, " ")
}

// levelLadder returns the levels acceptable for a requested level. A
// beginner never gets advanced movements, an advanced user can use anything.
func levelLadder(level string) []string {
	switch level {
	case models.LevelAdvanced:
		return []string{models.LevelBeginner, models.LevelIntermediate, models.LevelAdvanced}
	case models.LevelIntermediate:
		return []string{models.LevelBeginner, models.LevelIntermediate}
	default:
		return []string{models.LevelBeginner, models.LevelIntermediate}
	}
}
