// internal/planner/scoring/scorer.go

// Package scoring assigns an inclusion score to candidate exercises and
// filters out candidates incompatible with an exclusive-equipment request.
package scoring

import (
	"sort"
	"strings"

	"fitcoach-backend/internal/models"
	"fitcoach-backend/internal/planner/vocabulary"
)

// Weights are the scoring heuristics. The values are carried over from the
// original tuning and intentionally configurable; nobody has documented a
// derivation for them.
type Weights struct {
	ExactEquipment        int // exact equipment match
	NoEquipmentBodyweight int // no-equipment intent meets a bodyweight record
	LooseBodyweight       int // bodyweight-preferred intent meets a loosely compatible record
	BodyPartMatch         int // any preferred body part matches the record
	MinInclusionScore     int // gate for exclusive intents
}

func DefaultWeights() Weights {
	return Weights{
		ExactEquipment:        10,
		NoEquipmentBodyweight: 15,
		LooseBodyweight:       8,
		BodyPartMatch:         5,
		MinInclusionScore:     5,
	}
}

// Candidate is an exercise with its inclusion score.
type Candidate struct {
	models.Exercise
	Score int
}

type Scorer struct {
	weights Weights
}

func NewScorer(weights Weights) *Scorer {
	return &Scorer{weights: weights}
}

// Score computes the additive inclusion score of a record for an intent.
// Higher means more relevant; ties are allowed.
func (s *Scorer) Score(ex models.Exercise, it models.Intent) int {
	score := 0

	if it.PrefersEquipment(ex.Equipment) {
		score += s.weights.ExactEquipment
	}

	if it.NoEquipmentOnly && vocabulary.IsBodyweight(ex.Equipment) {
		score += s.weights.NoEquipmentBodyweight
	}

	if it.PrefersEquipment(vocabulary.EquipBodyOnly) {
		for _, loose := range vocabulary.BodyweightCompatible {
			if ex.Equipment == loose {
				score += s.weights.LooseBodyweight
				break
			}
		}
	}

	if len(it.BodyParts) > 0 {
		recordPart := strings.ToLower(ex.BodyPart)
		for _, part := range it.BodyParts {
			if strings.Contains(recordPart, strings.ToLower(part)) {
				score += s.weights.BodyPartMatch
				break
			}
		}
	}

	return score
}

// Compatible reports whether a record may appear in the plan at all.
// Non-exclusive intents accept everything; the score then only orders
// candidates. Exclusive intents require either a direct/category equipment
// match or a score clearing the minimum threshold.
func (s *Scorer) Compatible(ex models.Exercise, it models.Intent) bool {
	if !it.EquipmentExclusive && !it.NoEquipmentOnly {
		return true
	}

	if it.NoEquipmentOnly {
		return vocabulary.IsBodyweight(ex.Equipment)
	}

	if s.equipmentMatches(ex.Equipment, it) {
		return true
	}

	return s.Score(ex, it) >= s.weights.MinInclusionScore
}

func (s *Scorer) equipmentMatches(equipment string, it models.Intent) bool {
	for _, preferred := range it.Equipment {
		if equipment == preferred {
			return true
		}
		// "None" and "Body Only" are interchangeable in the index.
		if vocabulary.IsBodyweight(equipment) && vocabulary.IsBodyweight(preferred) {
			return true
		}
		if vocabulary.SameCategory(equipment, preferred) {
			return true
		}
	}
	return false
}

// Rank filters incompatible records and returns the survivors ordered by
// descending score. The sort is stable, so equal scores keep retrieval
// order.
func (s *Scorer) Rank(records []models.Exercise, it models.Intent) []Candidate {
	candidates := make([]Candidate, 0, len(records))
	for _, ex := range records {
		if !s.Compatible(ex, it) {
			continue
		}
		candidates = append(candidates, Candidate{Exercise: ex, Score: s.Score(ex, it)})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	return candidates
}
