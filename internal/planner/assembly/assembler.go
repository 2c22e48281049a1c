// internal/planner/assembly/assembler.go

// Package assembly turns a ranked candidate pool into a multi-day workout
// plan. The weekly split depends on training frequency unless the request
// named a specific split.
package assembly

import (
	"fmt"
	"strings"

	"fitcoach-backend/internal/common/logger"
	"fitcoach-backend/internal/models"
	"fitcoach-backend/internal/planner/scoring"
	"fitcoach-backend/internal/planner/vocabulary"
)

type Config struct {
	// MinutesPerExercise converts session length into a per-day exercise cap.
	MinutesPerExercise int
	// MinExercisesPerDay is the fill floor: days below it borrow from the
	// general pool regardless of focus.
	MinExercisesPerDay int
}

func LoadConfig() *Config {
	return &Config{
		MinutesPerExercise: 5,
		MinExercisesPerDay: 3,
	}
}

type Assembler struct {
	config *Config
	logger logger.Logger
}

func NewAssembler(config *Config, log logger.Logger) *Assembler {
	return &Assembler{
		config: config,
		logger: log.WithFields(map[string]interface{}{"component": "assembler"}),
	}
}

// dayTemplate is one planned training day before exercises are attached.
type dayTemplate struct {
	Focus  string
	Groups []string
}

// Assemble builds the plan. An unusable candidate pool yields the canned
// single-day bodyweight plan, so there is always something to return.
func (a *Assembler) Assemble(it models.Intent, candidates []scoring.Candidate) *models.WorkoutPlan {
	if len(candidates) == 0 {
		a.logger.Warn("empty candidate pool, using canned fallback plan", nil)
		return FallbackPlan(it)
	}

	templates := a.dayTemplates(it)
	perDayCap := it.MinutesPerSession / a.config.MinutesPerExercise
	if perDayCap < 1 {
		perDayCap = 1
	}
	fillFloor := a.config.MinExercisesPerDay
	if fillFloor > perDayCap {
		fillFloor = perDayCap
	}

	used := make(map[string]bool)
	days := make([]models.WorkoutDay, 0, len(templates))

	for _, tmpl := range templates {
		exercises := pickByFocus(candidates, tmpl.Groups, used, perDayCap)

		// Borrow from the general pool when the focus pool runs dry.
		for _, c := range candidates {
			if len(exercises) >= fillFloor {
				break
			}
			if used[c.Title] {
				continue
			}
			used[c.Title] = true
			exercises = append(exercises, c.Exercise)
		}

		if len(exercises) == 0 {
			continue
		}

		days = append(days, models.WorkoutDay{
			DayNumber: len(days) + 1,
			Overview:  fmt.Sprintf("Day %d targets %s with %d exercises.", len(days)+1, tmpl.Focus, len(exercises)),
			Exercises: exercises,
		})
	}

	if len(days) == 0 {
		a.logger.Warn("no day could be filled, using canned fallback plan", map[string]interface{}{
			"poolSize": len(candidates),
		})
		return FallbackPlan(it)
	}

	return &models.WorkoutPlan{
		Level:             it.Level,
		DaysPerWeek:       len(days),
		MinutesPerSession: it.MinutesPerSession,
		PlanOverview: fmt.Sprintf("%d-day %s plan, about %d minutes per session.",
			len(days), it.Level, it.MinutesPerSession),
		WorkoutDays: days,
	}
}

// dayTemplates picks the weekly split. A named split wins; otherwise the
// split follows training frequency.
func (a *Assembler) dayTemplates(it models.Intent) []dayTemplate {
	if it.NamedSplit != "" {
		if split := vocabulary.FindNamedSplit(it.NamedSplit); split != nil {
			return namedSplitTemplates(split, it.DaysPerWeek)
		}
	}

	switch {
	case it.DaysPerWeek <= 2:
		templates := make([]dayTemplate, it.DaysPerWeek)
		for i := range templates {
			templates[i] = dayTemplate{Focus: "Full Body", Groups: []string{"Full Body"}}
		}
		return templates
	case it.DaysPerWeek == 3:
		return []dayTemplate{
			{Focus: "Push", Groups: []string{"Push"}},
			{Focus: "Pull", Groups: []string{"Pull"}},
			{Focus: "Legs", Groups: []string{"Legs"}},
		}
	case it.DaysPerWeek == 4:
		return []dayTemplate{
			{Focus: "Upper", Groups: []string{"Upper"}},
			{Focus: "Lower", Groups: []string{"Lower"}},
			{Focus: "Upper", Groups: []string{"Upper"}},
			{Focus: "Lower", Groups: []string{"Lower"}},
		}
	default:
		templates := make([]dayTemplate, 0, it.DaysPerWeek)
		for i := 0; i < it.DaysPerWeek; i++ {
			focus := vocabulary.BodyPartFocusOrder[i%len(vocabulary.BodyPartFocusOrder)]
			templates = append(templates, dayTemplate{Focus: focus, Groups: []string{focus}})
		}
		return templates
	}
}

func namedSplitTemplates(split *vocabulary.NamedSplit, days int) []dayTemplate {
	templates := make([]dayTemplate, 0, days)
	for i := 0; i < days; i++ {
		groups := split.Days[i%len(split.Days)]
		templates = append(templates, dayTemplate{
			Focus:  strings.Join(groups, ", "),
			Groups: groups,
		})
	}
	return templates
}

// groupKeywords expands a focus group into the lowercase terms matched
// against the BodyPart field of candidate records.
var groupKeywords = map[string][]string{
	"push":      vocabulary.FocusKeywords["Push"],
	"pull":      vocabulary.FocusKeywords["Pull"],
	"legs":      vocabulary.FocusKeywords["Legs"],
	"upper":     vocabulary.FocusKeywords["Upper"],
	"lower":     vocabulary.FocusKeywords["Lower"],
	"full body": vocabulary.FocusKeywords["Full Body"],
	"chest":     {"chest", "pec"},
	"back":      {"back", "lat"},
	"shoulders": {"shoulder", "delt"},
	"arms":      {"arm", "bicep", "tricep", "forearm"},
	"biceps":    {"bicep"},
	"triceps":   {"tricep"},
	"glutes":    {"glute"},
	"core":      {"core", "ab", "oblique"},
}

func keywordsForGroups(groups []string) []string {
	var keywords []string
	for _, group := range groups {
		key := strings.ToLower(group)
		if expanded, ok := groupKeywords[key]; ok {
			keywords = append(keywords, expanded...)
			continue
		}
		keywords = append(keywords, key)
	}
	return keywords
}

// pickByFocus takes unused candidates whose body part matches the focus, in
// rank order, up to the cap.
func pickByFocus(candidates []scoring.Candidate, groups []string, used map[string]bool, limit int) []models.Exercise {
	keywords := keywordsForGroups(groups)
	exercises := make([]models.Exercise, 0, limit)

	for _, c := range candidates {
		if len(exercises) >= limit {
			break
		}
		if used[c.Title] || !matchesKeywords(c.BodyPart, keywords) {
			continue
		}
		used[c.Title] = true
		exercises = append(exercises, c.Exercise)
	}

	return exercises
}

func matchesKeywords(bodyPart string, keywords []string) bool {
	part := strings.ToLower(bodyPart)
	for _, kw := range keywords {
		if strings.Contains(part, kw) {
			return true
		}
	}
	return false
}
