// internal/planner/advice/rulebased.go
package advice

import (
	"context"
	"strings"

	"fitcoach-backend/internal/models"
	"fitcoach-backend/internal/planner/vocabulary"
)

// RuleBasedAdvisor generates deterministic coaching tips from the exercise
// record alone. It backs up the LLM advisor and never fails.
type RuleBasedAdvisor struct{}

func NewRuleBasedAdvisor() *RuleBasedAdvisor {
	return &RuleBasedAdvisor{}
}

// formCues is an ordered table so the loose body-part match below stays
// deterministic for free-form values matching more than one name.
var formCues = []struct {
	BodyPart string
	Cue      string
}{
	{"Chest", "Keep your shoulder blades retracted and lower the weight under control."},
	{"Back", "Initiate each rep by pulling your shoulder blades down and back."},
	{"Shoulders", "Keep your core braced and avoid arching your lower back."},
	{"Biceps", "Pin your elbows to your sides and avoid swinging the weight."},
	{"Triceps", "Keep your elbows tucked and extend fully without locking out hard."},
	{"Quadriceps", "Drive through your whole foot and keep your knees tracking over your toes."},
	{"Hamstrings", "Hinge at the hips and keep a neutral spine throughout the movement."},
	{"Glutes", "Squeeze your glutes hard at the top of each rep."},
	{"Calves", "Pause briefly at the top and stretch fully at the bottom."},
	{"Abdominals", "Exhale as you contract and avoid pulling on your neck."},
	{"Core", "Brace as if expecting a punch and keep your hips level."},
	{"Legs", "Control the descent and drive up with intent."},
	{"Full Body", "Move with control and keep your breathing steady throughout."},
}

var equipmentCues = map[string]string{
	vocabulary.EquipBodyOnly:     "Slow down the tempo to make bodyweight reps harder.",
	vocabulary.EquipNone:         "Slow down the tempo to make bodyweight reps harder.",
	vocabulary.EquipBarbell:      "Start light to groove the bar path before adding plates.",
	vocabulary.EquipDumbbell:     "Work each side evenly and control the weights through the full range.",
	vocabulary.EquipKettlebells:  "Keep your wrist straight and let the bell rest on your forearm.",
	vocabulary.EquipBands:        "Keep tension on the band through the entire range of motion.",
	vocabulary.EquipMachine:      "Set the seat and pads so the pivot lines up with your joint.",
	vocabulary.EquipCable:        "Step far enough from the stack to keep tension at full stretch.",
	vocabulary.EquipExerciseBall: "Move slowly and keep your balance points stable.",
	vocabulary.EquipMedicineBall: "Be explosive on the throw and controlled on the catch.",
	vocabulary.EquipFoamRoll:     "Roll slowly and pause on tender spots for a few breaths.",
	vocabulary.EquipEZCurlBar:    "Use the angled grip to keep your wrists neutral.",
}

var levelCues = map[string]string{
	models.LevelBeginner:     "Master the movement with light resistance before progressing.",
	models.LevelIntermediate: "Add a small amount of weight or reps each week.",
	models.LevelAdvanced:     "Push close to failure on your last set while keeping strict form.",
}

// ExerciseTip composes a two-sentence tip: a form cue for the target area
// and a progression cue for the level or equipment.
func (r *RuleBasedAdvisor) ExerciseTip(_ context.Context, ex models.Exercise, level string) (string, error) {
	first := formCue(ex)
	second, ok := levelCues[level]
	if !ok {
		second = levelCues[models.LevelBeginner]
	}
	if cue, ok := equipmentCues[ex.Equipment]; ok && first == genericFormCue {
		first = cue
	}
	return first + " " + second, nil
}

const genericFormCue = "Focus on controlled reps through a full range of motion."

func formCue(ex models.Exercise) string {
	for _, entry := range formCues {
		if entry.BodyPart == ex.BodyPart {
			return entry.Cue
		}
	}
	// Body part values in the index are free-form, try a loose match.
	part := strings.ToLower(ex.BodyPart)
	for _, entry := range formCues {
		if strings.Contains(part, strings.ToLower(entry.BodyPart)) {
			return entry.Cue
		}
	}
	return genericFormCue
}

var generalTips = []string{
	"Warm up for 5-10 minutes before every session.",
	"Stay hydrated throughout your workout.",
	"Prioritize sleep, most adaptation happens while you recover.",
	"Progress gradually, add weight or reps only when your form is solid.",
	"Leave at least one rest day between sessions targeting the same muscles.",
}

// PlanTips returns canned training tips tuned to the plan's schedule.
func (r *RuleBasedAdvisor) PlanTips(_ context.Context, plan *models.WorkoutPlan) ([]string, error) {
	tips := make([]string, 0, 3)
	tips = append(tips, generalTips[0], generalTips[1])

	switch {
	case plan.DaysPerWeek >= 5:
		tips = append(tips, generalTips[4])
	case plan.Level == models.LevelBeginner:
		tips = append(tips, generalTips[3])
	default:
		tips = append(tips, generalTips[2])
	}

	return tips, nil
}
