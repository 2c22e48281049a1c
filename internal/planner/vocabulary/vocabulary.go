// internal/planner/vocabulary/vocabulary.go

// Package vocabulary holds the canonical fitness vocabulary used by the
// planning pipeline: equipment names and synonyms, equipment categories,
// body-part keywords, no-equipment phrases, basic bodyweight movements and
// named weekly splits. All tables are immutable after process start; lookup
// order is fixed so extraction stays deterministic.
package vocabulary

// Canonical equipment names as stored in the exercise index.
const (
	EquipBodyOnly     = "Body Only"
	EquipNone         = "None"
	EquipBarbell      = "Barbell"
	EquipDumbbell     = "Dumbbell"
	EquipKettlebells  = "Kettlebells"
	EquipBands        = "Bands"
	EquipMachine      = "Machine"
	EquipCable        = "Cable"
	EquipExerciseBall = "Exercise Ball"
	EquipMedicineBall = "Medicine Ball"
	EquipFoamRoll     = "Foam Roll"
	EquipEZCurlBar    = "E-Z Curl Bar"
)

// Equipment maps a primary term plus synonyms to a canonical name.
type Equipment struct {
	Key      string
	Name     string
	Synonyms []string
}

// equipmentTable is a slice, not a map, so n-gram matching walks entries in
// a stable order.
var equipmentTable = []Equipment{
	{Key: "barbell", Name: EquipBarbell, Synonyms: []string{"bar", "olympic bar", "bars"}},
	{Key: "dumbbell", Name: EquipDumbbell, Synonyms: []string{"db", "dumbbells", "free weights", "hand weights"}},
	{Key: "kettlebell", Name: EquipKettlebells, Synonyms: []string{"kb", "kettlebells", "kettle bell", "kettle bells"}},
	{Key: "bands", Name: EquipBands, Synonyms: []string{"resistance bands", "elastic bands", "rubber bands", "tube"}},
	{Key: "machine", Name: EquipMachine, Synonyms: []string{"gym machine", "weight machine", "machines"}},
	{Key: "cable", Name: EquipCable, Synonyms: []string{"pulley", "cables", "cable machine"}},
	{Key: "bodyweight", Name: EquipBodyOnly, Synonyms: []string{"body weight", "no equipment", "bodyweight only", "calisthenics"}},
	{Key: "exercise ball", Name: EquipExerciseBall, Synonyms: []string{"swiss ball", "stability ball", "physio ball", "yoga ball"}},
	{Key: "medicine ball", Name: EquipMedicineBall, Synonyms: []string{"med ball", "weighted ball"}},
	{Key: "foam roller", Name: EquipFoamRoll, Synonyms: []string{"roller", "foam roll"}},
	{Key: "ez bar", Name: EquipEZCurlBar, Synonyms: []string{"ez curl bar", "curl bar", "ez-curl"}},
}

// EquipmentEntries returns the canonical equipment table.
func EquipmentEntries() []Equipment {
	return equipmentTable
}

// equipmentCategories groups canonical names for loose compatibility checks,
// e.g. a user with a barbell is assumed to handle other free weights.
var equipmentCategories = map[string][]string{
	"weight_training": {EquipBarbell, EquipDumbbell, EquipKettlebells, EquipEZCurlBar, EquipMedicineBall},
	"bodyweight":      {EquipBodyOnly},
	"machine":         {EquipMachine, EquipCable},
	"stability":       {EquipExerciseBall, EquipFoamRoll},
	"resistance":      {EquipBands},
}

// EquipmentCategory returns the category of a canonical equipment name, or
// an empty string when unknown.
func EquipmentCategory(name string) string {
	for cat, names := range equipmentCategories {
		for _, n := range names {
			if n == name {
				return cat
			}
		}
	}
	return ""
}

// SameCategory reports whether two canonical equipment names share a
// category. "None" counts as bodyweight.
func SameCategory(a, b string) bool {
	ca := EquipmentCategory(normalizeBodyweight(a))
	cb := EquipmentCategory(normalizeBodyweight(b))
	return ca != "" && ca == cb
}

func normalizeBodyweight(name string) string {
	if name == EquipNone {
		return EquipBodyOnly
	}
	return name
}

// IsBodyweight reports whether an index equipment value means no equipment.
func IsBodyweight(name string) bool {
	return name == EquipBodyOnly || name == EquipNone
}

// BodyweightCompatible lists equipment loosely acceptable for
// bodyweight-preferred requests.
var BodyweightCompatible = []string{EquipNone, EquipBodyOnly, EquipBands, EquipMedicineBall}

// NoEquipmentPhrases short-circuit equipment extraction to bodyweight-only.
var NoEquipmentPhrases = []string{
	"no equipment",
	"body weight",
	"bodyweight",
	"body only",
	"without equipment",
	"no weights",
	"without weights",
	"calisthenics",
	"just my body",
}

// BodyPartKeyword maps a free-text keyword to a canonical body part.
type BodyPartKeyword struct {
	Keyword string
	Part    string
}

// BodyPartKeywords is ordered: extraction walks it front to back so the
// resulting body-part sequence is the same for identical input.
var BodyPartKeywords = []BodyPartKeyword{
	{"full body", "Full Body"},
	{"total body", "Full Body"},
	{"quad", "Quadriceps"},
	{"hamstring", "Hamstrings"},
	{"calf", "Calves"},
	{"calves", "Calves"},
	{"leg", "Legs"},
	{"bicep", "Biceps"},
	{"tricep", "Triceps"},
	{"arm", "Arms"},
	{"shoulder", "Shoulders"},
	{"chest", "Chest"},
	{"pec", "Chest"},
	{"lat", "Back"},
	{"back", "Back"},
	{"core", "Core"},
	{"abs", "Abdominals"},
	{"ab", "Abdominals"},
	{"glute", "Glutes"},
	{"butt", "Glutes"},
}

// BasicBodyweightMovements are canonical movement names used by the
// last-resort literal-name retrieval strategy.
var BasicBodyweightMovements = []string{
	"push up",
	"squat",
	"lunge",
	"plank",
	"crunch",
	"mountain climber",
	"jumping jack",
	"burpee",
	"sit up",
	"pull up",
	"dip",
}

// NamedSplit is a well-known weekly split with the muscle groups trained on
// each day.
type NamedSplit struct {
	Key  string
	Name string
	Days [][]string
}

// NamedSplits are recognized by literal mention in a request. Order matters:
// longer, more specific keys come first so "push pull legs" wins over any
// embedded keyword.
var NamedSplits = []NamedSplit{
	{
		Key:  "push pull legs",
		Name: "Push Pull Legs",
		Days: [][]string{
			{"Chest", "Shoulders", "Triceps"},
			{"Back", "Biceps"},
			{"Legs"},
			{"Chest", "Shoulders", "Triceps"},
			{"Back", "Biceps"},
			{"Legs"},
		},
	},
	{
		Key:  "upper lower",
		Name: "Upper Lower Split",
		Days: [][]string{
			{"Chest", "Shoulders", "Biceps", "Triceps", "Back"},
			{"Legs", "Glutes"},
			{"Chest", "Shoulders", "Biceps", "Triceps", "Back"},
			{"Legs", "Glutes"},
		},
	},
	{
		Key:  "arnold",
		Name: "Arnold Split",
		Days: [][]string{
			{"Chest", "Back"},
			{"Shoulders", "Biceps", "Triceps"},
			{"Legs"},
			{"Chest", "Back"},
			{"Shoulders", "Biceps", "Triceps"},
			{"Legs"},
		},
	},
	{
		Key:  "bro split",
		Name: "Bro Split",
		Days: [][]string{
			{"Chest"},
			{"Back"},
			{"Shoulders"},
			{"Arms"},
			{"Legs"},
		},
	},
}

// FindNamedSplit returns the named split mentioned in normalized text, or
// nil when none matches.
func FindNamedSplit(key string) *NamedSplit {
	for i := range NamedSplits {
		if NamedSplits[i].Key == key {
			return &NamedSplits[i]
		}
	}
	return nil
}

// FocusKeywords maps a day focus label to the lowercase body-part keywords
// that feed it.
var FocusKeywords = map[string][]string{
	"Push":  {"chest", "shoulder", "tricep"},
	"Pull":  {"back", "bicep"},
	"Legs":  {"leg", "quad", "hamstring", "glute", "calf"},
	"Upper": {"chest", "back", "shoulder", "arm", "bicep", "tricep"},
	"Lower": {"leg", "quad", "hamstring", "glute", "calf"},
	"Full Body": {
		"chest", "back", "leg", "shoulder", "arm", "core",
		"quad", "hamstring", "glute", "calf", "bicep", "tricep", "ab",
	},
}

// BodyPartFocusOrder is the day sequence used for five- and six-day splits.
var BodyPartFocusOrder = []string{"Chest", "Back", "Legs", "Shoulders", "Arms", "Core"}
