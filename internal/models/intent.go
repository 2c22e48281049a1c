// internal/models/intent.go
package models

// Fitness levels recognized in free-text requests.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// Intent holds the structured constraints decoded from a free-text workout
// request. It is derived once per request and never mutated afterwards.
type Intent struct {
	// Equipment lists canonical equipment names the user mentioned.
	Equipment []string `json:"equipment"`
	// EquipmentExclusive means only the listed equipment may be used.
	EquipmentExclusive bool `json:"equipment_exclusive"`
	// NoEquipmentOnly means the user asked for bodyweight-only training.
	NoEquipmentOnly bool `json:"no_equipment_only"`
	// BodyParts lists canonical body parts in the order their keywords
	// appear in the vocabulary, so extraction is deterministic.
	BodyParts         []string `json:"body_parts"`
	Level             string   `json:"level"`
	DaysPerWeek       int      `json:"days_per_week"`
	MinutesPerSession int      `json:"minutes_per_session"`
	// NamedSplit is set when the request names a well-known weekly split
	// (push pull legs, upper lower, arnold, bro).
	NamedSplit string `json:"named_split,omitempty"`
}

// PrefersEquipment reports whether name is one of the preferred equipment
// items.
func (it Intent) PrefersEquipment(name string) bool {
	for _, e := range it.Equipment {
		if e == name {
			return true
		}
	}
	return false
}
