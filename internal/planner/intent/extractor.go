// internal/planner/intent/extractor.go

// Package intent turns a free-text workout request into structured
// constraints. Extraction never fails: anything it cannot understand
// degrades to defaults instead of erroring.
package intent

import (
	"regexp"
	"strconv"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"fitcoach-backend/internal/common/logger"
	"fitcoach-backend/internal/models"
	"fitcoach-backend/internal/planner/vocabulary"
)

// Defaults applied when a request says nothing about schedule or level.
const (
	DefaultDaysPerWeek       = 3
	DefaultMinutesPerSession = 30
	MaxDaysPerWeek           = 6
	DefaultFuzzyThreshold    = 80
)

type Config struct {
	// FuzzyThreshold is the minimum token-sort ratio (0-100) for an n-gram
	// to count as an equipment mention.
	FuzzyThreshold int
}

func LoadConfig() *Config {
	return &Config{FuzzyThreshold: DefaultFuzzyThreshold}
}

type Extractor struct {
	config *Config
	logger logger.Logger
}

func NewExtractor(config *Config, log logger.Logger) *Extractor {
	if config.FuzzyThreshold <= 0 {
		config.FuzzyThreshold = DefaultFuzzyThreshold
	}
	return &Extractor{
		config: config,
		logger: log.WithFields(map[string]interface{}{"component": "intent-extractor"}),
	}
}

var (
	whitespaceRe  = regexp.MustCompile(`\s+`)
	punctuationRe = regexp.MustCompile(`[^\w\s]`)
	daysRe        = regexp.MustCompile(`\b(\d+)\s*days?\b`)
	minutesRe     = regexp.MustCompile(`\b(\d+)\s*(?:minutes?|mins?)\b`)

	// "dumbbells only", "only dumbbells", "just dumbbells" and friends mark
	// the equipment list exclusive.
	onlyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`([\w\s]+?)\s+only\b`),
		regexp.MustCompile(`\bonly\s+([\w\s]+)`),
		regexp.MustCompile(`\bjust\s+([\w\s]+)`),
		regexp.MustCompile(`\busing\s+only\s+([\w\s]+)`),
		regexp.MustCompile(`\bwith\s+only\s+([\w\s]+)`),
		regexp.MustCompile(`\bhave\s+only\s+([\w\s]+)`),
		regexp.MustCompile(`\baccess\s+to\s+only\s+([\w\s]+)`),
	}
)

// Extract parses a free-text request into an Intent. It always returns a
// usable Intent; missing pieces fall back to defaults.
func (e *Extractor) Extract(text string) models.Intent {
	normalized := Normalize(text)

	it := models.Intent{
		Level:             e.extractLevel(normalized),
		DaysPerWeek:       e.extractDays(normalized),
		MinutesPerSession: e.extractMinutes(normalized),
		BodyParts:         extractBodyParts(normalized),
		NamedSplit:        extractNamedSplit(normalized),
	}

	it.Equipment, it.EquipmentExclusive, it.NoEquipmentOnly = e.extractEquipment(normalized)

	e.logger.Debug("intent extracted", map[string]interface{}{
		"equipment":       it.Equipment,
		"exclusive":       it.EquipmentExclusive,
		"noEquipmentOnly": it.NoEquipmentOnly,
		"bodyParts":       it.BodyParts,
		"level":           it.Level,
		"daysPerWeek":     it.DaysPerWeek,
		"minutes":         it.MinutesPerSession,
		"namedSplit":      it.NamedSplit,
	})

	return it
}

// Normalize lowercases text, strips punctuation and collapses whitespace so
// substring matching against the vocabulary is reliable.
func Normalize(text string) string {
	text = strings.ToLower(text)
	text = punctuationRe.ReplaceAllString(text, " ")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

func (e *Extractor) extractEquipment(text string) (equipment []string, exclusive, noEquipmentOnly bool) {
	for _, phrase := range vocabulary.NoEquipmentPhrases {
		if strings.Contains(text, phrase) {
			return []string{vocabulary.EquipBodyOnly}, true, true
		}
	}

	for _, pattern := range onlyPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if matched := e.matchEquipment(strings.TrimSpace(m[1])); len(matched) > 0 {
			return matched, true, false
		}
	}

	return e.matchEquipment(text), false, false
}

// matchEquipment finds canonical equipment mentioned in normalized text.
// Exact substring matches win; when none hit, 1-3 word n-grams are compared
// against every term with a token-sort ratio.
func (e *Extractor) matchEquipment(text string) []string {
	var matched []string
	seen := make(map[string]bool)

	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			matched = append(matched, name)
		}
	}

	for _, entry := range vocabulary.EquipmentEntries() {
		if strings.Contains(text, entry.Key) {
			add(entry.Name)
			continue
		}
		for _, syn := range entry.Synonyms {
			if strings.Contains(text, syn) {
				add(entry.Name)
				break
			}
		}
	}
	if len(matched) > 0 {
		return matched
	}

	words := strings.Fields(text)
	for n := 1; n <= 3; n++ {
		for i := 0; i+n <= len(words); i++ {
			phrase := strings.Join(words[i:i+n], " ")
			for _, entry := range vocabulary.EquipmentEntries() {
				if fuzzy.TokenSortRatio(phrase, entry.Key) >= e.config.FuzzyThreshold {
					add(entry.Name)
					continue
				}
				for _, syn := range entry.Synonyms {
					if fuzzy.TokenSortRatio(phrase, syn) >= e.config.FuzzyThreshold {
						add(entry.Name)
						break
					}
				}
			}
		}
	}

	return matched
}

func extractBodyParts(text string) []string {
	var parts []string
	seen := make(map[string]bool)
	for _, kw := range vocabulary.BodyPartKeywords {
		if strings.Contains(text, kw.Keyword) && !seen[kw.Part] {
			seen[kw.Part] = true
			parts = append(parts, kw.Part)
		}
	}
	return parts
}

func (e *Extractor) extractLevel(text string) string {
	// The earliest literal mention wins.
	best := models.LevelBeginner
	bestIdx := -1
	for _, level := range []string{models.LevelBeginner, models.LevelIntermediate, models.LevelAdvanced} {
		if idx := strings.Index(text, level); idx >= 0 && (bestIdx < 0 || idx < bestIdx) {
			best = level
			bestIdx = idx
		}
	}
	return best
}

func (e *Extractor) extractDays(text string) int {
	if m := daysRe.FindStringSubmatch(text); m != nil {
		days, err := strconv.Atoi(m[1])
		if err == nil && days > 0 {
			if days > MaxDaysPerWeek {
				return MaxDaysPerWeek
			}
			return days
		}
	}
	return DefaultDaysPerWeek
}

func (e *Extractor) extractMinutes(text string) int {
	if m := minutesRe.FindStringSubmatch(text); m != nil {
		minutes, err := strconv.Atoi(m[1])
		if err == nil && minutes > 0 {
			return minutes
		}
	}
	return DefaultMinutesPerSession
}

func extractNamedSplit(text string) string {
	for _, split := range vocabulary.NamedSplits {
		if strings.Contains(text, split.Key) {
			return split.Key
		}
	}
	return ""
}
