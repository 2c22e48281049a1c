// internal/common/config/config.go
package config

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Advisor  AdvisorConfig  `mapstructure:"advisor"`
	Planner  PlannerConfig  `mapstructure:"planner"`
	History  HistoryConfig  `mapstructure:"history"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port            int `mapstructure:"port"`
	ReadTimeout     int `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int `mapstructure:"shutdown_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type ElasticsearchConfig struct {
	Addresses  []string `mapstructure:"addresses"`
	Username   string   `mapstructure:"username"`
	Password   string   `mapstructure:"password"`
	SSLEnabled bool     `mapstructure:"ssl_enabled"`
	URL        string   `mapstructure:"url"` // Single URL for backwards compatibility
}

// GetURL returns the first address or the URL field
func (e ElasticsearchConfig) GetURL() string {
	if e.URL != "" {
		return e.URL
	}
	if len(e.Addresses) > 0 {
		return e.Addresses[0]
	}
	return ""
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// --- Specific Configuration Sections ---

// AdvisorConfig holds settings for the LLM advisory client.
type AdvisorConfig struct {
	BaseURL     string  `mapstructure:"base_url"`
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Timeout     int     `mapstructure:"timeout"` // milliseconds
	MaxRetries  int     `mapstructure:"max_retries"`
}

// PlannerConfig holds the tunable heuristics of plan generation.
type PlannerConfig struct {
	ExerciseIndex        string        `mapstructure:"exercise_index"`
	PrimarySearchSize    int           `mapstructure:"primary_search_size"`
	FallbackSearchSize   int           `mapstructure:"fallback_search_size"`
	RelaxationMultiplier int           `mapstructure:"relaxation_multiplier"`
	MinutesPerExercise   int           `mapstructure:"minutes_per_exercise"`
	MinExercisesPerDay   int           `mapstructure:"min_exercises_per_day"`
	FuzzyThreshold       int           `mapstructure:"fuzzy_threshold"`
	Scoring              ScoringConfig `mapstructure:"scoring"`
}

// ScoringConfig holds the candidate scoring weights.
type ScoringConfig struct {
	ExactEquipment        int `mapstructure:"exact_equipment"`
	NoEquipmentBodyweight int `mapstructure:"no_equipment_bodyweight"`
	LooseBodyweight       int `mapstructure:"loose_bodyweight"`
	BodyPartMatch         int `mapstructure:"body_part_match"`
	MinInclusionScore     int `mapstructure:"min_inclusion_score"`
}

// HistoryConfig holds settings for workout history persistence.
type HistoryConfig struct {
	Index    string `mapstructure:"index"`
	CacheTTL int    `mapstructure:"cache_ttl"` // milliseconds
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
