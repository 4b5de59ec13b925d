package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	Content  ContentConfig  `mapstructure:"content"  validate:"required"`
	Engine   EngineConfig   `mapstructure:"engine"   validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains the progress-store settings. The database is
// optional: with an empty URL the server runs engine-only and completed
// sessions are logged instead of persisted.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// ContentConfig locates the bundled vocabulary content.
type ContentConfig struct {
	VocabularyPath string `mapstructure:"vocabulary_path" validate:"required"`
}

// EngineConfig bounds the challenge engine's per-session parameters.
type EngineConfig struct {
	// MaxChallengeCount caps how many challenges a single session may request.
	MaxChallengeCount int `mapstructure:"max_challenge_count" validate:"required,gt=0,lte=50"`

	// SkillLevel optionally biases generation towards common words;
	// zero means unbiased sampling.
	SkillLevel int `mapstructure:"skill_level" validate:"gte=0,lte=10"`
}
