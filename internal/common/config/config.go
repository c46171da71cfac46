// internal/common/config/config.go
package config

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	APIs     APIsConfig     `mapstructure:"apis"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Search   SearchConfig   `mapstructure:"search"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address         string `mapstructure:"address"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// APIsConfig holds settings for external API integrations.
type APIsConfig struct {
	GenAI struct {
		BaseURL          string  `mapstructure:"base_url"`
		APIKey           string  `mapstructure:"api_key"`
		Model            string  `mapstructure:"model"`
		OptimizerTimeout int     `mapstructure:"optimizer_timeout"` // milliseconds
		RankerTimeout    int     `mapstructure:"ranker_timeout"`    // milliseconds
		RankerMaxTokens  int     `mapstructure:"ranker_max_tokens"`
		RankerTemp       float64 `mapstructure:"ranker_temperature"`
	} `mapstructure:"genai"`

	Catalog struct {
		BaseURL    string `mapstructure:"base_url"`
		APIKey     string `mapstructure:"api_key"`
		Timeout    int    `mapstructure:"timeout"` // milliseconds
		Country    string `mapstructure:"country"`
		Language   string `mapstructure:"language"`
		MinReviews int    `mapstructure:"min_reviews"`
	} `mapstructure:"catalog"`
}

// CacheConfig holds TTLs for the server-side AI response cache.
type CacheConfig struct {
	AITTL         int `mapstructure:"ai_ttl"`         // milliseconds
	SweepInterval int `mapstructure:"sweep_interval"` // milliseconds
}

// SearchConfig holds orchestration limits.
type SearchConfig struct {
	MaxCandidates int `mapstructure:"max_candidates"` // cap after price filter
	MaxRanked     int `mapstructure:"max_ranked"`     // cap sent to the ranker
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
