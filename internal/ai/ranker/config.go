// internal/ai/ranker/config.go
package ranker

import "time"

type Config struct {
	Timeout       time.Duration
	CacheTTL      time.Duration
	MaxCandidates int
	Temperature   float64
	MaxTokens     int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:       10 * time.Second,
		CacheTTL:      10 * time.Minute,
		MaxCandidates: 20,
		Temperature:   0.2,
		MaxTokens:     2048,
	}
}
