// internal/catalog/config.go
package catalog

import "time"

type Config struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	Country    string
	Language   string
	MinReviews int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:    15 * time.Second,
		Country:    "us",
		Language:   "en",
		MinReviews: 5,
	}
}
