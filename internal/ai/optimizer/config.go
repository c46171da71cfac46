// internal/ai/optimizer/config.go
package optimizer

import "time"

type Config struct {
	Timeout  time.Duration
	CacheTTL time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout:  8 * time.Second,
		CacheTTL: 10 * time.Minute,
	}
}
