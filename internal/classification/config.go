package classification

import (
	"fmt"
	"os"
	"strconv"
)

// Config tunes the classification engine.
type Config struct {
	// PoolSize is the number of ranked candidates retained per row.
	PoolSize int `toml:"pool_size" json:"pool_size"`
	// MinScore is the confidence threshold below which no code is assigned.
	MinScore float64 `toml:"min_score" json:"min_score"`
}

// ConfigEnv maps environment variable names for engine configuration.
type ConfigEnv struct {
	PoolSize string
	MinScore string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *ConfigEnv) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies non-zero values from the overlay configuration.
func (c *Config) Merge(overlay *Config) {
	if overlay.PoolSize != 0 {
		c.PoolSize = overlay.PoolSize
	}
	if overlay.MinScore != 0 {
		c.MinScore = overlay.MinScore
	}
}

func (c *Config) loadDefaults() {
	if c.PoolSize <= 0 {
		c.PoolSize = 4
	}
	if c.MinScore <= 0 {
		c.MinScore = 0.35
	}
}

func (c *Config) loadEnv(env *ConfigEnv) {
	if env.PoolSize != "" {
		if v := os.Getenv(env.PoolSize); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.PoolSize = n
			}
		}
	}
	if env.MinScore != "" {
		if v := os.Getenv(env.MinScore); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				c.MinScore = f
			}
		}
	}
}

func (c *Config) validate() error {
	if c.PoolSize < 2 {
		return fmt.Errorf("pool_size must be at least 2")
	}
	if c.MinScore < 0 || c.MinScore >= 1 {
		return fmt.Errorf("min_score must be within [0, 1)")
	}
	return nil
}
