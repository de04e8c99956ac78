// Package config loads and finalizes service configuration: TOML base file,
// environment overlay, and CLEANHARBOR_* variable overrides, validated in
// three phases (defaults, env, validate) per section.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/cleanharbor/cleanharbor/internal/classification"
	"github.com/cleanharbor/cleanharbor/pkg/database"
	"github.com/cleanharbor/cleanharbor/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvCleanHarborEnv     = "CLEANHARBOR_ENV"
	EnvCleanHarborVersion = "CLEANHARBOR_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "CLEANHARBOR_DB_HOST",
	Port:            "CLEANHARBOR_DB_PORT",
	Name:            "CLEANHARBOR_DB_NAME",
	User:            "CLEANHARBOR_DB_USER",
	Password:        "CLEANHARBOR_DB_PASSWORD",
	SSLMode:         "CLEANHARBOR_DB_SSL_MODE",
	MaxOpenConns:    "CLEANHARBOR_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "CLEANHARBOR_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "CLEANHARBOR_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "CLEANHARBOR_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "CLEANHARBOR_STORAGE_CONTAINER_NAME",
	ConnectionString: "CLEANHARBOR_STORAGE_CONNECTION_STRING",
}

var engineEnv = &classification.ConfigEnv{
	PoolSize: "CLEANHARBOR_ENGINE_POOL_SIZE",
	MinScore: "CLEANHARBOR_ENGINE_MIN_SCORE",
}

// Config is the root configuration for the CleanHarbor service.
type Config struct {
	Server   ServerConfig          `toml:"server"`
	Database database.Config       `toml:"database"`
	Storage  storage.Config        `toml:"storage"`
	API      APIConfig             `toml:"api"`
	Agent    AgentConfig           `toml:"agent"`
	Engine   classification.Config `toml:"engine"`
	Version  string                `toml:"version"`
}

// Env returns the CLEANHARBOR_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvCleanHarborEnv); env != "" {
		return env
	}
	return "local"
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
	c.Agent.Merge(&overlay.Agent)
	c.Engine.Merge(&overlay.Engine)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Agent.Finalize(); err != nil {
		return fmt.Errorf("agent: %w", err)
	}
	if err := c.Engine.Finalize(engineEnv); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvCleanHarborVersion); v != "" {
		c.Version = v
	}
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvCleanHarborEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
