package config

import (
	"fmt"
	"os"
	"time"

	"github.com/cleanharbor/cleanharbor/pkg/formatting"
	"github.com/cleanharbor/cleanharbor/pkg/middleware"
	"github.com/cleanharbor/cleanharbor/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "CLEANHARBOR_CORS_ENABLED",
	Origins:          "CLEANHARBOR_CORS_ORIGINS",
	AllowedMethods:   "CLEANHARBOR_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "CLEANHARBOR_CORS_ALLOWED_HEADERS",
	AllowCredentials: "CLEANHARBOR_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "CLEANHARBOR_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "CLEANHARBOR_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "CLEANHARBOR_PAGINATION_MAX_PAGE_SIZE",
}

// APIConfig holds API routing, upload, CORS, and pagination settings.
// StaleAfter is the age past which a processing job is reported stale.
type APIConfig struct {
	BasePath      string                `toml:"base_path"`
	MaxUploadSize string                `toml:"max_upload_size"`
	StaleAfter    string                `toml:"stale_after"`
	CORS          middleware.CORSConfig `toml:"cors"`
	Pagination    pagination.Config     `toml:"pagination"`
}

func (c *APIConfig) MaxUploadSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxUploadSize)
	if err != nil {
		return 50 * 1024 * 1024 // 50MB fallback
	}
	return size
}

// StaleAfterDuration returns StaleAfter as a time.Duration.
func (c *APIConfig) StaleAfterDuration() time.Duration {
	d, _ := time.ParseDuration(c.StaleAfter)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS and pagination configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}
	if overlay.StaleAfter != "" {
		c.StaleAfter = overlay.StaleAfter
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "50MB"
	}
	if c.StaleAfter == "" {
		c.StaleAfter = "15m"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("CLEANHARBOR_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("CLEANHARBOR_API_MAX_UPLOAD_SIZE"); v != "" {
		c.MaxUploadSize = v
	}
	if v := os.Getenv("CLEANHARBOR_API_STALE_AFTER"); v != "" {
		c.StaleAfter = v
	}
}

func (c *APIConfig) validate() error {
	if _, err := time.ParseDuration(c.StaleAfter); err != nil {
		return fmt.Errorf("invalid stale_after: %w", err)
	}
	return nil
}
