package config

import (
	"fmt"
	"os"
	"time"
)

const (
	EnvCatalogBaseURL      = "ATTEST_CATALOG_BASE_URL"
	EnvCatalogAPIKey       = "ATTEST_CATALOG_API_KEY"
	EnvCatalogFallbackPath = "ATTEST_CATALOG_FALLBACK_PATH"
	EnvCatalogTTL          = "ATTEST_CATALOG_TTL"
)

// CatalogConfig selects the control-spec catalog sources. The remote
// endpoint is used when a base URL and key are present; the database is
// used when use_database is set and a database section is configured; the
// fallback file is always registered last.
type CatalogConfig struct {
	BaseURL      string `toml:"base_url"`
	APIKey       string `toml:"api_key"`
	UseDatabase  bool   `toml:"use_database"`
	FallbackPath string `toml:"fallback_path"`
	TTL          string `toml:"ttl"`
}

// TTLDuration returns TTL as a time.Duration.
func (c *CatalogConfig) TTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.TTL)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *CatalogConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *CatalogConfig) Merge(overlay *CatalogConfig) {
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.UseDatabase {
		c.UseDatabase = true
	}
	if overlay.FallbackPath != "" {
		c.FallbackPath = overlay.FallbackPath
	}
	if overlay.TTL != "" {
		c.TTL = overlay.TTL
	}
}

func (c *CatalogConfig) loadDefaults() {
	if c.FallbackPath == "" {
		c.FallbackPath = "db/control_specs.json"
	}
	if c.TTL == "" {
		c.TTL = "15m"
	}
}

func (c *CatalogConfig) loadEnv() {
	if v := os.Getenv(EnvCatalogBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvCatalogAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvCatalogFallbackPath); v != "" {
		c.FallbackPath = v
	}
	if v := os.Getenv(EnvCatalogTTL); v != "" {
		c.TTL = v
	}
}

func (c *CatalogConfig) validate() error {
	if _, err := time.ParseDuration(c.TTL); err != nil {
		return fmt.Errorf("invalid ttl: %w", err)
	}
	return nil
}
