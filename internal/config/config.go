// Package config loads the layered TOML configuration: base file,
// environment overlay, then environment variable overrides.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/dmcameron/attest/pkg/database"
	"github.com/dmcameron/attest/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvAttestEnv     = "ATTEST_ENV"
	EnvAttestVersion = "ATTEST_VERSION"
)

var databaseEnv = &database.Env{
	Host:        "ATTEST_DB_HOST",
	Port:        "ATTEST_DB_PORT",
	Name:        "ATTEST_DB_NAME",
	User:        "ATTEST_DB_USER",
	Password:    "ATTEST_DB_PASSWORD",
	SSLMode:     "ATTEST_DB_SSL_MODE",
	ConnTimeout: "ATTEST_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "ATTEST_STORAGE_CONTAINER_NAME",
	ConnectionString: "ATTEST_STORAGE_CONNECTION_STRING",
}

// Config is the root configuration for the classification engine.
type Config struct {
	Catalog  CatalogConfig        `toml:"catalog"`
	Agent    gaconfig.AgentConfig `toml:"agent"`
	Database database.Config      `toml:"database"`
	Storage  storage.Config       `toml:"storage"`
	Version  string               `toml:"version"`
}

// Env returns the ATTEST_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvAttestEnv); env != "" {
		return env
	}
	return "local"
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and
// environment variables provide all configuration.
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
	c.Catalog.Merge(&overlay.Catalog)
	c.Agent.Merge(&overlay.Agent)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
}

func (c *Config) finalize() error {
	if c.Version == "" {
		c.Version = "0.1.0"
	}
	if v := os.Getenv(EnvAttestVersion); v != "" {
		c.Version = v
	}

	if err := c.Catalog.Finalize(); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	// The agent backs the optional model strategy; a repo running only the
	// deterministic strategy needs no agent section at all.
	if err := FinalizeAgent(&c.Agent); err != nil {
		return fmt.Errorf("agent: %w", err)
	}
	// Database and storage are optional backends; finalize only when the
	// operator configured them at all.
	if c.Database.Name != "" || c.Database.User != "" {
		if err := c.Database.Finalize(databaseEnv); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	}
	if c.Storage.ConnectionString != "" {
		if err := c.Storage.Finalize(storageEnv); err != nil {
			return fmt.Errorf("storage: %w", err)
		}
	}
	return nil
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
	if env := os.Getenv(EnvAttestEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
