package main

import (
	"context"
	"log/slog"

	"github.com/dmcameron/attest/internal/agents"
	"github.com/dmcameron/attest/internal/catalog"
	"github.com/dmcameron/attest/internal/config"
	"github.com/dmcameron/attest/internal/engine"
	"github.com/dmcameron/attest/internal/workflow"
	"github.com/dmcameron/attest/pkg/database"
	"github.com/dmcameron/attest/pkg/debug"
)

// EnvDebugDir points the snapshot recorder at a writable directory.
const EnvDebugDir = "ATTEST_DEBUG_DIR"

func buildEngine(logger *slog.Logger) (*engine.Engine, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	rt, err := buildRuntime(cfg, logger)
	if err != nil {
		return nil, err
	}

	return engine.New(rt, logger), nil
}

// buildRuntime assembles the pipeline runtime: catalog sources in priority
// order (remote endpoint, database, fallback file), the capability strategy
// (model-backed when an agent is configured, deterministic otherwise), and
// the debug recorder.
func buildRuntime(cfg *config.Config, logger *slog.Logger) (*workflow.Runtime, error) {
	var sources []catalog.Source

	if cfg.Catalog.BaseURL != "" && cfg.Catalog.APIKey != "" {
		sources = append(sources, catalog.NewRestSource(cfg.Catalog.BaseURL, cfg.Catalog.APIKey))
	}

	if cfg.Catalog.UseDatabase {
		db, err := database.Open(context.Background(), &cfg.Database, logger)
		if err != nil {
			logger.Warn("catalog database unavailable", "error", err)
		} else {
			sources = append(sources, catalog.NewPostgresSource(db))
		}
	}

	sources = append(sources, catalog.NewFileSource(cfg.Catalog.FallbackPath))

	cache := catalog.NewCache(sources, logger, catalog.WithTTL(cfg.Catalog.TTLDuration()))

	var capability agents.System
	if config.AgentConfigured(&cfg.Agent) {
		capability = agents.NewLLM(cfg.Agent, logger)
	} else {
		capability = agents.NewDeterministic(logger)
	}

	return &workflow.Runtime{
		Agents:  capability,
		Catalog: cache,
		Debug:   debug.FromEnv(EnvDebugDir, logger),
		Logger:  logger,
	}, nil
}
