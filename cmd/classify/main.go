// Command classify runs the full pipeline once for a single piece of
// evidence and prints the classification result as JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dmcameron/attest/internal/agents"
	"github.com/dmcameron/attest/internal/catalog"
	"github.com/dmcameron/attest/internal/config"
	"github.com/dmcameron/attest/internal/ocr"
	"github.com/dmcameron/attest/internal/workflow"
	"github.com/dmcameron/attest/pkg/database"
	"github.com/dmcameron/attest/pkg/dates"
	"github.com/dmcameron/attest/pkg/debug"
	"github.com/dmcameron/attest/pkg/storage"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	var (
		text      string
		textFile  string
		blobKey   string
		dateStart string
		dateEnd   string
		useLLM    bool
	)

	cmd := &cobra.Command{
		Use:           "classify",
		Short:         "Classify one piece of compliance evidence",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			evidence, err := loadEvidence(cmd.Context(), cfg, logger, text, textFile, blobKey)
			if err != nil {
				return err
			}

			rt, err := buildRuntime(cfg, logger, useLLM)
			if err != nil {
				return err
			}

			window := dates.Window{Start: dateStart, End: dateEnd}
			result, err := workflow.Classify(cmd.Context(), rt, uuid.NewString(), evidence, window)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			return enc.Encode(result)
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "evidence text")
	cmd.Flags().StringVar(&textFile, "text-file", "", "path to a file containing evidence text")
	cmd.Flags().StringVar(&blobKey, "blob-key", "", "blob storage key of the evidence text")
	cmd.Flags().StringVar(&dateStart, "date-start", "", "audit window start (ISO date)")
	cmd.Flags().StringVar(&dateEnd, "date-end", "", "audit window end (ISO date)")
	cmd.Flags().BoolVar(&useLLM, "llm", false, "use the model-backed strategy")

	cmd.MarkFlagRequired("date-start")
	cmd.MarkFlagRequired("date-end")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "classify: %v\n", err)
		os.Exit(1)
	}
}

// loadEvidence resolves exactly one of the three text inputs. File and blob
// inputs go through the plaintext extractor so unsupported formats are
// rejected up front.
func loadEvidence(ctx context.Context, cfg *config.Config, logger *slog.Logger, text, textFile, blobKey string) (string, error) {
	extractor := ocr.Plaintext{}

	switch {
	case text != "":
		return text, nil

	case textFile != "":
		f, err := os.Open(textFile)
		if err != nil {
			return "", fmt.Errorf("open evidence file: %w", err)
		}
		defer f.Close()
		return extractor.Extract(ctx, textFile, f)

	case blobKey != "":
		store, err := storage.New(&cfg.Storage, logger)
		if err != nil {
			return "", err
		}
		reader, err := store.Download(ctx, blobKey)
		if err != nil {
			return "", err
		}
		defer reader.Close()
		return extractor.Extract(ctx, blobKey, reader)
	}

	return "", errors.New("one of --text, --text-file, or --blob-key is required")
}

func buildRuntime(cfg *config.Config, logger *slog.Logger, useLLM bool) (*workflow.Runtime, error) {
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
	if useLLM {
		if !config.AgentConfigured(&cfg.Agent) {
			return nil, errors.New("--llm requires a configured agent")
		}
		capability = agents.NewLLM(cfg.Agent, logger)
	} else {
		capability = agents.NewDeterministic(logger)
	}

	return &workflow.Runtime{
		Agents:  capability,
		Catalog: cache,
		Debug:   debug.FromEnv("ATTEST_DEBUG_DIR", logger),
		Logger:  logger,
	}, nil
}
