// Package database provides PostgreSQL connection management.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open creates a connection pool from the given configuration and verifies
// it with a ping bounded by the configured connection timeout. The caller
// owns the returned pool and must close it.
func Open(ctx context.Context, cfg *Config, logger *slog.Logger) (*sql.DB, error) {
	log := logger.With("system", "database")

	db, err := sql.Open("pgx", cfg.Dsn())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnTimeoutDuration())
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	log.Info("database connection established", "host", cfg.Host, "name", cfg.Name)
	return db, nil
}
