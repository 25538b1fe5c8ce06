package catalog

import (
	"context"
	"fmt"

	"github.com/dmcameron/attest/pkg/repository"
)

const selectSpecs = `
SELECT id, control_id, specification
FROM control_specs
ORDER BY control_id`

// PostgresSource loads control specifications directly from a PostgreSQL
// catalog table.
type PostgresSource struct {
	db repository.Querier
}

// NewPostgresSource creates a database catalog source over the given pool.
func NewPostgresSource(db repository.Querier) *PostgresSource {
	return &PostgresSource{db: db}
}

func (s *PostgresSource) Name() string { return "postgres" }

func (s *PostgresSource) Load(ctx context.Context) ([]ControlSpec, error) {
	specs, err := repository.QueryMany(ctx, s.db, selectSpecs, nil, scanSpec)
	if err != nil {
		return nil, fmt.Errorf("query control specs: %w", err)
	}
	return specs, nil
}

func scanSpec(s repository.Scanner) (ControlSpec, error) {
	var spec ControlSpec
	if err := s.Scan(&spec.ID, &spec.ControlID, &spec.Specification); err != nil {
		return ControlSpec{}, err
	}
	return spec, nil
}
