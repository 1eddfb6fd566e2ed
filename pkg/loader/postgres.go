package loader

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dd0wney/infragraph/pkg/graph"
)

// PostgresSource loads a dataset from the infrastructure_units and
// unit_dependencies tables.
type PostgresSource struct {
	pool *pgxpool.Pool
	url  string
}

// NewPostgresSource connects to Postgres and verifies connectivity.
func NewPostgresSource(ctx context.Context, databaseURL string) (*PostgresSource, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Reload-only workload, keep the pool small
	config.MaxConns = 5
	config.MinConns = 1
	config.MaxConnLifetime = 5 * time.Minute
	config.MaxConnIdleTime = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	return &PostgresSource{pool: pool, url: databaseURL}, nil
}

func (s *PostgresSource) Name() string {
	return "postgres"
}

// Close closes the connection pool.
func (s *PostgresSource) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresSource) Load(ctx context.Context) (*Dataset, error) {
	ds := &Dataset{}

	rows, err := s.pool.Query(ctx, `
		SELECT id, name, unit_type, location, department, COALESCE(status, 'operational')
		FROM infrastructure_units
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query units: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, name, rawType, location, department, rawStatus string
		if err := rows.Scan(&id, &name, &rawType, &location, &department, &rawStatus); err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		unitType, err := graph.ParseUnitType(rawType)
		if err != nil {
			return nil, fmt.Errorf("unit %s: %w", id, err)
		}
		status, err := graph.ParseUnitStatus(rawStatus)
		if err != nil {
			return nil, fmt.Errorf("unit %s: %w", id, err)
		}
		ds.Units = append(ds.Units, graph.Unit{
			ID:         id,
			Name:       name,
			Type:       unitType,
			Location:   location,
			Department: department,
			Status:     status,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read units: %w", err)
	}

	edgeRows, err := s.pool.Query(ctx, `
		SELECT from_unit_id, to_unit_id
		FROM unit_dependencies
		ORDER BY from_unit_id, to_unit_id`)
	if err != nil {
		return nil, fmt.Errorf("query dependencies: %w", err)
	}
	defer edgeRows.Close()

	for edgeRows.Next() {
		var from, to string
		if err := edgeRows.Scan(&from, &to); err != nil {
			return nil, fmt.Errorf("scan dependency: %w", err)
		}
		ds.Edges = append(ds.Edges, graph.Edge{FromID: from, ToID: to})
	}
	if err := edgeRows.Err(); err != nil {
		return nil, fmt.Errorf("read dependencies: %w", err)
	}

	return ds, nil
}
