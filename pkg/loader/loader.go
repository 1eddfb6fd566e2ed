// Package loader reads infrastructure datasets from files, Postgres, or
// S3 and turns them into graph snapshots.
package loader

import (
	"context"
	"fmt"

	"github.com/dd0wney/infragraph/pkg/graph"
)

// Dataset is the raw unit and edge lists of an infrastructure graph,
// before snapshot validation.
type Dataset struct {
	Units []graph.Unit
	Edges []graph.Edge
}

// Source loads a dataset from some backing store.
type Source interface {
	// Load reads the full dataset. Implementations must be safe to call
	// repeatedly; reloads reuse the same source.
	Load(ctx context.Context) (*Dataset, error)

	// Name identifies the source for logs and errors.
	Name() string
}

// BuildFromSource loads a dataset and builds a validated snapshot from
// it.
func BuildFromSource(ctx context.Context, src Source) (*graph.Snapshot, error) {
	ds, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset from %s: %w", src.Name(), err)
	}

	snap, err := graph.BuildSnapshot(ds.Units, ds.Edges)
	if err != nil {
		return nil, fmt.Errorf("build snapshot from %s: %w", src.Name(), err)
	}
	return snap, nil
}
