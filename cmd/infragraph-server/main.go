package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dd0wney/infragraph/pkg/api"
	"github.com/dd0wney/infragraph/pkg/config"
	"github.com/dd0wney/infragraph/pkg/graph"
	"github.com/dd0wney/infragraph/pkg/health"
	"github.com/dd0wney/infragraph/pkg/loader"
	"github.com/dd0wney/infragraph/pkg/logging"
	"github.com/dd0wney/infragraph/pkg/metrics"
	"github.com/dd0wney/infragraph/pkg/server"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	dataset := flag.String("dataset", "", "Path to JSON dataset file (overrides config)")
	listen := flag.String("listen", "", "Listen address (overrides config)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *dataset != "" {
		cfg.Dataset.Source = "file"
		cfg.Dataset.Path = *dataset
	}
	if *listen != "" {
		cfg.Server.Listen = *listen
	}

	logger := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(cfg.LogLevel))
	m := metrics.NewRegistry()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	source, err := newSource(ctx, cfg.Dataset)
	if err != nil {
		cancel()
		logger.Error("Failed to create dataset source", logging.Error(err))
		os.Exit(1)
	}

	// The server refuses to start without a valid initial snapshot.
	snap, err := loader.BuildFromSource(ctx, source)
	cancel()
	if err != nil {
		logger.Error("Failed to load initial snapshot", logging.Error(err))
		os.Exit(1)
	}
	logger.Info("Initial snapshot loaded",
		logging.String("source", source.Name()),
		logging.UnitCount(snap.UnitCount()),
		logging.EdgeCount(snap.EdgeCount()))

	store := graph.NewStore(snap)
	m.SetSnapshotSize(snap.UnitCount(), snap.EdgeCount())

	checker := health.NewChecker()
	checker.RegisterReadiness("snapshot", health.SnapshotCheck(store))

	apiServer := api.NewServer(store, source, api.AnalysisOptions{
		ChainLimit:  cfg.Analysis.ChainLimit,
		TopCritical: cfg.Analysis.TopCritical,
	}, logger, m, checker)

	gs := server.NewGracefulServer(cfg.Server.Listen, apiServer.Router(), logger, server.Options{
		ReadTimeout:     cfg.Server.ReadTimeout.Std(),
		WriteTimeout:    cfg.Server.WriteTimeout.Std(),
		ShutdownTimeout: cfg.Server.ShutdownTimeout.Std(),
	})
	gs.SetReloadFunc(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		next, err := loader.BuildFromSource(ctx, source)
		if err != nil {
			m.RecordReload("error")
			return err
		}
		store.Swap(next)
		m.RecordReload("ok")
		m.SetSnapshotSize(next.UnitCount(), next.EdgeCount())
		logger.Info("Snapshot swapped",
			logging.UnitCount(next.UnitCount()),
			logging.EdgeCount(next.EdgeCount()))
		return nil
	})

	if err := gs.Start(); err != nil {
		logger.Error("Server failed", logging.Error(err))
		os.Exit(1)
	}
}

func newSource(ctx context.Context, cfg config.DatasetConfig) (loader.Source, error) {
	switch cfg.Source {
	case "file":
		return loader.NewFileSource(cfg.Path), nil
	case "postgres":
		return loader.NewPostgresSource(ctx, cfg.DatabaseURL)
	case "s3":
		return loader.NewS3Source(ctx, cfg.Bucket, cfg.Key, cfg.Region)
	default:
		return nil, fmt.Errorf("unknown dataset source %q", cfg.Source)
	}
}
