package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"kinview/internal/config"
	"kinview/internal/metrics"
	"kinview/internal/store"
	"kinview/internal/store/memory"
	"kinview/internal/store/postgres"
	"kinview/internal/store/sqlite"
	"kinview/internal/view"
)

func loadConfig() (*config.ProjectConfig, *logrus.Logger, error) {
	cfg, err := config.LoadProjectConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func newLogger(lc config.LogConfig) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	name := lc.Level
	if logLevel != "" {
		name = logLevel
	}
	level, err := logrus.ParseLevel(name)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	logger.SetLevel(level)
	if lc.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger, nil
}

func openDB(ctx context.Context, cfg *config.ProjectConfig) (store.SnapshotStore, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		return postgres.New(ctx, cfg.Database.DSN)
	default:
		return sqlite.New(ctx, cfg.Database.DSN)
	}
}

// openView loads the stored snapshot and stacks the configured proxies
// over it. The caller closes the returned store.
func openView(ctx context.Context, cfg *config.ProjectConfig, logger *logrus.Logger, m *metrics.Metrics) (*view.View, store.SnapshotStore, error) {
	db, err := openDB(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	snap, err := db.LoadSnapshot(ctx)
	if err != nil {
		db.Close(ctx)
		return nil, nil, fmt.Errorf("loading snapshot (run kinview import first): %w", err)
	}
	tree, err := memory.New(snap)
	if err != nil {
		db.Close(ctx)
		return nil, nil, fmt.Errorf("indexing snapshot: %w", err)
	}

	viewCfg := cfg.View
	if rawView {
		viewCfg = config.ViewConfig{Collation: cfg.View.Collation}
	}
	v, err := view.Build(tree, viewCfg, view.Options{
		Language: cfg.Language,
		Logger:   logger,
		Metrics:  m,
	})
	if err != nil {
		db.Close(ctx)
		return nil, nil, err
	}
	return v, db, nil
}
