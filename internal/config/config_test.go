package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadProjectConfig(t *testing.T) {
	t.Run("valid config loads", func(t *testing.T) {
		cfg, err := LoadProjectConfig(filepath.Join("testdata", "valid_config.yaml"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Project != "smith-family" {
			t.Fatalf("expected project name, got %q", cfg.Project)
		}
		if !cfg.View.Private || cfg.View.Living == nil || cfg.View.Living.Mode != "last-name-only" {
			t.Fatalf("unexpected view: %#v", cfg.View)
		}
		if cfg.View.Living.YearsAfterDeath != 20 || cfg.View.Referenced != ReferencedConnected {
			t.Fatalf("unexpected view settings: %#v", cfg.View)
		}
		if len(cfg.View.Filter.People) != 2 {
			t.Fatalf("expected two filtered people, got %v", cfg.View.Filter.People)
		}
		if cfg.Export.S3 == nil || !cfg.Export.S3.PathStyle || cfg.Export.S3.Bucket != "family-trees" {
			t.Fatalf("unexpected s3 config: %#v", cfg.Export.S3)
		}
	})

	t.Run("defaults applied", func(t *testing.T) {
		path := writeTempConfig(t, "project: test\nversion: 1\nsources: [./tree]\ndatabase:\n  dsn: sqlite://kinview.db\n")
		cfg, err := LoadProjectConfig(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Database.Driver != DriverSQLite {
			t.Fatalf("expected sqlite default, got %q", cfg.Database.Driver)
		}
		if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
			t.Fatalf("unexpected log defaults: %#v", cfg.Log)
		}
		if cfg.View.Living != nil || cfg.View.Private {
			t.Fatalf("expected empty view, got %#v", cfg.View)
		}
	})

	invalid := []struct {
		name     string
		contents string
	}{
		{"missing project name", "version: 1\nsources: [./tree]\ndatabase: {dsn: a.db}\n"},
		{"unsupported version", "project: test\nversion: 2\nsources: [./tree]\ndatabase: {dsn: a.db}\n"},
		{"no sources", "project: test\nversion: 1\ndatabase: {dsn: a.db}\n"},
		{"empty source", "project: test\nversion: 1\nsources: [\"\"]\ndatabase: {dsn: a.db}\n"},
		{"missing dsn", "project: test\nversion: 1\nsources: [./tree]\n"},
		{"unknown driver", "project: test\nversion: 1\nsources: [./tree]\ndatabase: {driver: mysql, dsn: a}\n"},
		{"bad log level", "project: test\nversion: 1\nsources: [./tree]\ndatabase: {dsn: a.db}\nlog: {level: loud}\n"},
		{"bad log format", "project: test\nversion: 1\nsources: [./tree]\ndatabase: {dsn: a.db}\nlog: {format: xml}\n"},
		{"bad living mode", "project: test\nversion: 1\nsources: [./tree]\ndatabase: {dsn: a.db}\nview:\n  living: {mode: everyone}\n"},
		{"negative years", "project: test\nversion: 1\nsources: [./tree]\ndatabase: {dsn: a.db}\nview:\n  living: {mode: exclude-all, years_after_death: -1}\n"},
		{"bad referenced", "project: test\nversion: 1\nsources: [./tree]\ndatabase: {dsn: a.db}\nview: {referenced: some}\n"},
		{"negative cache", "project: test\nversion: 1\nsources: [./tree]\ndatabase: {dsn: a.db}\nview: {cache_size: -1}\n"},
		{"s3 without bucket", "project: test\nversion: 1\nsources: [./tree]\ndatabase: {dsn: a.db}\nexport:\n  s3: {region: eu-west-1}\n"},
		{"invalid yaml", "project: [\n"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempConfig(t, tt.contents)
			if _, err := LoadProjectConfig(path); err == nil {
				t.Fatalf("expected error")
			}
		})
	}

	t.Run("file not found", func(t *testing.T) {
		if _, err := LoadProjectConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}
	return path
}
