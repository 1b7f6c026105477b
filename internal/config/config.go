package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"kinview/internal/proxy"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	ReferencedAll       = "all"
	ReferencedConnected = "connected"
)

type ProjectConfig struct {
	Project  string         `yaml:"project"`
	Version  int            `yaml:"version"`
	Sources  []string       `yaml:"sources"`
	Exclude  []string       `yaml:"exclude"`
	Database DatabaseConfig `yaml:"database"`
	Language string         `yaml:"language"`
	Log      LogConfig      `yaml:"log"`
	View     ViewConfig     `yaml:"view"`
	Export   ExportConfig   `yaml:"export"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ViewConfig selects the proxies stacked over the stored tree. They are
// applied in the order private, living, filter, referenced.
type ViewConfig struct {
	Private    bool        `yaml:"private"`
	Living     *LivingView `yaml:"living"`
	Filter     *FilterView `yaml:"filter"`
	Referenced string      `yaml:"referenced"`
	CacheSize  int         `yaml:"cache_size"`
	Collation  string      `yaml:"collation"`
}

type LivingView struct {
	Mode            string `yaml:"mode"`
	CurrentYear     int    `yaml:"current_year"`
	YearsAfterDeath int    `yaml:"years_after_death"`
	Text            string `yaml:"text"`
}

// FilterView lists the gramps ids kept by the filter proxy. An empty list
// leaves that kind unfiltered.
type FilterView struct {
	People []string `yaml:"people"`
	Events []string `yaml:"events"`
	Notes  []string `yaml:"notes"`
}

type ExportConfig struct {
	Dir string    `yaml:"dir"`
	S3  *S3Config `yaml:"s3"`
}

type S3Config struct {
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	PathStyle bool   `yaml:"path_style"`
}

func LoadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	applyDefaults(&cfg)
	if err := validateProjectConfig(&cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *ProjectConfig) {
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = DriverSQLite
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

func validateProjectConfig(cfg *ProjectConfig) error {
	if strings.TrimSpace(cfg.Project) == "" {
		return fmt.Errorf("project name is required")
	}
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported version: %d", cfg.Version)
	}
	if len(cfg.Sources) == 0 {
		return fmt.Errorf("at least one source path is required")
	}
	for i, src := range cfg.Sources {
		if strings.TrimSpace(src) == "" {
			return fmt.Errorf("source %d is empty", i)
		}
	}

	switch cfg.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return fmt.Errorf("database dsn is required")
	}

	if _, err := logrus.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if cfg.Log.Format != "text" && cfg.Log.Format != "json" {
		return fmt.Errorf("unsupported log format: %s", cfg.Log.Format)
	}

	if err := validateView(&cfg.View); err != nil {
		return err
	}

	if s3 := cfg.Export.S3; s3 != nil && strings.TrimSpace(s3.Bucket) == "" {
		return fmt.Errorf("export s3 bucket is required")
	}
	return nil
}

func validateView(v *ViewConfig) error {
	if v.Living != nil {
		if _, err := proxy.ParseLivingMode(v.Living.Mode); err != nil {
			return fmt.Errorf("view living: %w", err)
		}
		if v.Living.CurrentYear < 0 || v.Living.YearsAfterDeath < 0 {
			return fmt.Errorf("view living years must not be negative")
		}
	}
	switch v.Referenced {
	case "", ReferencedAll, ReferencedConnected:
	default:
		return fmt.Errorf("view referenced must be %q or %q, got %q", ReferencedAll, ReferencedConnected, v.Referenced)
	}
	if v.CacheSize < 0 {
		return fmt.Errorf("view cache size must not be negative")
	}
	return nil
}
