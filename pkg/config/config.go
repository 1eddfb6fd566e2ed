// Package config loads analyzer configuration from a YAML file, with
// sane defaults for everything but the dataset source.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the top-level analyzer configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Dataset  DatasetConfig  `yaml:"dataset"`
	Analysis AnalysisConfig `yaml:"analysis"`
	LogLevel string         `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// Duration wraps time.Duration so YAML values like "15s" parse.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Listen          string   `yaml:"listen"`
	ReadTimeout     Duration `yaml:"read_timeout"`
	WriteTimeout    Duration `yaml:"write_timeout"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
}

// DatasetConfig selects where the infrastructure graph is loaded from.
type DatasetConfig struct {
	Source string `yaml:"source" validate:"required,oneof=file postgres s3"`

	// file source
	Path string `yaml:"path"`

	// postgres source
	DatabaseURL string `yaml:"database_url"`

	// s3 source
	Bucket string `yaml:"bucket"`
	Key    string `yaml:"key"`
	Region string `yaml:"region"`
}

// AnalysisConfig tunes analysis output sizes.
type AnalysisConfig struct {
	ChainLimit  int `yaml:"chain_limit" validate:"omitempty,min=1"`
	TopCritical int `yaml:"top_critical" validate:"omitempty,min=1"`
}

var validate = validator.New()

// Default returns a configuration with all defaults applied and a file
// dataset source pointing at the given path.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Listen:          ":8080",
			ReadTimeout:     Duration(15 * time.Second),
			WriteTimeout:    Duration(30 * time.Second),
			ShutdownTimeout: Duration(10 * time.Second),
		},
		Dataset: DatasetConfig{
			Source: "file",
			Path:   "infrastructure.json",
		},
		Analysis: AnalysisConfig{
			ChainLimit:  10,
			TopCritical: 5,
		},
		LogLevel: "info",
	}
}

// Load reads and validates a YAML configuration file. Unset fields keep
// their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	d := Default()
	if c.Server.Listen == "" {
		c.Server.Listen = d.Server.Listen
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = d.Server.ReadTimeout
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = d.Server.WriteTimeout
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = d.Server.ShutdownTimeout
	}
	if c.Analysis.ChainLimit == 0 {
		c.Analysis.ChainLimit = d.Analysis.ChainLimit
	}
	if c.Analysis.TopCritical == 0 {
		c.Analysis.TopCritical = d.Analysis.TopCritical
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
}

// Validate checks structural constraints plus the per-source required
// fields that struct tags cannot express.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	switch c.Dataset.Source {
	case "file":
		if c.Dataset.Path == "" {
			return fmt.Errorf("invalid config: dataset.path is required for file source")
		}
	case "postgres":
		if c.Dataset.DatabaseURL == "" {
			return fmt.Errorf("invalid config: dataset.database_url is required for postgres source")
		}
	case "s3":
		if c.Dataset.Bucket == "" || c.Dataset.Key == "" {
			return fmt.Errorf("invalid config: dataset.bucket and dataset.key are required for s3 source")
		}
	}
	return nil
}
