package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Output formats accepted by Config.Format.
const (
	FormatPlain = "plain"
	FormatTable = "table"
	FormatJSON  = "json"
)

// LogConfig controls the CLI logger
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`  // logrus level name (default: info)
	Format string `yaml:"format,omitempty"` // "text" or "json" (default: text)
}

// CacheConfig selects a result cache
type CacheConfig struct {
	DSN       string        `yaml:"dsn,omitempty"`       // "memory" or redis:// URL; empty disables caching
	Namespace string        `yaml:"namespace,omitempty"` // Redis key namespace (default: joltage)
	TTL       time.Duration `yaml:"ttl,omitempty"`       // Redis entry expiry, 0 = never
}

// MetricsConfig controls the Prometheus textfile dump
type MetricsConfig struct {
	File string `yaml:"file,omitempty"` // path of the .prom file; empty disables metrics
}

// Config represents joltage.yaml
type Config struct {
	Version       string        `yaml:"version"`
	Part          int           `yaml:"part,omitempty"`           // 1 = indicator, 2 = joltage (default)
	Workers       int           `yaml:"workers,omitempty"`        // 0 = GOMAXPROCS
	MaxCandidates int           `yaml:"max_candidates,omitempty"` // 0 = unlimited
	Format        string        `yaml:"format,omitempty"`         // plain, table or json
	Log           LogConfig     `yaml:"log,omitempty"`
	Cache         CacheConfig   `yaml:"cache,omitempty"`
	Metrics       MetricsConfig `yaml:"metrics,omitempty"`
}

// Default returns the configuration used without a config file.
func Default() *Config {
	c := &Config{Version: "1.0"}
	c.applyDefaults()

	return c
}

func (c *Config) applyDefaults() {
	if c.Part == 0 {
		c.Part = 2
	}
	if c.Format == "" {
		c.Format = FormatPlain
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Cache.Namespace == "" {
		c.Cache.Namespace = "joltage"
	}
}

// Validate applies defaults and checks every field
func (c *Config) Validate() error {
	if c.Version != "1.0" {
		return fmt.Errorf("unsupported version: %s (expected: 1.0)", c.Version)
	}
	c.applyDefaults()

	if c.Part != 1 && c.Part != 2 {
		return fmt.Errorf("part must be 1 or 2, got %d", c.Part)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0 (0 = GOMAXPROCS), got %d", c.Workers)
	}
	if c.MaxCandidates < 0 {
		return fmt.Errorf("max_candidates must be >= 0 (0 = unlimited), got %d", c.MaxCandidates)
	}
	switch c.Format {
	case FormatPlain, FormatTable, FormatJSON:
	default:
		return fmt.Errorf("unknown format '%s' (valid: plain, table, json)", c.Format)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format '%s' (valid: text, json)", c.Log.Format)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must be >= 0, got %s", c.Cache.TTL)
	}

	return nil
}

// Load reads and validates joltage.yaml from the specified path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}
