// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Validation modes.
const (
	ModeFailFast   = "fail_fast"
	ModeCollectAll = "collect_all"
)

// Unknown field policies.
const (
	UnknownIgnore = "ignore"
	UnknownReject = "reject"
)

// Config is the root configuration structure.
type Config struct {
	Validation ValidationConfig `yaml:"validation"`
	Schemas    SchemasConfig    `yaml:"schemas"`
	Logging    LoggingConfig    `yaml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// ValidationConfig configures the record validator.
type ValidationConfig struct {
	Mode          string `yaml:"mode"`           // "fail_fast" or "collect_all"
	UnknownFields string `yaml:"unknown_fields"` // "ignore" or "reject"
}

// CollectAll reports whether every field failure should be reported.
func (v ValidationConfig) CollectAll() bool {
	return v.Mode == ModeCollectAll
}

// RejectUnknown reports whether undeclared input keys are errors.
func (v ValidationConfig) RejectUnknown() bool {
	return v.UnknownFields == UnknownReject
}

// SchemasConfig configures additional schema definitions.
type SchemasConfig struct {
	// Dir holds extra YAML definitions registered next to the built-in catalog.
	Dir string `yaml:"dir,omitempty"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "console"
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"` // Dump the exposition after a run
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// LoadFromEnv creates configuration entirely from environment variables.
//
// Environment variables:
//
//	DOCSCHEMA_VALIDATION_MODE     - fail_fast or collect_all (default: fail_fast)
//	DOCSCHEMA_UNKNOWN_FIELDS      - ignore or reject (default: ignore)
//	DOCSCHEMA_SCHEMAS_DIR         - Directory of extra schema definitions
//	DOCSCHEMA_LOG_LEVEL           - Log level: debug, info, warn, error (default: info)
//	DOCSCHEMA_LOG_FORMAT          - Log format: json or console (default: console)
//	DOCSCHEMA_METRICS_ENABLED     - Dump metrics after a run (default: false)
func LoadFromEnv() (*Config, error) {
	var cfg Config

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// LoadWithFallback loads path if it exists and falls back to the environment.
// Every setting has a default, so the fallback always succeeds unless an
// environment value is invalid.
func LoadWithFallback(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return LoadFromEnv()
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	var cfg Config
	setDefaults(&cfg)
	return &cfg
}

// applyEnvOverrides applies DOCSCHEMA_* environment variables to the config.
// Environment variables always override file-based configuration.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DOCSCHEMA_VALIDATION_MODE"); v != "" {
		cfg.Validation.Mode = v
	}
	if v := os.Getenv("DOCSCHEMA_UNKNOWN_FIELDS"); v != "" {
		cfg.Validation.UnknownFields = v
	}

	if v := os.Getenv("DOCSCHEMA_SCHEMAS_DIR"); v != "" {
		cfg.Schemas.Dir = v
	}

	if v := os.Getenv("DOCSCHEMA_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("DOCSCHEMA_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}

	if v := os.Getenv("DOCSCHEMA_METRICS_ENABLED"); v != "" {
		cfg.Metrics.Enabled = parseBool(v)
	}
}

// parseBool parses a boolean from common string values.
func parseBool(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "true" || v == "1" || v == "yes" || v == "on"
}

func setDefaults(cfg *Config) {
	if cfg.Validation.Mode == "" {
		cfg.Validation.Mode = ModeFailFast
	}
	if cfg.Validation.UnknownFields == "" {
		cfg.Validation.UnknownFields = UnknownIgnore
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
}

func validate(cfg *Config) error {
	validModes := map[string]bool{ModeFailFast: true, ModeCollectAll: true}
	if !validModes[cfg.Validation.Mode] {
		return fmt.Errorf("validation.mode must be 'fail_fast' or 'collect_all', got %q", cfg.Validation.Mode)
	}

	validUnknown := map[string]bool{UnknownIgnore: true, UnknownReject: true}
	if !validUnknown[cfg.Validation.UnknownFields] {
		return fmt.Errorf("validation.unknown_fields must be 'ignore' or 'reject', got %q", cfg.Validation.UnknownFields)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}

	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("logging.format must be 'json' or 'console', got %q", cfg.Logging.Format)
	}

	if cfg.Schemas.Dir != "" {
		info, err := os.Stat(cfg.Schemas.Dir)
		if err != nil {
			return fmt.Errorf("schemas.dir: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("schemas.dir %q is not a directory", cfg.Schemas.Dir)
		}
	}

	return nil
}
