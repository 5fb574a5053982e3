// Package config loads the client configuration from an optional YAML
// file with environment-variable overrides on top.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory.
const FileName = "clinassist.yaml"

// Config holds all configuration for the client.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Graph   GraphConfig   `yaml:"graph"`
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig configures the backend gateway.
type APIConfig struct {
	URL                   string `yaml:"url"`
	TimeoutSeconds        int    `yaml:"timeout_seconds"`
	DefaultDomain         string `yaml:"default_domain"`
	HealthIntervalSeconds int    `yaml:"health_interval_seconds"`
}

// GraphConfig configures where generated visualization images are saved.
type GraphConfig struct {
	Dir string `yaml:"dir"`
}

// LoggingConfig configures the diagnostic log file.
type LoggingConfig struct {
	File       string `yaml:"file"`
	Level      string `yaml:"level"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			URL:                   "http://localhost:8000",
			TimeoutSeconds:        60,
			DefaultDomain:         "",
			HealthIntervalSeconds: 15,
		},
		Graph: GraphConfig{
			Dir: "graphs",
		},
		Logging: LoggingConfig{
			File:       "clinassist.log",
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// Load reads a config file, layering it over the defaults and applying
// environment overrides last.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// LoadFromDir loads FileName from dir if present, otherwise returns the
// defaults. Environment overrides apply either way.
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		cfg.applyEnv()
		return cfg, nil
	}
	return Load(path)
}

// Environment overrides, checked after any file:
//
//	CLINASSIST_API_URL   backend base URL
//	CLINASSIST_TIMEOUT   request timeout in seconds
//	CLINASSIST_DOMAIN    default domain filter
//	CLINASSIST_LOG_FILE  diagnostic log path
func (c *Config) applyEnv() {
	if v := os.Getenv("CLINASSIST_API_URL"); v != "" {
		c.API.URL = v
	}
	if v := os.Getenv("CLINASSIST_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			c.API.TimeoutSeconds = secs
		}
	}
	if v, ok := os.LookupEnv("CLINASSIST_DOMAIN"); ok {
		c.API.DefaultDomain = v
	}
	if v := os.Getenv("CLINASSIST_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
}

// Timeout returns the request timeout as a duration.
func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// HealthInterval returns the health poll period as a duration.
func (a APIConfig) HealthInterval() time.Duration {
	return time.Duration(a.HealthIntervalSeconds) * time.Second
}
