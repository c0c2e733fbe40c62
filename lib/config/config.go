// Copyright 2026 The Chatwright Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for Chatwright
// commands.
//
// Configuration is loaded from a single file specified by:
//   - CHATWRIGHT_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There are no fallbacks or automatic discovery. This ensures
// deterministic, auditable configuration with no hidden overrides.
//
// The config file may contain environment-specific sections
// (development, staging, production) that override base values when
// the environment matches.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local development machines.
	Development Environment = "development"
	// Staging is for pre-production testing.
	Staging Environment = "staging"
	// Production is for production deployments.
	Production Environment = "production"
)

// Config is the master configuration for Chatwright commands.
type Config struct {
	// Environment identifies the deployment type (development,
	// staging, production).
	Environment Environment `yaml:"environment"`

	// API configures the console API connection.
	API APIConfig `yaml:"api"`

	// Drafts configures local draft autosave.
	Drafts DraftsConfig `yaml:"drafts"`

	// EnvironmentOverrides contains per-environment overrides.
	// These are applied after the base config is loaded.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Staging     *ConfigOverrides `yaml:"staging,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	API    *APIConfig    `yaml:"api,omitempty"`
	Drafts *DraftsConfig `yaml:"drafts,omitempty"`
}

// APIConfig configures the console API connection.
type APIConfig struct {
	// BaseURL is the console API root, e.g. http://localhost:8900.
	BaseURL string `yaml:"base_url"`

	// Token is the bearer token for API requests. Empty disables the
	// Authorization header (local development servers).
	Token string `yaml:"token"`

	// RequestTimeout bounds each schema/document/save request, as a
	// Go duration string. Default: 15s.
	RequestTimeout string `yaml:"request_timeout"`
}

// DraftsConfig configures local draft autosave.
type DraftsConfig struct {
	// Dir is where in-progress document drafts are written. Default:
	// ~/.cache/chatwright/drafts.
	Dir string `yaml:"dir"`

	// Disabled turns autosave off entirely.
	Disabled bool `yaml:"disabled"`
}

// Default returns the default configuration. These defaults are used
// as a base before loading the config file. They exist primarily to
// ensure all fields have sensible zero-values, not as a fallback -
// the config file is required.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Environment: Development,
		API: APIConfig{
			BaseURL:        "http://localhost:8900",
			RequestTimeout: "15s",
		},
		Drafts: DraftsConfig{
			Dir: filepath.Join(homeDir, ".cache", "chatwright", "drafts"),
		},
	}
}

// Load loads configuration from the CHATWRIGHT_CONFIG environment
// variable.
//
// This is the only way to load configuration without an explicit
// path. There are no fallbacks - if CHATWRIGHT_CONFIG is not set,
// this fails.
func Load() (*Config, error) {
	configPath := os.Getenv("CHATWRIGHT_CONFIG")
	if configPath == "" {
		return nil, fmt.Errorf("CHATWRIGHT_CONFIG environment variable not set; " +
			"set it to the path of your chatwright.yaml config file, or use --config flag")
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path.
//
// The config file is the single source of truth. Environment
// variables do not override config values.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.applyEnvironmentOverrides()

	return cfg, nil
}

// Timeout parses the configured request timeout, falling back to the
// default when the value is empty or malformed.
func (a APIConfig) Timeout() time.Duration {
	parsed, err := time.ParseDuration(a.RequestTimeout)
	if err != nil || parsed <= 0 {
		return 15 * time.Second
	}
	return parsed
}

// applyEnvironmentOverrides applies the environment-specific overrides.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
	}

	if overrides == nil {
		return
	}

	if overrides.API != nil {
		if overrides.API.BaseURL != "" {
			c.API.BaseURL = overrides.API.BaseURL
		}
		if overrides.API.Token != "" {
			c.API.Token = overrides.API.Token
		}
		if overrides.API.RequestTimeout != "" {
			c.API.RequestTimeout = overrides.API.RequestTimeout
		}
	}

	if overrides.Drafts != nil {
		if overrides.Drafts.Dir != "" {
			c.Drafts.Dir = overrides.Drafts.Dir
		}
		// Disabled is a bool, so it always applies from overrides.
		c.Drafts.Disabled = overrides.Drafts.Disabled
	}
}
