// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// Default settings
	Defaults struct {
		Format  string `yaml:"format"`
		Verbose bool   `yaml:"verbose"`
		Debug   bool   `yaml:"debug"`
		NoColor bool   `yaml:"no_color"`
	} `yaml:"defaults"`

	// External table detectors, tried in listed order after any
	// caller-supplied candidate tables and before the text heuristic.
	Detectors []DetectorConfig `yaml:"detectors"`

	// Profiles for different analysis scenarios
	Profiles map[string]Profile `yaml:"profiles"`
}

// DetectorConfig describes one external table-detector command.
type DetectorConfig struct {
	Command        string   `yaml:"command"`
	Args           []string `yaml:"args"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`
}

// Timeout returns the configured timeout with a 30s default.
func (d DetectorConfig) Timeout() time.Duration {
	if d.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(d.TimeoutSeconds) * time.Second
}

// Profile represents an analysis profile with specific settings
type Profile struct {
	Format      string           `yaml:"format"`
	Verbose     bool             `yaml:"verbose"`
	Debug       bool             `yaml:"debug"`
	NoColor     bool             `yaml:"no_color"`
	Description string           `yaml:"description"`
	Detectors   []DetectorConfig `yaml:"detectors"`
}

// LoadConfig loads configuration from the specified file path. An empty
// path returns the built-in defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{
		Profiles: make(map[string]Profile),
	}
	config.Defaults.Format = "text"

	if configPath == "" {
		return config, nil
	}

	cleanPath := filepath.Clean(configPath)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if config.Defaults.Format == "" {
		config.Defaults.Format = "text"
	}

	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// LoadConfigOrDefault loads the given config file, falling back to the
// built-in defaults on any error.
func LoadConfigOrDefault(configFile string) *Config {
	configPath := configFile
	if configPath == "" {
		configPath = FindConfigFile()
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Error loading config file: %v\n", err)
		fmt.Fprintf(os.Stderr, "Using default configuration\n")
		cfg, _ = LoadConfig("")
	}
	return cfg
}

// FindConfigFile looks for a configuration file in standard locations
func FindConfigFile() string {
	candidates := []string{
		"config.yaml",
		"holdings-scan.yaml",
		"holdings-scan.yml",
		".holdings-scan.yaml",
		".holdings-scan.yml",
	}
	for _, c := range candidates {
		if fileExists(c) {
			return c
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		homeConfig := filepath.Join(home, ".holdings-scan", "config.yaml")
		if fileExists(homeConfig) {
			return homeConfig
		}
	}

	return ""
}

func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// ListProfiles returns the names of all configured profiles
func (c *Config) ListProfiles() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	return names
}

// GetProfile returns the named profile, or nil when it does not exist
func (c *Config) GetProfile(name string) *Profile {
	if profile, exists := c.Profiles[name]; exists {
		return &profile
	}
	return nil
}

// ValidateConfig checks the configuration for inconsistencies.
func ValidateConfig(config *Config) error {
	for i, d := range config.Detectors {
		if d.Command == "" {
			return fmt.Errorf("detector %d: command must not be empty", i)
		}
		if d.TimeoutSeconds < 0 {
			return fmt.Errorf("detector %d: timeout_seconds must not be negative", i)
		}
	}
	for name, profile := range config.Profiles {
		for i, d := range profile.Detectors {
			if d.Command == "" {
				return fmt.Errorf("profile %q detector %d: command must not be empty", name, i)
			}
		}
	}
	return nil
}
