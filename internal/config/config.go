package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level grana.yaml configuration.
type Config struct {
	Profile  ProfileConfig  `yaml:"profile"`
	Accounts AccountsConfig `yaml:"accounts"`
	Rules    RulesConfig    `yaml:"rules"`
	Database DatabaseConfig `yaml:"database"`
	Wedding  WeddingConfig  `yaml:"wedding"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ProfileConfig identifies the data directory owner.
type ProfileConfig struct {
	Name string `yaml:"name"`
}

// AccountsConfig holds the default account routing for imports.
type AccountsConfig struct {
	Default int `yaml:"default"` // account for statement imports
	Card    int `yaml:"card"`    // account whose invoices scope card imports
}

// RulesConfig locates the mapping-rules file, relative to the data dir.
type RulesConfig struct {
	Path string `yaml:"path"`
}

// DatabaseConfig locates the sqlite database, relative to the data dir.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// WeddingConfig toggles the wedding-expense tagging prompt.
type WeddingConfig struct {
	Enabled bool `yaml:"enabled"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads a grana.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new data directory.
func Default(profileName string) *Config {
	return &Config{
		Profile: ProfileConfig{
			Name: profileName,
		},
		Accounts: AccountsConfig{
			Default: 1,
			Card:    2,
		},
		Rules: RulesConfig{
			Path: "rules/mapping-rules.yaml",
		},
		Database: DatabaseConfig{
			Path: "grana.db",
		},
		Wedding: WeddingConfig{
			Enabled: false,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
