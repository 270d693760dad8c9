package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bankfeed-dev/bankfeed/internal/dedupe"
)

// Config represents the top-level bankfeed.yaml configuration.
type Config struct {
	Business     BusinessConfig `yaml:"business"`
	BankAccounts []BankAccount  `yaml:"bank_accounts,omitempty"`
	Matching     MatchingConfig `yaml:"matching"`
	RulesFile    string         `yaml:"rules_file"`
	Storage      StorageConfig  `yaml:"storage"`
	LogLevel     string         `yaml:"log_level"`
}

// BusinessConfig identifies the business entity.
type BusinessConfig struct {
	Name string `yaml:"name"`
}

// BankAccount describes one bank feed transactions are imported into.
type BankAccount struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	LastFour string `yaml:"last_four"`
}

// MatchingConfig controls duplicate detection.
type MatchingConfig struct {
	Fuzzy          bool    `yaml:"fuzzy"`
	FuzzyThreshold float64 `yaml:"fuzzy_threshold"`
}

// StorageConfig locates the ledger database.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// Load reads a bankfeed.yaml file from disk.
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

// Default returns a Config with sensible defaults for a new project.
func Default(businessName string) *Config {
	return &Config{
		Business: BusinessConfig{Name: businessName},
		Matching: MatchingConfig{
			Fuzzy:          false,
			FuzzyThreshold: dedupe.DefaultThreshold,
		},
		RulesFile: "rules/categorization-rules.yaml",
		Storage:   StorageConfig{Path: "ledger.db"},
		LogLevel:  "info",
	}
}
