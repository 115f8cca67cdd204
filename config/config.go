// Package config loads run configuration for the cointax CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents one import run: where the export comes from and where
// the resulting ledger goes.
type Config struct {
	Input  InputConfig  `json:"input" yaml:"input"`
	Report ReportConfig `json:"report" yaml:"report"`
	Log    LogConfig    `json:"log" yaml:"log"`
}

// InputConfig names the export file and the exchange that produced it.
type InputConfig struct {
	File     string `json:"file" yaml:"file"`
	Exchange string `json:"exchange" yaml:"exchange"`
}

// ReportConfig selects the sink for the finished ledger.
type ReportConfig struct {
	Type         string `json:"type" yaml:"type"` // "text", "csv" or "sqlite"
	BalancesFile string `json:"balances_file,omitempty" yaml:"balances_file,omitempty"`
	HistoryFile  string `json:"history_file,omitempty" yaml:"history_file,omitempty"`
	DBPath       string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LogConfig controls pipeline logging.
type LogConfig struct {
	Level string `json:"level,omitempty" yaml:"level,omitempty"` // "debug", "info" (default), "error"
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	return &Config{
		Input:  InputConfig{Exchange: "coinbase"},
		Report: ReportConfig{Type: "text", DBPath: "./cointax.sqlite"},
		Log:    LogConfig{Level: "info"},
	}
}

// LoadFromFile loads configuration from a file (YAML or JSON; YAML is tried
// first).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Input.File == "" {
		return fmt.Errorf("input.file is required")
	}
	if c.Input.Exchange == "" {
		return fmt.Errorf("input.exchange is required")
	}

	switch c.Report.Type {
	case "text":
	case "csv":
		if c.Report.BalancesFile == "" && c.Report.HistoryFile == "" {
			return fmt.Errorf("csv report needs report.balances_file or report.history_file")
		}
	case "sqlite":
		if c.Report.DBPath == "" {
			return fmt.Errorf("report.db_path is required for sqlite report")
		}
	default:
		return fmt.Errorf("unknown report type %q", c.Report.Type)
	}

	switch c.Log.Level {
	case "", "debug", "info", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}

	return nil
}
