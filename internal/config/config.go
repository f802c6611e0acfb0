package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the default configuration file name.
const FileName = "ledgerfold.yaml"

// Config represents the top-level ledgerfold.yaml configuration.
type Config struct {
	Separator string       `yaml:"separator"`
	Filters   []string     `yaml:"filters"`
	Backup    BackupConfig `yaml:"backup"`
	Sheets    SheetsConfig `yaml:"sheets"`
}

// BackupConfig controls the dated backup of inputs and snapshot.
type BackupConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"` // parent of the dated backup directories
}

// SheetsConfig controls the spreadsheet upload.
type SheetsConfig struct {
	Enabled         bool   `yaml:"enabled"`
	SpreadsheetID   string `yaml:"spreadsheet_id"`
	Sheet           string `yaml:"sheet"`
	CredentialsFile string `yaml:"credentials_file"`
}

// DefaultFilters are the known card-payment descriptions that
// double-count against itemized purchases. Matched case-insensitively.
var DefaultFilters = []string{
	"ONLINE PAYMENT - THANK YOU",
	"PAYMENT - THANK YOU",
	"Payment Thank You - Web",
	"Payment Thank You-Mobile",
	"PAYMENT RECEIVED - THANK YOU",
	"PAYMENT THANK YOU",
	"ONLINE PAYMENT, THANK YOU",
	"ONLINE PAYMENT THANK YOU",
	"INTERNET PAYMENT THANK YOU",
	"Payment Received",
	"Topped up balance",
	"MOBILE PAYMENT - THANK YOU",
}

// Load reads a ledgerfold.yaml file from disk.
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

// Default returns a Config with the standard noise filters and upload
// enabled, matching the historical CLI defaults.
func Default() *Config {
	filters := make([]string, len(DefaultFilters))
	copy(filters, DefaultFilters)
	return &Config{
		Separator: ",",
		Filters:   filters,
		Backup: BackupConfig{
			Enabled: true,
			Dir:     ".",
		},
		Sheets: SheetsConfig{
			Enabled:         true,
			Sheet:           "upload",
			CredentialsFile: "gdrive.json",
		},
	}
}
