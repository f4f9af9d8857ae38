package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the flat twodo configuration
type Config struct {
	Version string `json:"version"`
	UserID  string `json:"user_id,omitempty"`  // empty means not logged in
	StoreURL string `json:"store_url,omitempty"` // remote store base URL; empty selects the local sqlite store
	DBPath  string `json:"db_path,omitempty"`  // sqlite file path; empty selects the default under the config dir

	// Optional fixed position used to stamp new tasks when no live
	// geolocation source is configured.
	PinLatitude  *float64 `json:"pin_latitude,omitempty"`
	PinLongitude *float64 `json:"pin_longitude,omitempty"`
}

// LoadConfig reads .twodo/config.json from the specified directory.
// Resolution order: cwd only (no home fallback).
// Returns error if no config found - caller should handle accordingly.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ".twodo", "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// SaveConfig writes config.json to directory
func SaveConfig(dir string, cfg *Config) error {
	twodoDir := filepath.Join(dir, ".twodo")
	if err := os.MkdirAll(twodoDir, 0755); err != nil {
		return fmt.Errorf("failed to create .twodo dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(twodoDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
