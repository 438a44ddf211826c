package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"ledgercheck/pkg/models"
)

// GetConfigPath returns the directory holding the config file.
func GetConfigPath() string {
	// Check for environment variable first
	if configPath := os.Getenv("LEDGERCHECK_CONFIG"); configPath != "" {
		return filepath.Dir(configPath)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".ledgercheck")
}

// GetConfigFile returns the config file path.
func GetConfigFile() string {
	if configFile := os.Getenv("LEDGERCHECK_CONFIG"); configFile != "" {
		return filepath.Clean(configFile)
	}
	return filepath.Join(GetConfigPath(), "config.yaml")
}

// Load reads the config file, falling back to the defaults when it does not
// exist. Thresholds absent from the file keep their default values.
func Load() (*models.Config, error) {
	return LoadFile(GetConfigFile())
}

// LoadFile reads a specific config file.
func LoadFile(path string) (*models.Config, error) {
	config := models.Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	data, err := os.ReadFile(path) // #nosec G304 - operator-chosen config path
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

// Save writes the config to the default location.
func Save(config *models.Config) error {
	configPath := GetConfigPath()
	if err := os.MkdirAll(configPath, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(GetConfigFile(), data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
