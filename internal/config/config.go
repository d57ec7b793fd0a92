package config

import (
	"os"
	"strconv"

	"vansdash/internal/errors"
)

// DefaultWorkbook is the bundled survey workbook served when the user
// picks the included data source.
const DefaultWorkbook = "Vans data for dashboard.xlsx"

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Paths  PathConfig
	Auth   AuthConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// PathConfig holds file system paths
type PathConfig struct {
	// ExcelFile is the default workbook; overridable for deployments
	// that ship a different dataset.
	ExcelFile string
	// ArtifactDir is where the pivot widget's markup artifact is
	// written and read back. Empty means the OS temp dir.
	ArtifactDir string
}

// AuthConfig holds the optional shared-password gate. An empty
// password disables the gate entirely.
type AuthConfig struct {
	Password string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		Paths: PathConfig{
			ExcelFile:   getEnvOrDefault("EXCEL_FILE", DefaultWorkbook),
			ArtifactDir: getEnvOrDefault("ARTIFACT_DIR", ""),
		},
		Auth: AuthConfig{
			Password: os.Getenv("DASH_PASSWORD"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if _, err := strconv.Atoi(config.Server.Port); err != nil {
		return errors.ConfigInvalid("server port must be numeric")
	}
	if config.Paths.ExcelFile == "" {
		return errors.ConfigInvalid("default workbook path is required")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
