package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// OMDb
	OMDBAPIKey  string
	OMDBBaseURL string

	// Server
	ServerPort string

	// Paths
	DatabaseFile string // $DATA_DIR/cinetrack.db
	LogFile      string // optional, empty disables file logging

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Load .env file if it exists (ignore if not found)
	_ = viper.ReadInConfig()

	viper.SetDefault("OMDB_BASE_URL", "http://www.omdbapi.com/")
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")

	dataDir := viper.GetString("DATA_DIR")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dataDir = filepath.Join(homeDir, ".config", "cinetrack")
	} else {
		absPath, err := filepath.Abs(dataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path for DATA_DIR: %w", err)
		}
		dataDir = absPath
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	config := &Config{
		OMDBAPIKey:  viper.GetString("OMDB_API_KEY"),
		OMDBBaseURL: viper.GetString("OMDB_BASE_URL"),

		ServerPort: viper.GetString("SERVER_PORT"),

		DatabaseFile: filepath.Join(dataDir, "cinetrack.db"),
		LogFile:      viper.GetString("LOG_FILE"),

		LogLevel: viper.GetString("LOG_LEVEL"),
	}

	if config.OMDBAPIKey == "" {
		return nil, fmt.Errorf("OMDB_API_KEY is required")
	}

	return config, nil
}
