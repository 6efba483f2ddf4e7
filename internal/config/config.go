package config

import (
	"os"
	"strconv"
	"strings"

	"structdetect/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Detection DetectionConfig
	Upload    UploadConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DatabaseConfig holds database connection settings.
// An empty URL selects the in-memory history store.
type DatabaseConfig struct {
	URL string
}

// DetectionConfig holds detection service settings
type DetectionConfig struct {
	PreviewRows       int
	MaxInputBytes     int
	BatchConcurrency  int
	MaxBatchSize      int
	HistoryEnabled    bool
	HistoryCapacity   int
	ProfileSampleSize int
}

// UploadConfig holds file upload settings
type UploadConfig struct {
	MaxFileBytes int64
	Sheet        string
}

// Enabled reports whether a database URL was configured
func (d DatabaseConfig) Enabled() bool {
	return strings.TrimSpace(d.URL) != ""
}

// DefaultDetectionConfig returns sensible defaults
func DefaultDetectionConfig() DetectionConfig {
	return DetectionConfig{
		PreviewRows:       5,
		MaxInputBytes:     1 << 20,
		BatchConcurrency:  4,
		MaxBatchSize:      50,
		HistoryEnabled:    true,
		HistoryCapacity:   500,
		ProfileSampleSize: 200,
	}
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	defaults := DefaultDetectionConfig()

	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Detection: DetectionConfig{
			PreviewRows:       getEnvIntOrDefault("PREVIEW_ROWS", defaults.PreviewRows),
			MaxInputBytes:     getEnvIntOrDefault("MAX_INPUT_BYTES", defaults.MaxInputBytes),
			BatchConcurrency:  getEnvIntOrDefault("BATCH_CONCURRENCY", defaults.BatchConcurrency),
			MaxBatchSize:      getEnvIntOrDefault("MAX_BATCH_SIZE", defaults.MaxBatchSize),
			HistoryEnabled:    getEnvBoolOrDefault("HISTORY_ENABLED", defaults.HistoryEnabled),
			HistoryCapacity:   getEnvIntOrDefault("HISTORY_CAPACITY", defaults.HistoryCapacity),
			ProfileSampleSize: getEnvIntOrDefault("PROFILE_SAMPLE_SIZE", defaults.ProfileSampleSize),
		},
		Upload: UploadConfig{
			MaxFileBytes: int64(getEnvIntOrDefault("MAX_UPLOAD_BYTES", 10<<20)),
			Sheet:        os.Getenv("UPLOAD_SHEET"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT is required")
	}
	switch config.Server.GinMode {
	case "debug", "release", "test":
	default:
		return errors.ConfigInvalid("GIN_MODE must be debug, release or test")
	}
	d := config.Detection
	if d.PreviewRows < 1 {
		return errors.ConfigInvalid("PREVIEW_ROWS must be at least 1")
	}
	if d.MaxInputBytes < 1 {
		return errors.ConfigInvalid("MAX_INPUT_BYTES must be positive")
	}
	if d.BatchConcurrency < 1 {
		return errors.ConfigInvalid("BATCH_CONCURRENCY must be at least 1")
	}
	if d.MaxBatchSize < 1 {
		return errors.ConfigInvalid("MAX_BATCH_SIZE must be at least 1")
	}
	if d.HistoryCapacity < 1 {
		return errors.ConfigInvalid("HISTORY_CAPACITY must be at least 1")
	}
	if d.ProfileSampleSize < 1 {
		return errors.ConfigInvalid("PROFILE_SAMPLE_SIZE must be at least 1")
	}
	if config.Upload.MaxFileBytes < 1 {
		return errors.ConfigInvalid("MAX_UPLOAD_BYTES must be positive")
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

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
