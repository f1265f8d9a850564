package config

import (
	"os"
	"strconv"

	"reprokit/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Seed     SeedConfig
	Manifest ManifestConfig
	Server   ServerConfig
}

// SeedConfig holds seed resolution settings
type SeedConfig struct {
	// Default is the seed used when none is passed explicitly (RANDOM_SEED).
	Default int64
	// Test is the seed applied once per test session (TEST_SEED,
	// falling back to Default).
	Test int64
}

// ManifestConfig holds experiment manifest storage settings
type ManifestConfig struct {
	Dir string
}

// ServerConfig holds manifest API server settings
type ServerConfig struct {
	Port string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	seedConfig, err := loadSeedConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load seed configuration")
	}

	return &Config{
		Seed: *seedConfig,
		Manifest: ManifestConfig{
			Dir: getEnvOrDefault("MANIFEST_DIR", "experiments"),
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("SERVER_PORT", "8085"),
		},
	}, nil
}

func loadSeedConfig() (*SeedConfig, error) {
	seed, err := getEnvInt64OrDefault("RANDOM_SEED", 42)
	if err != nil {
		return nil, err
	}
	testSeed, err := getEnvInt64OrDefault("TEST_SEED", seed)
	if err != nil {
		return nil, err
	}
	if seed < 0 || testSeed < 0 {
		return nil, errors.ConfigInvalid("seeds must be non-negative")
	}
	return &SeedConfig{Default: seed, Test: testSeed}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, errors.ConfigInvalid(key + " must be an integer, got " + value)
	}
	return parsed, nil
}
