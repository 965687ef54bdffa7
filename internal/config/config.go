package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Data sources
	DataDir          string
	AlertsFile       string
	RegistryFile     string
	ConservationFile string
	FireFile         string

	// Map sampling
	MapSampleCap  int
	MapSampleSeed int64

	// Logging
	LogLevel string

	// Rate limiting for the expensive endpoints (export, chart rendering)
	RateLimitPerMinute int
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  getEnvDuration("HTTP_READ_TIMEOUT", 10*time.Second),
		WriteTimeout: getEnvDuration("HTTP_WRITE_TIMEOUT", 30*time.Second),
		IdleTimeout:  getEnvDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),

		DataDir:          getEnv("DATA_DIR", "data"),
		AlertsFile:       getEnv("ALERTS_FILE", "Alertas_Vale_Ribeira.csv"),
		RegistryFile:     getEnv("REGISTRY_FILE", "SIGEF_Vale_Ribeira.csv"),
		ConservationFile: getEnv("CONSERVATION_FILE", "cnuc.csv"),
		FireFile:         getEnv("FIRE_FILE", "Risco_Fogo.csv"),

		MapSampleCap:  getEnvInt("MAP_SAMPLE_CAP", 10000),
		MapSampleSeed: int64(getEnvInt("MAP_SAMPLE_SEED", 42)),

		LogLevel: getEnv("LOG_LEVEL", "info"),

		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
	}
}

// AlertsPath returns the alert CSV location on disk.
func (c *Config) AlertsPath() string { return filepath.Join(c.DataDir, c.AlertsFile) }

// RegistryPath returns the land-registry CSV location on disk.
func (c *Config) RegistryPath() string { return filepath.Join(c.DataDir, c.RegistryFile) }

// ConservationPath returns the conservation-unit CSV location on disk.
func (c *Config) ConservationPath() string { return filepath.Join(c.DataDir, c.ConservationFile) }

// FirePath returns the fire-risk CSV location on disk.
func (c *Config) FirePath() string { return filepath.Join(c.DataDir, c.FireFile) }

// Validate checks the configuration, accumulating every problem found.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if strings.TrimSpace(c.DataDir) == "" {
		errors = append(errors, "data directory must not be empty")
	}
	for _, f := range []string{c.AlertsFile, c.RegistryFile, c.ConservationFile, c.FireFile} {
		if strings.TrimSpace(f) == "" {
			errors = append(errors, "source file names must not be empty")
			break
		}
	}

	if c.MapSampleCap < 1 {
		errors = append(errors, fmt.Sprintf("invalid map sample cap %d: must be at least 1", c.MapSampleCap))
	}

	if c.RateLimitPerMinute < 1 {
		errors = append(errors, fmt.Sprintf("invalid rate limit %d: must be at least 1", c.RateLimitPerMinute))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
