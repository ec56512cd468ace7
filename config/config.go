// Package config has the configuration file for the app
package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Port              string
	Address           string
	Env               string
	LogLevel          string
	LogRetentionWeeks int // Number of weeks to keep log files

	DataDir string // Directory holding the source CSV files
	OutDir  string // Directory the JSON/script artifacts are written to

	ABSFile  string // ABS journal list file name inside DataDir
	CoreFile string // CORE conference export file name inside DataDir
	SJRFile  string // SCImago journal export file name inside DataDir

	// Optional download URLs; when set, the scheduled refresh fetches the
	// source into DataDir before extracting. The ABS list has no public
	// export URL and is normally dropped into DataDir by hand.
	ABSURL  string
	CoreURL string
	SJRURL  string

	RefreshAt string // Daily refresh time in HH:MM
}

// Load loads and validates configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnvWithDefault("PORT", "8000"),
		Address:           getEnvWithDefault("ADDRESS", "127.0.0.1"),
		Env:               getEnvWithDefault("ENV", "dev"),
		LogLevel:          getEnvWithDefault("LOG_LEVEL", "info"),
		LogRetentionWeeks: getIntEnvWithDefault("LOG_RETENTION_WEEKS", 4),

		DataDir: getEnvWithDefault("DATA_DIR", "data"),
		OutDir:  getEnvWithDefault("OUT_DIR", "."),

		ABSFile:  getEnvWithDefault("ABS_FILE", "ABS-2024.csv"),
		CoreFile: getEnvWithDefault("CORE_FILE", "full_CORE.csv"),
		SJRFile:  getEnvWithDefault("SJR_FILE", "scimagojr 2024.csv"),

		ABSURL:  os.Getenv("ABS_URL"),
		CoreURL: os.Getenv("CORE_URL"),
		SJRURL:  os.Getenv("SJR_URL"),

		RefreshAt: getEnvWithDefault("REFRESH_AT", "06:00"),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// ABSPath returns the full path of the ABS source file.
func (c *Config) ABSPath() string {
	return filepath.Join(c.DataDir, c.ABSFile)
}

// CorePath returns the full path of the CORE source file.
func (c *Config) CorePath() string {
	return filepath.Join(c.DataDir, c.CoreFile)
}

// SJRPath returns the full path of the SJR source file.
func (c *Config) SJRPath() string {
	return filepath.Join(c.DataDir, c.SJRFile)
}

// DownloadTargets maps source file names to their configured download URLs,
// leaving out sources without one.
func (c *Config) DownloadTargets() map[string]string {
	targets := make(map[string]string)
	if c.ABSURL != "" {
		targets[c.ABSFile] = c.ABSURL
	}
	if c.CoreURL != "" {
		targets[c.CoreFile] = c.CoreURL
	}
	if c.SJRURL != "" {
		targets[c.SJRFile] = c.SJRURL
	}
	return targets
}

// validateConfig validates all configuration values
func validateConfig(cfg *Config) error {
	if err := validatePort(cfg.Port); err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}

	if err := validateAddress(cfg.Address); err != nil {
		return fmt.Errorf("invalid ADDRESS: %w", err)
	}

	if err := validateEnv(cfg.Env); err != nil {
		return fmt.Errorf("invalid ENV: %w", err)
	}

	if err := validateLogLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	if err := validateLogRetentionWeeks(cfg.LogRetentionWeeks); err != nil {
		return fmt.Errorf("invalid LOG_RETENTION_WEEKS: %w", err)
	}

	if err := validateRefreshAt(cfg.RefreshAt); err != nil {
		return fmt.Errorf("invalid REFRESH_AT: %w", err)
	}

	for name, value := range map[string]string{
		"DATA_DIR":  cfg.DataDir,
		"OUT_DIR":   cfg.OutDir,
		"ABS_FILE":  cfg.ABSFile,
		"CORE_FILE": cfg.CoreFile,
		"SJR_FILE":  cfg.SJRFile,
	} {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s cannot be empty", name)
		}
	}

	return nil
}

// validatePort validates the PORT environment variable
func validatePort(port string) error {
	if port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}

	portNum, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("PORT must be a valid number: %w", err)
	}

	if portNum < 1 || portNum > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}

	if portNum < 1024 {
		return fmt.Errorf("PORT %d is privileged (less than 1024), use ports 1024-65535", portNum)
	}

	return nil
}

// validateAddress validates the ADDRESS environment variable
func validateAddress(address string) error {
	if address == "" {
		return fmt.Errorf("ADDRESS cannot be empty")
	}

	if address == "127.0.0.1" || address == "::1" || address == "localhost" {
		return nil
	}

	if ip := net.ParseIP(address); ip == nil {
		return fmt.Errorf("ADDRESS must be a valid IP address or 'localhost', got: %s", address)
	}

	return nil
}

// validateEnv validates the ENV environment variable
func validateEnv(env string) error {
	validEnvs := []string{"dev", "staging", "prod", "test"}
	env = strings.ToLower(env)

	for _, validEnv := range validEnvs {
		if env == validEnv {
			return nil
		}
	}

	return fmt.Errorf("ENV must be one of: %v, got: %s", validEnvs, env)
}

// validateLogLevel validates the LOG_LEVEL environment variable
func validateLogLevel(logLevel string) error {
	validLevels := []string{"debug", "info", "warn", "error"}
	logLevel = strings.ToLower(logLevel)

	for _, level := range validLevels {
		if logLevel == level {
			return nil
		}
	}

	return fmt.Errorf("LOG_LEVEL must be one of: %v, got: %s", validLevels, logLevel)
}

// validateLogRetentionWeeks validates the LOG_RETENTION_WEEKS environment variable
func validateLogRetentionWeeks(weeks int) error {
	if weeks <= 0 {
		return fmt.Errorf("LOG_RETENTION_WEEKS must be positive, got: %d", weeks)
	}

	if weeks > 52 {
		return fmt.Errorf("LOG_RETENTION_WEEKS is too large (max 52 weeks), got: %d", weeks)
	}

	return nil
}

// validateRefreshAt validates the daily refresh time
func validateRefreshAt(refreshAt string) error {
	if _, err := time.Parse("15:04", refreshAt); err != nil {
		return fmt.Errorf("REFRESH_AT must be in HH:MM format, got: %s", refreshAt)
	}
	return nil
}

// getEnvWithDefault gets an environment variable with a default value
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnvWithDefault gets an environment variable as int with a default value
func getIntEnvWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
