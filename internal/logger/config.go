package logger

import (
	"io"
	"os"
	"strconv"
)

// Config holds logger configuration.
type Config struct {
	Level       string    // debug, info, warn, error
	Format      string    // json, text
	Output      io.Writer // explicit destination, overrides file settings
	ServiceName string

	// Environment selects the output: "local" logs to stdout only,
	// anything else also writes the rotating File.
	Environment string
	File        string
	FileOnly    bool

	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Level:       "info",
		Format:      "json",
		ServiceName: "photorama",
		Environment: "local",
		File:        "/var/log/photorama/app.log",
		MaxSizeMB:   100,
		MaxBackups:  7,
		MaxAgeDays:  30,
		Compress:    true,
	}
}

// ApplyEnv overrides cfg with LOG_* and APP_ENV environment variables.
// Unset or malformed variables leave the current value untouched.
func (c *Config) ApplyEnv() *Config {
	c.Level = getEnv("LOG_LEVEL", c.Level)
	c.Format = getEnv("LOG_FORMAT", c.Format)
	c.ServiceName = getEnv("SERVICE_NAME", c.ServiceName)
	c.Environment = getEnv("APP_ENV", c.Environment)
	c.File = getEnv("LOG_FILE", c.File)
	c.FileOnly = getEnvBool("LOG_FILE_ONLY", c.FileOnly)
	c.MaxSizeMB = getEnvInt("LOG_MAX_SIZE", c.MaxSizeMB)
	c.MaxBackups = getEnvInt("LOG_MAX_BACKUPS", c.MaxBackups)
	c.MaxAgeDays = getEnvInt("LOG_MAX_AGE", c.MaxAgeDays)
	c.Compress = getEnvBool("LOG_COMPRESS", c.Compress)
	return c
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}
