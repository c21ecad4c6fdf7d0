package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Input/output settings
	InputPath    string
	OutputPath   string
	URLColumn    string
	StatusColumn string

	// Check settings
	Workers int
	Timeout time.Duration
	Retries int
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		URLColumn:    "IMAGE_URLS",
		StatusColumn: "IMAGE_STATUS",
		Workers:      24,
		Timeout:      10 * time.Second,
		Retries:      2,
	}
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() {
	if column := os.Getenv("IMGCHECK_COLUMN"); column != "" {
		c.URLColumn = column
	}

	if column := os.Getenv("IMGCHECK_STATUS_COLUMN"); column != "" {
		c.StatusColumn = column
	}

	if workers := os.Getenv("IMGCHECK_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil {
			c.Workers = w
		}
	}

	if timeout := os.Getenv("IMGCHECK_TIMEOUT"); timeout != "" {
		if t, err := strconv.Atoi(timeout); err == nil {
			c.Timeout = time.Duration(t) * time.Second
		}
	}

	if retries := os.Getenv("IMGCHECK_RETRIES"); retries != "" {
		if r, err := strconv.Atoi(retries); err == nil {
			c.Retries = r
		}
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return fmt.Errorf("input path cannot be empty")
	}

	if c.OutputPath == "" {
		return fmt.Errorf("output path cannot be empty")
	}

	if c.URLColumn == "" {
		return fmt.Errorf("URL column name cannot be empty")
	}

	if c.Workers <= 0 {
		return fmt.Errorf("worker count must be positive, got: %d", c.Workers)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got: %s", c.Timeout)
	}

	if c.Retries < 0 {
		return fmt.Errorf("retries must be non-negative, got: %d", c.Retries)
	}

	return nil
}
