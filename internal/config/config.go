package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Request limits, enforced before the pipeline runs.
	MaxObservations int
	MaxBodyBytes    int64

	// Chart output geometry in pixels.
	ChartWidth  int
	ChartHeight int
}

// Load reads configuration from environment variables (optionally .env),
// applying defaults where unset.
func Load() (*Config, error) {
	_ = godotenv.Load() // ignore missing file

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: 10 * time.Second,
		MaxObservations: 10000,
		MaxBodyBytes:    16 << 20, // 16MB
		ChartWidth:      1000,
		ChartHeight:     500,
	}

	if s := os.Getenv("SHUTDOWN_TIMEOUT"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %q", s)
		}
		cfg.ShutdownTimeout = d
	}

	var err error
	if cfg.MaxObservations, err = intEnv("MAX_OBSERVATIONS", cfg.MaxObservations); err != nil {
		return nil, err
	}
	if cfg.ChartWidth, err = intEnv("CHART_WIDTH", cfg.ChartWidth); err != nil {
		return nil, err
	}
	if cfg.ChartHeight, err = intEnv("CHART_HEIGHT", cfg.ChartHeight); err != nil {
		return nil, err
	}

	if s := os.Getenv("MAX_BODY_BYTES"); s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid MAX_BODY_BYTES: %q", s)
		}
		cfg.MaxBodyBytes = n
	}

	return cfg, nil
}

// GetLogLevel implements observability.LoggerConfig.
func (c *Config) GetLogLevel() string { return c.LogLevel }

// GetLogFormat implements observability.LoggerConfig.
func (c *Config) GetLogFormat() string { return c.LogFormat }

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return n, nil
}
