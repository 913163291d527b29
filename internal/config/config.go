package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth for the HTTP API
	APIKey string

	// Anthropic runner
	AnthropicAPIKey string
	AnthropicModel  string

	// OpenAI runner
	OpenAIAPIKey string
	OpenAIModel  string

	// Local runner
	SourceDir string

	// Worker pool
	WorkerCount           int
	MaxQueueSize          int
	MaxConcurrentVariants int

	// Result output
	OutputDir string

	// Suite definition override (YAML); empty means the built-in suite
	SuitePath string

	// Upload limits for the HTTP API
	MaxRequestBytes int64

	// Job state
	JobTTL time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		APIKey: os.Getenv("EPISTRESS_API_KEY"),

		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  envOr("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),

		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:  envOr("OPENAI_MODEL", "gpt-4o"),

		SourceDir: os.Getenv("EPISTRESS_SOURCE_DIR"),

		WorkerCount:           envInt("WORKER_COUNT", 2),
		MaxQueueSize:          envInt("MAX_QUEUE_SIZE", 50),
		MaxConcurrentVariants: envInt("MAX_CONCURRENT_VARIANTS", 3),

		OutputDir: envOr("EPISTRESS_OUTPUT_DIR", "./results"),
		SuitePath: os.Getenv("EPISTRESS_SUITE"),

		MaxRequestBytes: envInt64("MAX_REQUEST_BYTES", 10485760), // 10MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 50
	}
	if cfg.MaxConcurrentVariants <= 0 {
		cfg.MaxConcurrentVariants = 3
	}
	if cfg.MaxRequestBytes <= 0 {
		cfg.MaxRequestBytes = 10485760
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

// Validate checks the configuration needed to serve the HTTP API.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("EPISTRESS_API_KEY is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
