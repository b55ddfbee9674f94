// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store driver names.
const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// Coaching modes. A session uses one mode for its whole lifetime.
const (
	ModeChat     = "chat"
	ModeWorkflow = "workflow"
)

// Config holds all application configuration.
type Config struct {
	Port        string
	StoreDriver string
	DBPath      string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SessionTTL time.Duration

	CoachMode     string
	InterviewType string

	AzureOpenAIEndpoint   string
	AzureOpenAIKey        string
	AzureOpenAIDeployment string
	GenerationTimeout     time.Duration
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		StoreDriver: getEnv("STORE_DRIVER", StoreSQLite),
		DBPath:      getEnv("DB_PATH", "./data/coach.db"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		SessionTTL: getEnvDuration("SESSION_TTL", 24*time.Hour),

		CoachMode:     getEnv("COACH_MODE", ModeChat),
		InterviewType: getEnv("INTERVIEW_TYPE", "general"),

		AzureOpenAIEndpoint:   getEnv("AZURE_OPENAI_ENDPOINT", ""),
		AzureOpenAIKey:        getEnv("AZURE_OPENAI_KEY", ""),
		AzureOpenAIDeployment: getEnv("AZURE_OPENAI_DEPLOYMENT", ""),
		GenerationTimeout:     getEnvDuration("GENERATION_TIMEOUT", 30*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	switch c.StoreDriver {
	case StoreSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("DB_PATH cannot be empty with the sqlite driver")
		}
	case StoreRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR cannot be empty with the redis driver")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("STORE_DRIVER must be one of sqlite, redis, memory")
	}
	if c.CoachMode != ModeChat && c.CoachMode != ModeWorkflow {
		return fmt.Errorf("COACH_MODE must be chat or workflow")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be > 0")
	}
	if c.GenerationTimeout <= 0 {
		return fmt.Errorf("GENERATION_TIMEOUT must be > 0")
	}
	return nil
}

// GenerationEnabled reports whether an Azure OpenAI backend is configured.
// Without one, chat mode still runs but every reply is the fallback text.
func (c *Config) GenerationEnabled() bool {
	return c.AzureOpenAIEndpoint != "" && c.AzureOpenAIKey != "" && c.AzureOpenAIDeployment != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}
