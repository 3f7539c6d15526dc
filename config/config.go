package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Port        string
	Development bool
	LogLevel    string
	CORSOrigin  string
	Store       string

	Mongo  MongoConfig
	JWT    JWTConfig
	Gemini GeminiConfig

	// AIContextLimit is how many of the most recent transactions are embedded in AI prompts.
	AIContextLimit int
}

type MongoConfig struct {
	URI      string
	Database string
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

// Load reads configuration from the environment, loading a .env file first if one exists.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current process environment.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "5000"),
		Development: strings.EqualFold(getEnv("APP_ENV", "development"), "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigin:  getEnv("CORS_ORIGIN", "*"),
		Store:       strings.ToLower(getEnv("STORE", StoreMongo)),
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_DB_URL", ""),
			Database: getEnv("MONGO_DATABASE", "finance_tracker"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", ""),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
	}

	ttl, err := time.ParseDuration(getEnv("JWT_TTL", "24h"))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("invalid JWT_TTL %q", os.Getenv("JWT_TTL"))
	}
	cfg.JWT.TTL = ttl

	limit, err := strconv.Atoi(getEnv("AI_CONTEXT_LIMIT", "1000"))
	if err != nil || limit <= 0 {
		return nil, fmt.Errorf("invalid AI_CONTEXT_LIMIT %q", os.Getenv("AI_CONTEXT_LIMIT"))
	}
	cfg.AIContextLimit = limit

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET environment variable not set")
	}
	switch c.Store {
	case StoreMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("MONGO_DB_URL environment variable not set")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown STORE %q, want %q or %q", c.Store, StoreMongo, StoreMemory)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultVal
}
