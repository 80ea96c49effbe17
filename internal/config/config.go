package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	DatabaseURL    string
	Env            string
	LogLevel       string
	MaxConns       int32
	MigrateOnStart bool
	RequestTimeout time.Duration

	// EnvFileErr is why .env could not be loaded, nil when it was.
	EnvFileErr error
}

// Load reads the .env file when present and then the process environment.
func Load() *Config {
	// Load environment variables from .env file
	envFileErr := godotenv.Load()

	return &Config{
		Port:           getEnv("PORT", "8000"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		Env:            getEnv("ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		MaxConns:       int32(getEnvInt("DB_MAX_CONNS", 10)),
		MigrateOnStart: getEnvBool("MIGRATE_ON_START", true),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 5*time.Second),
		EnvFileErr:     envFileErr,
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || value < 1 {
		return fallback
	}
	return value
}

func getEnvBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return value
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
