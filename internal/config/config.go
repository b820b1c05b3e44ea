package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Lookup   LookupConfig
	History  HistoryConfig
	Postgres PostgresConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Host            string
	Port            int
	ShutdownTimeout time.Duration
}

type LookupConfig struct {
	CountryCode    string
	SearchURL      string
	UserAgent      string
	SearchTimeout  time.Duration
	FetchTimeout   time.Duration
	PlatformDelay  time.Duration
	MaxSearchHits  int
	SnippetMaxLen  int
	PageTextMaxLen int
}

type HistoryConfig struct {
	Enabled bool
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

type LoggingConfig struct {
	Level string
	File  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvInt("SERVER_PORT", 3000),
			ShutdownTimeout: time.Duration(getEnvInt("SERVER_SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Lookup: LookupConfig{
			CountryCode:    getEnv("LOOKUP_COUNTRY_CODE", "91"),
			SearchURL:      getEnv("LOOKUP_SEARCH_URL", "https://html.duckduckgo.com/html/"),
			UserAgent:      getEnv("LOOKUP_USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/115.0 Safari/537.36"),
			SearchTimeout:  time.Duration(getEnvInt("LOOKUP_SEARCH_TIMEOUT_SECONDS", 12)) * time.Second,
			FetchTimeout:   time.Duration(getEnvInt("LOOKUP_FETCH_TIMEOUT_SECONDS", 10)) * time.Second,
			PlatformDelay:  time.Duration(getEnvInt("LOOKUP_PLATFORM_DELAY_MS", 600)) * time.Millisecond,
			MaxSearchHits:  getEnvInt("LOOKUP_MAX_SEARCH_HITS", 8),
			SnippetMaxLen:  getEnvInt("LOOKUP_SNIPPET_MAX_LEN", 300),
			PageTextMaxLen: getEnvInt("LOOKUP_PAGE_TEXT_MAX_LEN", 800),
		},
		History: HistoryConfig{
			Enabled: getEnvBool("HISTORY_ENABLED", false),
		},
		Postgres: PostgresConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnvInt("POSTGRES_PORT", 5432),
			User:     getEnv("POSTGRES_USER", "lookup"),
			Password: getEnv("POSTGRES_PASSWORD", ""),
			Database: getEnv("POSTGRES_DB", "lookup"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535")
	}
	if c.Lookup.CountryCode == "" {
		return fmt.Errorf("LOOKUP_COUNTRY_CODE is required")
	}
	if strings.TrimFunc(c.Lookup.CountryCode, isDigit) != "" {
		return fmt.Errorf("LOOKUP_COUNTRY_CODE must be digits only")
	}
	if c.Lookup.SearchURL == "" {
		return fmt.Errorf("LOOKUP_SEARCH_URL is required")
	}
	if c.Lookup.MaxSearchHits <= 0 {
		return fmt.Errorf("LOOKUP_MAX_SEARCH_HITS must be positive")
	}
	if c.History.Enabled {
		if c.Postgres.Host == "" {
			return fmt.Errorf("POSTGRES_HOST is required when HISTORY_ENABLED=true")
		}
		if c.Postgres.User == "" {
			return fmt.Errorf("POSTGRES_USER is required when HISTORY_ENABLED=true")
		}
		if c.Postgres.Database == "" {
			return fmt.Errorf("POSTGRES_DB is required when HISTORY_ENABLED=true")
		}
	}
	return nil
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
