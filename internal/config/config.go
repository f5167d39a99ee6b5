// Package config содержит загрузку и валидацию конфигурации.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config представляет конфигурацию загрузки
type Config struct {
	// Database
	Database DatabaseConfig

	// Data
	SongDataDir string
	LogDataDir  string

	// Load
	Timezone        string
	ContinueOnError bool
	SongWorkers     int

	// Logging
	LogLevel string
	LogPath  string

	// App Data Directory
	AppDataDir string

	// Metrics
	MetricsTextfile string
}

// DatabaseConfig параметры подключения к PostgreSQL.
// DSN имеет приоритет над отдельными полями.
type DatabaseConfig struct {
	DSN             string
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	ConnectAttempts int
	ConnectDelay    time.Duration
}

// Load загружает конфигурацию из переменных окружения.
// Проверка выполняется отдельно через Validate, после того как флаги командной строки применены.
func Load() (*Config, error) {
	// .env необязателен, переменные берутся из окружения
	_ = godotenv.Load()

	config := &Config{
		Database: DatabaseConfig{
			DSN:             getEnv("DB_DSN", ""),
			Host:            getEnv("DB_HOST", "127.0.0.1"),
			Port:            getEnvInt("DB_PORT", 5432),
			Name:            getEnv("DB_NAME", "sparkifydb"),
			User:            getEnv("DB_USER", "student"),
			Password:        getEnv("DB_PASSWORD", "student"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			ConnectAttempts: getEnvInt("DB_CONNECT_ATTEMPTS", 1),
			ConnectDelay:    getEnvDuration("DB_CONNECT_DELAY", 5*time.Second),
		},
		SongDataDir:     getEnv("SONG_DATA_DIR", "data/song_data"),
		LogDataDir:      getEnv("LOG_DATA_DIR", "data/log_data"),
		Timezone:        getEnv("TIMEZONE", "UTC"),
		ContinueOnError: getEnvBool("CONTINUE_ON_ERROR", false),
		SongWorkers:     getEnvInt("SONG_WORKERS", 1),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogPath:         getEnv("LOG_PATH", ""),
		AppDataDir:      getEnv("APP_DATA_DIR", ""),
		MetricsTextfile: getEnv("METRICS_TEXTFILE", ""),
	}

	return config, nil
}

// Validate проверяет конфигурацию
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		if c.Database.Host == "" {
			return fmt.Errorf("DB_HOST is required when DB_DSN is not set")
		}
		if c.Database.Name == "" {
			return fmt.Errorf("DB_NAME is required when DB_DSN is not set")
		}
		if c.Database.Port <= 0 || c.Database.Port > 65535 {
			return fmt.Errorf("DB_PORT must be between 1 and 65535, got %d", c.Database.Port)
		}
	}

	if c.SongDataDir == "" {
		return fmt.Errorf("SONG_DATA_DIR is required")
	}

	if c.LogDataDir == "" {
		return fmt.Errorf("LOG_DATA_DIR is required")
	}

	if c.SongWorkers < 1 {
		return fmt.Errorf("SONG_WORKERS must be at least 1, got %d", c.SongWorkers)
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}

	return nil
}

// Location возвращает зону для интерпретации меток времени журнала
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// DatabaseURL возвращает строку подключения к PostgreSQL
func (c *Config) DatabaseURL() string {
	return c.Database.URL()
}

// URL собирает DSN из отдельных полей, если DSN не задан явно
func (d DatabaseConfig) URL() string {
	if d.DSN != "" {
		return d.DSN
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   "/" + d.Name,
	}
	if d.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": []string{d.SSLMode}}.Encode()
	}
	return u.String()
}

// getEnv получает переменную окружения с значением по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает переменную окружения как int
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvDuration получает переменную окружения как time.Duration
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getEnvBool получает переменную окружения как bool
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
