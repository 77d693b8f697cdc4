package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultLibreTranslateURL = "https://libretranslate.de/translate"
	defaultMyMemoryURL       = "https://api.mymemory.translated.net/get"
)

// Config holds all application configuration
type Config struct {
	BotToken      string
	BotPassword   string
	Database      DatabaseConfig
	Translate     TranslateConfig
	WordLimit     int
	RetentionDays int
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// TranslateConfig holds translation provider settings
type TranslateConfig struct {
	LibreTranslateURL    string
	LibreTranslateAPIKey string
	MyMemoryURL          string
	MyMemoryEmail        string
	Timeout              time.Duration
	RPS                  float64
	Concurrency          int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:    os.Getenv("BOT_TOKEN"),
		BotPassword: os.Getenv("BOT_PASSWORD"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "vokabel"),
			User:     getEnv("DB_USER", "vokabel"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		Translate: TranslateConfig{
			LibreTranslateURL:    getEnv("LIBRETRANSLATE_URL", defaultLibreTranslateURL),
			LibreTranslateAPIKey: os.Getenv("LIBRETRANSLATE_API_KEY"),
			MyMemoryURL:          getEnv("MYMEMORY_URL", defaultMyMemoryURL),
			MyMemoryEmail:        os.Getenv("MYMEMORY_EMAIL"),
		},
	}

	// Validate required fields
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.BotPassword == "" {
		return nil, fmt.Errorf("BOT_PASSWORD is required")
	}
	if cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}

	var err error
	if cfg.Translate.Timeout, err = getDuration("TRANSLATE_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.Translate.RPS, err = getFloat("TRANSLATE_RPS", 0); err != nil {
		return nil, err
	}
	if cfg.Translate.Concurrency, err = getInt("TRANSLATE_CONCURRENCY", 1); err != nil {
		return nil, err
	}
	if cfg.WordLimit, err = getInt("WORD_LIMIT", 50); err != nil {
		return nil, err
	}
	if cfg.RetentionDays, err = getInt("RETENTION_DAYS", 60); err != nil {
		return nil, err
	}

	if cfg.Translate.Concurrency < 1 {
		return nil, fmt.Errorf("TRANSLATE_CONCURRENCY must be at least 1")
	}
	if cfg.WordLimit < 1 {
		return nil, fmt.Errorf("WORD_LIMIT must be at least 1")
	}
	if cfg.RetentionDays < 1 {
		return nil, fmt.Errorf("RETENTION_DAYS must be at least 1")
	}

	return cfg, nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
