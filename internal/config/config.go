package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Telegram
	TelegramToken string

	// Database
	PostgresDSN   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Huntoza API
	APIBaseURL string
	APITimeout time.Duration

	// Huntoza account the bot acts for
	AccountEmail    string
	AccountPassword string

	// Reminder settings
	RemindInterval       time.Duration
	MaxRemindersPerCheck int

	// Logging
	LogLevel string
}

func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		APIBaseURL:           "https://api.huntoza.com",
		APITimeout:           30 * time.Second,
		RemindInterval:       5 * time.Minute,
		MaxRemindersPerCheck: 10,
		LogLevel:             "info",
		RedisDB:              0,
	}

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required")
	}

	cfg.PostgresDSN = os.Getenv("POSTGRES_DSN")
	if cfg.PostgresDSN == "" {
		return nil, fmt.Errorf("POSTGRES_DSN is required")
	}

	cfg.AccountEmail = os.Getenv("HUNTOZA_EMAIL")
	if cfg.AccountEmail == "" {
		return nil, fmt.Errorf("HUNTOZA_EMAIL is required")
	}

	cfg.AccountPassword = os.Getenv("HUNTOZA_PASSWORD")
	if cfg.AccountPassword == "" {
		return nil, fmt.Errorf("HUNTOZA_PASSWORD is required")
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.RedisAddr = addr
	} else {
		cfg.RedisAddr = "localhost:6379"
	}

	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")

	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		db, err := strconv.Atoi(redisDB)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		cfg.RedisDB = db
	}

	if baseURL := os.Getenv("HUNTOZA_API_BASE_URL"); baseURL != "" {
		cfg.APIBaseURL = baseURL
	}

	if timeout := os.Getenv("HUNTOZA_API_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid HUNTOZA_API_TIMEOUT: %w", err)
		}
		cfg.APITimeout = d
	}

	if interval := os.Getenv("REMIND_INTERVAL"); interval != "" {
		d, err := time.ParseDuration(interval)
		if err != nil {
			return nil, fmt.Errorf("invalid REMIND_INTERVAL: %w", err)
		}
		cfg.RemindInterval = d
	}

	if maxReminders := os.Getenv("MAX_REMINDERS_PER_CHECK"); maxReminders != "" {
		n, err := strconv.Atoi(maxReminders)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_REMINDERS_PER_CHECK: %w", err)
		}
		cfg.MaxRemindersPerCheck = n
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		cfg.LogLevel = logLevel
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("telegram token is empty")
	}

	if c.PostgresDSN == "" {
		return fmt.Errorf("postgres DSN is empty")
	}

	if c.APIBaseURL == "" {
		return fmt.Errorf("API base URL is empty")
	}

	if c.RemindInterval < time.Minute {
		return fmt.Errorf("remind interval too small: %v", c.RemindInterval)
	}

	if c.MaxRemindersPerCheck < 1 || c.MaxRemindersPerCheck > 100 {
		return fmt.Errorf("max reminders per check must be between 1 and 100")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	return nil
}
