// Package config gathers every setting the server reads from its environment.
package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"postboard/internal/platform/db"
	"postboard/internal/platform/redis"
)

const (
	defaultPort               = ":7000"
	defaultSessionTTL         = 16 * time.Hour
	defaultMaxSessionsPerUser = 5
	defaultLoginAttempts      = 10
)

// Config is the full server configuration.
type Config struct {
	Port                   string
	LogLevel               string
	GinMode                string
	JWTSecret              string
	SessionSecret          string
	SessionTTL             time.Duration
	MaxSessionsPerUser     int
	CookieSecure           bool
	// LoginAttemptsPerMinute caps /login calls per client IP. Zero disables the cap.
	LoginAttemptsPerMinute int
	DB                     db.Config
	Redis                  redis.Config
}

// LoadFromEnv reads the configuration, applying defaults for unset values.
func LoadFromEnv() Config {
	cfg := Config{
		Port:                   os.Getenv("PORT"),
		LogLevel:               os.Getenv("LOG_LEVEL"),
		GinMode:                os.Getenv("GIN_MODE"),
		JWTSecret:              os.Getenv("JWT_SECRET"),
		SessionSecret:          os.Getenv("SESSION_SECRET"),
		SessionTTL:             defaultSessionTTL,
		MaxSessionsPerUser:     defaultMaxSessionsPerUser,
		CookieSecure:           os.Getenv("COOKIE_SECURE") == "true",
		LoginAttemptsPerMinute: defaultLoginAttempts,
		DB:                     db.LoadConfigFromEnv(),
		Redis:                  redis.LoadConfigFromEnv(),
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	} else if cfg.Port[0] != ':' {
		cfg.Port = ":" + cfg.Port
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if ttl, err := time.ParseDuration(os.Getenv("SESSION_TTL")); err == nil && ttl > 0 {
		cfg.SessionTTL = ttl
	}
	if n, err := strconv.Atoi(os.Getenv("MAX_SESSIONS_PER_USER")); err == nil && n > 0 {
		cfg.MaxSessionsPerUser = n
	}
	if n, err := strconv.Atoi(os.Getenv("LOGIN_ATTEMPTS_PER_MINUTE")); err == nil && n >= 0 {
		cfg.LoginAttemptsPerMinute = n
	}
	return cfg
}

// Validate reports settings the server cannot start without.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	if c.SessionSecret == "" {
		return errors.New("SESSION_SECRET is not set")
	}
	return nil
}
