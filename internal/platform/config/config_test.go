package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "LOG_LEVEL", "SESSION_TTL", "MAX_SESSIONS_PER_USER", "COOKIE_SECURE", "DB_DRIVER", "LOGIN_ATTEMPTS_PER_MINUTE"} {
		t.Setenv(key, "")
	}

	cfg := LoadFromEnv()

	assert.Equal(t, ":7000", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 16*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 5, cfg.MaxSessionsPerUser)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, 10, cfg.LoginAttemptsPerMinute)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("MAX_SESSIONS_PER_USER", "2")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("JWT_SECRET", "jwt")
	t.Setenv("SESSION_SECRET", "cookie")
	t.Setenv("REDIS_HOST", "redis")
	t.Setenv("LOGIN_ATTEMPTS_PER_MINUTE", "0")

	cfg := LoadFromEnv()

	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 2, cfg.MaxSessionsPerUser)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, "jwt", cfg.JWTSecret)
	assert.Equal(t, "cookie", cfg.SessionSecret)
	assert.Equal(t, "redis", cfg.Redis.Host)
	assert.Equal(t, 0, cfg.LoginAttemptsPerMinute)
}

func TestLoadFromEnv_InvalidValuesKeepDefaults(t *testing.T) {
	t.Setenv("SESSION_TTL", "forever")
	t.Setenv("MAX_SESSIONS_PER_USER", "-3")
	t.Setenv("LOGIN_ATTEMPTS_PER_MINUTE", "lots")

	cfg := LoadFromEnv()

	assert.Equal(t, 16*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 5, cfg.MaxSessionsPerUser)
	assert.Equal(t, 10, cfg.LoginAttemptsPerMinute)
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	assert.Error(t, Config{}.Validate())
	assert.Error(t, Config{JWTSecret: "x"}.Validate())
	assert.NoError(t, Config{JWTSecret: "x", SessionSecret: "y"}.Validate())
}
