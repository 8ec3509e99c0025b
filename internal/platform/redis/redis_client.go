// Package redis builds the Redis client used for the session store.
package redis

import (
	"context"
	"errors"
	"net"
	"os"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrNotConfigured is returned when no Redis host is configured.
var ErrNotConfigured = errors.New("redis is not configured")

// Config holds Redis connection settings.
type Config struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Addr returns host:port, defaulting the port to 6379.
func (c Config) Addr() string {
	port := c.Port
	if port == "" {
		port = "6379"
	}
	return net.JoinHostPort(c.Host, port)
}

// LoadConfigFromEnv reads REDIS_HOST, REDIS_PORT, REDIS_PASSWORD and REDIS_DB.
func LoadConfigFromEnv() Config {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return Config{
		Host:     os.Getenv("REDIS_HOST"),
		Port:     os.Getenv("REDIS_PORT"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	}
}

// NewRedisClient connects and pings Redis.
// It returns ErrNotConfigured when cfg.Host is empty so callers can fall back.
func NewRedisClient(ctx context.Context, cfg Config, log logrus.FieldLogger) (*redis.Client, error) {
	if cfg.Host == "" {
		return nil, ErrNotConfigured
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.WithFields(logrus.Fields{"address": cfg.Addr(), "error": err}).Error("redis connection failed")
		_ = rdb.Close()
		return nil, err
	}

	log.WithField("address", cfg.Addr()).Info("redis connection successful")
	return rdb, nil
}
