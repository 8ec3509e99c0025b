package main

import (
	"context"
	"errors"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"

	"postboard/internal/app/di"
	"postboard/internal/platform/config"
	"postboard/internal/platform/db"
	"postboard/internal/platform/logger"
	"postboard/internal/platform/redis"
)

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	cfg := config.LoadFromEnv()
	log := logger.New(os.Stdout, cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	gdb, err := db.OpenDB(cfg.DB, log, di.Models()...)
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}

	var rdb *goredis.Client
	switch client, err := redis.NewRedisClient(context.Background(), cfg.Redis, log); {
	case errors.Is(err, redis.ErrNotConfigured):
		log.Info("REDIS_HOST not set, sessions are stored in the database")
	case err != nil:
		log.WithError(err).Warn("redis unavailable, sessions are stored in the database")
	default:
		rdb = client
		defer func() {
			if err := rdb.Close(); err != nil {
				log.WithError(err).Error("failed to close redis client")
			}
		}()
	}

	engine, err := di.NewServer(cfg, gdb, rdb, log)
	if err != nil {
		log.WithError(err).Fatal("failed to build server")
	}

	log.WithField("port", cfg.Port).Info("postboard listening")
	if err := engine.Run(cfg.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
