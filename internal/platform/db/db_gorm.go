// Package db opens and migrates the relational store behind postboard.
package db

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// RetryInterval is the pause between two connection attempts.
var RetryInterval = 3 * time.Second

// Config holds database connection settings.
type Config struct {
	Driver        string // "postgres" or "sqlite"
	User          string
	Password      string
	Name          string
	Host          string
	Port          string
	SSLMode       string
	SQLitePath    string
	RunMigrations bool
}

// Opener opens a gorm connection for a DSN. It is swapped out in tests.
type Opener func(dsn string) (*gorm.DB, error)

// LoadConfigFromEnv reads database settings from environment variables.
func LoadConfigFromEnv() Config {
	cfg := Config{
		Driver:        os.Getenv("DB_DRIVER"),
		User:          os.Getenv("DB_USER"),
		Password:      os.Getenv("DB_PASSWORD"),
		Name:          os.Getenv("DB_NAME"),
		Host:          os.Getenv("DB_HOST"),
		Port:          os.Getenv("DB_PORT"),
		SSLMode:       os.Getenv("DB_SSLMODE"),
		SQLitePath:    os.Getenv("SQLITE_PATH"),
		RunMigrations: os.Getenv("RUN_MIGRATIONS") == "true",
	}
	if cfg.Driver == "" {
		cfg.Driver = DriverSQLite
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = "postboard.db"
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = "disable"
	}
	if cfg.Port == "" {
		cfg.Port = "5432"
	}
	return cfg
}

// BuildDSN renders the connection string for the configured driver.
func BuildDSN(cfg Config) string {
	if cfg.Driver == DriverPostgres {
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
	}
	return fmt.Sprintf("file:%s?_foreign_keys=on", cfg.SQLitePath)
}

// NewOpener returns the Opener for a driver name.
// Duplicate-key errors are translated to gorm.ErrDuplicatedKey for both drivers.
func NewOpener(driver string) (Opener, error) {
	gcfg := &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}
	switch driver {
	case DriverPostgres:
		return func(dsn string) (*gorm.DB, error) {
			return gorm.Open(postgres.Open(dsn), gcfg)
		}, nil
	case DriverSQLite:
		return func(dsn string) (*gorm.DB, error) {
			return gorm.Open(sqlite.Open(dsn), gcfg)
		}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// ConnectWithRetry calls open until it succeeds or timeout elapses.
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, fmt.Errorf("db connect failed after %v: %w", timeout, err)
		}
		logrus.WithError(err).Warn("db connect failed, retrying")
		wait := RetryInterval
		if remaining < wait {
			wait = remaining
		}
		time.Sleep(wait)
	}
}

// OpenDB connects using cfg and migrates models when requested.
// SQLite databases are always migrated since they are local development stores.
func OpenDB(cfg Config, log logrus.FieldLogger, models ...any) (*gorm.DB, error) {
	open, err := NewOpener(cfg.Driver)
	if err != nil {
		return nil, err
	}

	db, err := ConnectWithRetry(BuildDSN(cfg), 60*time.Second, open)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{"driver": cfg.Driver, "host": cfg.Host, "name": cfg.Name}).
		Info("database connection successful")

	if cfg.RunMigrations || cfg.Driver == DriverSQLite {
		if err := db.AutoMigrate(models...); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
		log.Info("database migrated")
	}
	return db, nil
}
