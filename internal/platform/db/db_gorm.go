// Package db opens the gorm connection and applies the schema.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"contacts_backend/internal/platform/db/migrations"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds the database connection settings.
type Config struct {
	Driver         string
	SQLitePath     string
	Host           string
	Port           int
	User           string
	Password       string
	Name           string
	SSLMode        string
	ConnectTimeout time.Duration
}

// Opener opens a gorm connection for a DSN. It is swapped out in tests.
type Opener func(dsn string) (*gorm.DB, error)

// retryInterval is the pause between connection attempts.
var retryInterval = 3 * time.Second

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// BuildDSN returns a keyword/value DSN for postgres or a file DSN with
// foreign keys enabled for sqlite.
func BuildDSN(cfg Config) string {
	if cfg.Driver == DriverPostgres {
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
	}
	sep := "?"
	if strings.Contains(cfg.SQLitePath, "?") {
		sep = "&"
	}
	return cfg.SQLitePath + sep + "_foreign_keys=on&_busy_timeout=5000"
}

// ConnectWithRetry calls opener until it succeeds or timeout elapses.
func ConnectWithRetry(dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	attempts := 0
	for {
		attempts++
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, fmt.Errorf("db connect failed after %d attempts: %w", attempts, err)
		}
		time.Sleep(retryInterval)
	}
}

// Open connects to the configured database with retry and verifies the pool with a ping.
func Open(cfg Config, log *zap.Logger) (*gorm.DB, error) {
	if log == nil {
		log = zap.NewNop()
	}
	gcfg := &gorm.Config{TranslateError: true}

	var opener Opener
	switch cfg.Driver {
	case DriverPostgres:
		opener = func(dsn string) (*gorm.DB, error) {
			db, err := gorm.Open(postgres.Open(dsn), gcfg)
			if err != nil {
				log.Warn("db connect failed, retrying", zap.Error(err))
				return nil, err
			}
			return db, nil
		}
	case DriverSQLite:
		opener = func(dsn string) (*gorm.DB, error) {
			return gorm.Open(sqlite.Open(dsn), gcfg)
		}
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.Driver)
	}

	db, err := ConnectWithRetry(BuildDSN(cfg), cfg.ConnectTimeout, opener)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if cfg.Driver == DriverSQLite {
		// One writer at a time avoids SQLITE_BUSY under concurrent requests.
		sqlDB.SetMaxOpenConns(1)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("db ping failed: %w", err)
	}
	log.Info("database connected", zap.String("driver", cfg.Driver))
	return db, nil
}

// Migrate applies the schema. Postgres runs the embedded goose migrations;
// sqlite auto-migrates the given models.
func Migrate(ctx context.Context, db *gorm.DB, driver string, models ...any) error {
	switch driver {
	case DriverPostgres:
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		goose.SetBaseFS(migrations.FS)
		if err := goose.SetDialect("postgres"); err != nil {
			return fmt.Errorf("failed to set goose dialect: %w", err)
		}
		if err := gooseUpContext(ctx, sqlDB, "."); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		return nil
	case DriverSQLite:
		if err := db.WithContext(ctx).AutoMigrate(models...); err != nil {
			return fmt.Errorf("failed to migrate: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported db driver %q", driver)
	}
}
