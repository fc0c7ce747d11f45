package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pageza/bangladiet/backend/config"
)

const (
	connectAttempts = 5
	maxConnectWait  = 10 * time.Second
)

// Dialector returns the gorm dialector for the configured driver.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	dsn := cfg.DSN()
	switch cfg.DBDriver {
	case config.DriverPostgres:
		return postgres.Open(dsn), nil
	case config.DriverMySQL:
		return mysql.Open(dsn), nil
	case config.DriverSQLite:
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

// Open connects to the configured database, retrying with exponential
// backoff while the server comes up.
func Open(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	logLevel := logger.Warn
	if cfg.Environment == config.Development {
		logLevel = logger.Info
	}
	gormCfg := &gorm.Config{
		Logger: logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: true,
	}

	log.Printf("Connecting to %s database at %s:%s", cfg.DBDriver, cfg.DBHost, cfg.DBPort)

	var db *gorm.DB
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		db, err = gorm.Open(dialector, gormCfg)
		if err == nil {
			if err = ping(ctx, db); err == nil {
				break
			}
		}
		log.Printf("Database connection attempt %d/%d failed: %v", attempt, connectAttempts, err)
		if attempt == connectAttempts {
			return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", connectAttempts, err)
		}

		wait := time.Duration(1<<uint(attempt-1)) * time.Second
		if wait > maxConnectWait {
			wait = maxConnectWait
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.DBDriver == config.DriverSQLite {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(25)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	log.Printf("Successfully connected to database")
	return db, nil
}

func ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
