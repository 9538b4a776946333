// Package database manages the PostgreSQL connection and schema migration.
package database

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/WeAreCode045/wphub-pro-sub001/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Pool limits. The service is one of several sharing the platform's
// database, so the open-connection cap stays modest.
const (
	maxIdleConns    = 10
	maxOpenConns    = 50
	connMaxLifetime = time.Hour
	connMaxIdleTime = 10 * time.Minute
)

// Connect opens the PostgreSQL connection and applies pool limits.
// Production refuses sslmode=disable.
func Connect(databaseURL string) (*gorm.DB, error) {
	if os.Getenv("APP_ENV") == "production" && strings.Contains(databaseURL, "sslmode=disable") {
		return nil, fmt.Errorf("SSL mode cannot be disabled in production")
	}

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel()),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	slog.Info("connected to database")
	return db, nil
}

func gormLogLevel() logger.LogLevel {
	if os.Getenv("LOG_LEVEL") == "debug" {
		return logger.Info
	}
	return logger.Warn
}

// Migrate applies the messaging schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Mailbox{}, &models.Message{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Info("database migrations completed")
	return nil
}

// Close closes the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}
