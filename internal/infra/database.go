package infra

import (
	"fmt"
	"strings"

	"github.com/blendsoftware/catalog/internal/config"
	"github.com/blendsoftware/catalog/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes the process-wide GORM handle and creates the
// catalog schema if absent. Safe to call again on an already-migrated store:
// AutoMigrate only issues DDL for what is missing.
func NewDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(dialectorFor(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if strings.Contains(cfg.DatabaseURL, ":memory:") {
		// an in-memory SQLite DB exists per connection; more than one would
		// split the store
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	}

	if err := db.AutoMigrate(&model.Product{}); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	return db, nil
}

func dialectorFor(dsn string) gorm.Dialector {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return postgres.Open(dsn)
	}
	return sqlite.Open(dsn)
}
