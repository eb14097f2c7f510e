package client

import (
	"fmt"
	"storefront-api/internal/config"
	"storefront-api/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDatabase connects with the configured driver and applies the pool
// settings. TranslateError is on so unique violations surface as
// gorm.ErrDuplicatedKey on every driver.
func OpenDatabase(cfg *config.Database) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg.Driver, cfg.URL)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(gormLogLevel(cfg.LogLevel)),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to %s database: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}

func dialectorFor(driver, url string) (gorm.Dialector, error) {
	switch driver {
	case "sqlite", "":
		return sqlite.Open(url), nil
	case "mysql":
		return mysql.Open(url), nil
	case "postgres":
		return postgres.New(postgres.Config{
			DSN:                  url,
			PreferSimpleProtocol: true,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func gormLogLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Customer{},
		&model.Category{},
		&model.Product{},
		&model.ProductCategory{},
		&model.Order{},
		&model.OrderLine{},
		&model.Payment{},
		&model.Shipment{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	return nil
}
