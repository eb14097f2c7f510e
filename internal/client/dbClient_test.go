package client

import (
	"storefront-api/internal/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestOpenDatabaseRejectsUnknownDriver(t *testing.T) {
	_, err := OpenDatabase(&config.Database{Driver: "oracle", URL: "x"})
	assert.EqualError(t, err, `unsupported database driver "oracle"`)
}

func TestOpenAndMigrateSqlite(t *testing.T) {
	db, err := OpenDatabase(&config.Database{Driver: "sqlite", URL: ":memory:", MaxIdleConns: 1, MaxOpenConns: 1, LogLevel: "silent"})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	for _, table := range []string{"customers", "categories", "products", "product_categories", "orders", "order_lines", "payments", "shipments"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestGormLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, gormLogLevel("silent"))
	assert.Equal(t, logger.Info, gormLogLevel("info"))
	assert.Equal(t, logger.Warn, gormLogLevel("verbose"))
}
