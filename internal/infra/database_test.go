package infra

import (
	"testing"

	"github.com/blendsoftware/catalog/internal/config"
	"github.com/blendsoftware/catalog/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDatabaseCreatesSchema(t *testing.T) {
	db, err := NewDatabase(&config.Config{DatabaseURL: ":memory:"})
	require.NoError(t, err)

	assert.True(t, db.Migrator().HasTable(&model.Product{}))
}

func TestNewDatabaseIsIdempotent(t *testing.T) {
	path := t.TempDir() + "/catalog.db"
	cfg := &config.Config{DatabaseURL: path, DBMaxOpenConns: 2, DBMaxIdleConns: 1}

	db, err := NewDatabase(cfg)
	require.NoError(t, err)
	require.NoError(t, db.Create(&model.Product{
		Name:     "Fedora",
		Category: model.CategoryCloths,
	}).Error)

	// re-running setup against an existing store must not fail or drop rows
	db2, err := NewDatabase(cfg)
	require.NoError(t, err)

	var n int64
	require.NoError(t, db2.Model(&model.Product{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}
