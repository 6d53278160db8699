package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sanda94/super-admin-backend/pkg/db/models"
)

func setupInventoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS inventory_records (
  product_id TEXT PRIMARY KEY,
  available INTEGER NOT NULL DEFAULT 0,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func TestRepositoryDecrementIfAvailable(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	productID := uuid.New()
	require.NoError(t, repo.Create(ctx, &models.InventoryRecord{ProductID: productID, Available: 5}))

	remaining, ok, err := repo.DecrementIfAvailable(ctx, productID, 3)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, remaining)

	record, err := repo.Find(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 2, record.Available)
}

func TestRepositoryDecrementRefusesOverdraw(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	productID := uuid.New()
	require.NoError(t, repo.Create(ctx, &models.InventoryRecord{ProductID: productID, Available: 2}))

	_, ok, err := repo.DecrementIfAvailable(ctx, productID, 3)
	require.NoError(t, err)
	require.False(t, ok)

	record, err := repo.Find(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 2, record.Available)
}

func TestRepositoryDecrementToZero(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	productID := uuid.New()
	require.NoError(t, repo.Create(ctx, &models.InventoryRecord{ProductID: productID, Available: 4}))

	remaining, ok, err := repo.DecrementIfAvailable(ctx, productID, 4)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Zero(t, remaining)
}

func TestRepositoryIncrement(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	productID := uuid.New()
	require.NoError(t, repo.Create(ctx, &models.InventoryRecord{ProductID: productID, Available: 1}))

	available, ok, err := repo.Increment(ctx, productID, 3)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 4, available)

	_, ok, err = repo.Increment(ctx, uuid.New(), 3)
	require.NoError(t, err)
	assert.False(t, ok)
}
