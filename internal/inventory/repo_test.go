package inventory

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupInventoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS inventory (
  id TEXT PRIMARY KEY,
  item_name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL DEFAULT '',
  stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  min_stock INTEGER NOT NULL DEFAULT 5,
  price NUMERIC NOT NULL DEFAULT 0,
  supplier TEXT NOT NULL DEFAULT '',
  last_updated DATETIME DEFAULT CURRENT_TIMESTAMP
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func seedItem(t *testing.T, repo *Repository, name, category string, stock, minStock int) uuid.UUID {
	t.Helper()
	min := minStock
	item, err := repo.Create(context.Background(), CreateItemDTO{
		ItemName: name,
		Category: category,
		Stock:    stock,
		MinStock: &min,
		Price:    decimal.NewFromFloat(9.99),
	})
	require.NoError(t, err)
	return item.ID
}

func TestRepositoryCreateAndFindByID(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewRepository(db)

	id := seedItem(t, repo, "Pallet Jack", "Equipment", 12, 5)

	item, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Pallet Jack", item.ItemName)
	assert.Equal(t, 12, item.Stock)
	assert.False(t, item.LowStock())
}

func TestRepositoryListFilters(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedItem(t, repo, "Shrink Wrap", "Packaging", 2, 10)
	seedItem(t, repo, "Box Cutter", "Tools", 40, 5)
	seedItem(t, repo, "Packing Tape", "Packaging", 25, 5)

	all, err := repo.List(ctx, ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Box Cutter", all[0].ItemName)

	packaging, err := repo.List(ctx, ListFilter{Category: "Packaging"})
	require.NoError(t, err)
	assert.Len(t, packaging, 2)

	low, err := repo.List(ctx, ListFilter{LowStockOnly: true})
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "Shrink Wrap", low[0].ItemName)

	search, err := repo.List(ctx, ListFilter{Search: "tape"})
	require.NoError(t, err)
	require.Len(t, search, 1)
	assert.Equal(t, "Packing Tape", search[0].ItemName)
}

func TestRepositoryUpdate(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	id := seedItem(t, repo, "Forklift Battery", "Equipment", 3, 2)

	newStock := 7
	newPrice := decimal.NewFromFloat(129.50)
	updated, err := repo.Update(ctx, id, UpdateItemDTO{Stock: &newStock, Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Stock)
	assert.True(t, updated.Price.Equal(newPrice))

	_, err = repo.Update(ctx, uuid.New(), UpdateItemDTO{Stock: &newStock})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryDelete(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	id := seedItem(t, repo, "Safety Vest", "Apparel", 30, 10)

	require.NoError(t, repo.Delete(ctx, id))
	assert.ErrorIs(t, repo.Delete(ctx, id), gorm.ErrRecordNotFound)

	_, err := repo.FindByID(ctx, id)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryDecrementStockTx(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	id := seedItem(t, repo, "Stretch Film", "Packaging", 10, 5)

	err := db.Transaction(func(tx *gorm.DB) error {
		affected, err := repo.DecrementStockTx(ctx, tx, id, 4)
		require.NoError(t, err)
		require.Equal(t, int64(1), affected)
		return nil
	})
	require.NoError(t, err)

	item, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 6, item.Stock)

	// decrement past the guard leaves the row untouched
	err = db.Transaction(func(tx *gorm.DB) error {
		affected, err := repo.DecrementStockTx(ctx, tx, id, 7)
		require.NoError(t, err)
		require.Equal(t, int64(0), affected)
		return nil
	})
	require.NoError(t, err)

	item, err = repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 6, item.Stock)
}

func TestRepositoryCountsAndCategories(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedItem(t, repo, "Shrink Wrap", "Packaging", 2, 10)
	seedItem(t, repo, "Box Cutter", "Tools", 40, 5)

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	low, err := repo.CountLowStock(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), low)

	categories, err := repo.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Packaging", "Tools"}, categories)
}
