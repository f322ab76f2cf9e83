package orders

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/openwims/wims-backend/pkg/db/models"
	"github.com/openwims/wims-backend/pkg/enums"
	"github.com/openwims/wims-backend/pkg/pagination"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS orders (
  order_id TEXT PRIMARY KEY,
  item_id TEXT NOT NULL,
  item_name TEXT NOT NULL,
  quantity INTEGER NOT NULL CHECK (quantity > 0),
  status TEXT NOT NULL DEFAULT 'Pending',
  ordered_by TEXT NOT NULL,
  notes TEXT NOT NULL DEFAULT '',
  order_date DATETIME DEFAULT CURRENT_TIMESTAMP
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func seedOrder(t *testing.T, repo *Repository, db *gorm.DB, name string, placedAt time.Time, status enums.OrderStatus) uuid.UUID {
	t.Helper()
	order := &models.Order{
		ItemID:    uuid.New(),
		ItemName:  name,
		Quantity:  2,
		Status:    status,
		OrderedBy: "alice",
		OrderDate: placedAt,
	}
	require.NoError(t, repo.CreateTx(context.Background(), db, order))
	return order.ID
}

func TestRepositoryCreateAndFind(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	id := seedOrder(t, repo, db, "Packing Tape", time.Now().UTC(), enums.OrderStatusPending)

	order, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Packing Tape", order.ItemName)
	assert.Equal(t, enums.OrderStatusPending, order.Status)
}

func TestRepositoryUpdateStatus(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	id := seedOrder(t, repo, db, "Shrink Wrap", time.Now().UTC(), enums.OrderStatusPending)

	require.NoError(t, repo.UpdateStatus(ctx, id, enums.OrderStatusShipped))

	order, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusShipped, order.Status)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, uuid.New(), enums.OrderStatusShipped), gorm.ErrRecordNotFound)
}

func TestRepositoryListNewestFirstWithCursor(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		seedOrder(t, repo, db, fmt.Sprintf("Item %d", i), base.Add(time.Duration(i)*time.Minute), enums.OrderStatusPending)
	}

	first, next, err := repo.List(ctx, ListFilter{}, pagination.Params{Limit: 3})
	require.NoError(t, err)
	require.Len(t, first, 3)
	require.NotEqual(t, "", next)
	assert.Equal(t, "Item 4", first[0].ItemName)

	second, _, err := repo.List(ctx, ListFilter{}, pagination.Params{Limit: 3, Cursor: next})
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.Equal(t, "Item 1", second[0].ItemName)
}

func TestRepositoryListFiltersByStatus(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	seedOrder(t, repo, db, "A", now, enums.OrderStatusPending)
	seedOrder(t, repo, db, "B", now.Add(time.Second), enums.OrderStatusShipped)

	rows, _, err := repo.List(ctx, ListFilter{Status: enums.OrderStatusShipped}, pagination.Params{Limit: 10})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "B", rows[0].ItemName)

	pending, err := repo.CountByStatus(ctx, enums.OrderStatusPending)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pending)
}

func TestRepositoryRecent(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		seedOrder(t, repo, db, fmt.Sprintf("Item %d", i), base.Add(time.Duration(i)*time.Minute), enums.OrderStatusPending)
	}

	rows, err := repo.Recent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Item 3", rows[0].ItemName)
}
