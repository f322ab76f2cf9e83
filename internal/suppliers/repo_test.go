package suppliers

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSuppliersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS suppliers (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  contact_person TEXT NOT NULL DEFAULT '',
  email TEXT NOT NULL DEFAULT '',
  phone TEXT NOT NULL DEFAULT '',
  lead_time_days INTEGER NOT NULL DEFAULT 0,
  rating INTEGER NOT NULL DEFAULT 3 CHECK (rating BETWEEN 1 AND 5)
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func TestRepositoryCreateAndFind(t *testing.T) {
	db := setupSuppliersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, CreateSupplierDTO{
		Name:          "Acme Supplies",
		ContactPerson: "Jo Field",
		Email:         "jo@acme.example",
		LeadTimeDays:  7,
		Rating:        4,
	})
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Supplies", found.Name)
	assert.Equal(t, 4, found.Rating)
	assert.Equal(t, 7, found.LeadTimeDays)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryCreateDefaultsRating(t *testing.T) {
	db := setupSuppliersTestDB(t)
	repo := NewRepository(db)

	created, err := repo.Create(context.Background(), CreateSupplierDTO{Name: "Metro Freight", LeadTimeDays: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, created.Rating)
}

func TestRepositoryListOrdersByName(t *testing.T) {
	db := setupSuppliersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	for _, name := range []string{"Zenith Logistics", "Acme Supplies", "Metro Freight"} {
		_, err := repo.Create(ctx, CreateSupplierDTO{Name: name, Rating: 3, LeadTimeDays: 5})
		require.NoError(t, err)
	}

	rows, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Acme Supplies", rows[0].Name)
	assert.Equal(t, "Zenith Logistics", rows[2].Name)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
