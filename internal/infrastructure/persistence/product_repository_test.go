package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shelfbridge/backend/internal/domain/catalog"
	"github.com/shelfbridge/backend/internal/domain/shared"
	"github.com/shelfbridge/backend/internal/domain/shared/valueobject"
)

// setupProductTestDB creates an in-memory SQLite database for testing
func setupProductTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&catalog.Product{}))
	return db
}

func newTestProduct(t *testing.T, name, code, vbid string) *catalog.Product {
	p, err := catalog.NewProduct(name)
	require.NoError(t, err)
	if code != "" {
		require.NoError(t, p.SetCode(code))
	}
	if vbid != "" {
		p.SetVendorBookID(vbid)
	}
	return p
}

func TestGormProductRepository_SaveAndFindByID(t *testing.T) {
	db := setupProductTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	p := newTestProduct(t, "Introduction to Biology", "9781234567890R180", "9781234567890")
	require.NoError(t, p.SetRegularPrice(valueobject.NewMoneyUSD(decimal.NewFromFloat(49.99))))
	require.NoError(t, repo.Save(ctx, p))

	found, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Introduction to Biology", found.Name)
	assert.Equal(t, "introduction-to-biology", found.Slug)
	assert.Equal(t, "9781234567890R180", found.Code)
	assert.Equal(t, "49.99", found.RegularPrice.StringFixed(2))
}

func TestGormProductRepository_FindByID_NotFound(t *testing.T) {
	db := setupProductTestDB(t)
	repo := NewGormProductRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormProductRepository_FindByCode(t *testing.T) {
	db := setupProductTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	p := newTestProduct(t, "Chemistry", "9780000000001", "")
	require.NoError(t, repo.Save(ctx, p))

	found, err := repo.FindByCode(ctx, "9780000000001")
	require.NoError(t, err)
	assert.Equal(t, p.ID, found.ID)

	_, err = repo.FindByCode(ctx, "missing-code")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormProductRepository_FindByCode_EmptyNeverMatches(t *testing.T) {
	db := setupProductTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	// product without a SKU
	p := newTestProduct(t, "No SKU Title", "", "")
	require.NoError(t, repo.Save(ctx, p))

	_, err := repo.FindByCode(ctx, "")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormProductRepository_FindBySlug(t *testing.T) {
	db := setupProductTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	p := newTestProduct(t, "Organic Chemistry", "", "")
	require.NoError(t, repo.Save(ctx, p))

	found, err := repo.FindBySlug(ctx, "organic-chemistry")
	require.NoError(t, err)
	assert.Equal(t, p.ID, found.ID)
}

func TestGormProductRepository_FindActive(t *testing.T) {
	db := setupProductTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	active := newTestProduct(t, "Active Title", "", "")
	require.NoError(t, repo.Save(ctx, active))

	trashed := newTestProduct(t, "Trashed Title", "", "")
	require.NoError(t, trashed.Trash())
	require.NoError(t, repo.Save(ctx, trashed))

	products, err := repo.FindActive(ctx, shared.NewFilter())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Active Title", products[0].Name)
}

func TestGormProductRepository_FindAll_Search(t *testing.T) {
	db := setupProductTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newTestProduct(t, "Calculus Volume One", "", "")))
	require.NoError(t, repo.Save(ctx, newTestProduct(t, "World History", "", "")))

	filter := shared.NewFilter()
	filter.Search = "Calculus"

	products, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Calculus Volume One", products[0].Name)
}

func TestGormProductRepository_FindAll_VendorLinkedFilter(t *testing.T) {
	db := setupProductTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newTestProduct(t, "Vendor Title", "9781111111111", "9781111111111")))
	require.NoError(t, repo.Save(ctx, newTestProduct(t, "Local Title", "", "")))

	products, err := repo.FindAll(ctx, shared.NewFilter().WithFilter("vendor_linked", true))
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Vendor Title", products[0].Name)
}

func TestGormProductRepository_Count(t *testing.T) {
	db := setupProductTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newTestProduct(t, "One", "", "")))
	require.NoError(t, repo.Save(ctx, newTestProduct(t, "Two", "", "")))

	count, err := repo.Count(ctx, shared.NewFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestGormProductRepository_Delete(t *testing.T) {
	db := setupProductTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	p := newTestProduct(t, "Deletable", "", "")
	require.NoError(t, repo.Save(ctx, p))

	require.NoError(t, repo.Delete(ctx, p.ID))
	assert.ErrorIs(t, repo.Delete(ctx, p.ID), shared.ErrNotFound)
}
