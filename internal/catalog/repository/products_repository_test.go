package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menvy/internal/domain"
	apperrors "menvy/internal/errors"
	"menvy/internal/testutil"
)

func TestFindByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	repo := NewMySQLRepository(db)

	id := testutil.InsertTestProduct(t, db, "Denim Shirt", "MV-REPO-001", 1200, 800, 10, 5)

	product, err := repo.FindByID(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, "Denim Shirt", product.Name)
	assert.Equal(t, "MV-REPO-001", product.SKU)
	assert.Equal(t, 1200.0, product.Price)
	assert.Equal(t, 10, product.Stock)
	assert.True(t, product.IsActive)
}

func TestFindByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	repo := NewMySQLRepository(db)

	_, err := repo.FindByID(context.Background(), 999999)

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestConditionalDecrementStock(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	repo := NewMySQLRepository(db)
	id := testutil.InsertTestProduct(t, db, "Guarded Shirt", "MV-REPO-002", 500, 300, 3, 1)

	ctx := context.Background()

	// Within the guard: applies.
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	applied, err := repo.ConditionalDecrementStock(ctx, tx, id, 3)
	require.NoError(t, err)
	assert.True(t, applied)
	require.NoError(t, tx.Commit())

	var stock int
	require.NoError(t, db.QueryRow("SELECT stock FROM products WHERE id = ?", id).Scan(&stock))
	assert.Equal(t, 0, stock)

	// Beyond the guard: zero rows, stock untouched.
	tx, err = db.BeginTx(ctx, nil)
	require.NoError(t, err)
	applied, err = repo.ConditionalDecrementStock(ctx, tx, id, 1)
	require.NoError(t, err)
	assert.False(t, applied)
	require.NoError(t, tx.Rollback())

	require.NoError(t, db.QueryRow("SELECT stock FROM products WHERE id = ?", id).Scan(&stock))
	assert.Equal(t, 0, stock)
}

func TestIncrementStockAndSetCostPrice(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	repo := NewMySQLRepository(db)
	id := testutil.InsertTestProduct(t, db, "Restock Shirt", "MV-REPO-003", 500, 100, 2, 1)

	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	applied, err := repo.IncrementStockAndSetCostPrice(ctx, tx, id, 8, 150)

	require.NoError(t, err)
	assert.True(t, applied)
	require.NoError(t, tx.Commit())

	var stock int
	var costPrice float64
	require.NoError(t, db.QueryRow("SELECT stock, cost_price FROM products WHERE id = ?", id).Scan(&stock, &costPrice))
	assert.Equal(t, 10, stock)
	assert.Equal(t, 150.0, costPrice)
}

func TestIncrementStockAndSetCostPrice_MissingProduct(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	repo := NewMySQLRepository(db)

	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	defer tx.Rollback()

	applied, err := repo.IncrementStockAndSetCostPrice(ctx, tx, 999999, 1, 100)

	require.NoError(t, err)
	assert.False(t, applied)
}

func TestFindLowStock(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	repo := NewMySQLRepository(db)

	testutil.InsertTestProduct(t, db, "Healthy", "MV-LOW-001", 500, 300, 20, 5)
	lowID := testutil.InsertTestProduct(t, db, "Low", "MV-LOW-002", 500, 300, 3, 5)
	atID := testutil.InsertTestProduct(t, db, "At Threshold", "MV-LOW-003", 500, 300, 5, 5)
	inactiveID := testutil.InsertTestProduct(t, db, "Inactive Low", "MV-LOW-004", 500, 300, 0, 5)
	_, err := db.Exec("UPDATE products SET is_active = 0 WHERE id = ?", inactiveID)
	require.NoError(t, err)

	products, err := repo.FindLowStock(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 2)
	// Ordered by ascending stock: the emptiest shelf first.
	assert.Equal(t, lowID, products[0].ID)
	assert.Equal(t, atID, products[1].ID)
}

func TestInsert_DuplicateSKU(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	repo := NewMySQLRepository(db)
	testutil.InsertTestProduct(t, db, "Original", "MV-DUP-001", 500, 300, 10, 5)

	now := time.Now().UTC()
	_, err := repo.Insert(context.Background(), &domain.Product{
		Name:      "Copycat",
		SKU:       "MV-DUP-001",
		Price:     600,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	})

	_, ok := apperrors.IsConflictError(err)
	assert.True(t, ok)
}

func TestInsert_ReturnsGeneratedID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	repo := NewMySQLRepository(db)

	now := time.Now().UTC()
	id, err := repo.Insert(context.Background(), &domain.Product{
		Name:      "Fresh Shirt",
		SKU:       "MV-NEW-001",
		Price:     700,
		CostPrice: 400,
		Stock:     12,
		MinStock:  5,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	})

	require.NoError(t, err)
	assert.Greater(t, id, 0)

	product, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Fresh Shirt", product.Name)
}
