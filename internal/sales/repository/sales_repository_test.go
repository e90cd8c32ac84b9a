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

func testSale(billNo string, sellerID int) *domain.Sale {
	return &domain.Sale{
		BillNo:        billNo,
		ProductID:     1,
		ProductName:   "Denim Shirt",
		Quantity:      2,
		Price:         1200,
		Total:         2400,
		SellerID:      sellerID,
		SellerName:    "Rahim",
		PaymentMethod: domain.PaymentMethodCash,
		CreatedAt:     time.Now().UTC(),
	}
}

func TestInsert_SetsID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	repo := NewMySQLSaleRepository(db)

	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	sale := testSale("MV100000001", 7)
	err = repo.Insert(ctx, tx, sale)

	require.NoError(t, err)
	assert.NotZero(t, sale.ID)
	require.NoError(t, tx.Commit())
}

func TestInsert_DuplicateBillNo(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	repo := NewMySQLSaleRepository(db)
	ctx := context.Background()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Insert(ctx, tx, testSale("MV100000002", 7)))
	require.NoError(t, tx.Commit())

	tx, err = db.BeginTx(ctx, nil)
	require.NoError(t, err)
	defer tx.Rollback()

	err = repo.Insert(ctx, tx, testSale("MV100000002", 8))

	de, ok := apperrors.IsDuplicateNumberError(err)
	require.True(t, ok, "expected duplicate number error, got %v", err)
	assert.Equal(t, "MV100000002", de.Number)
}

func TestFindAll_SellerFilter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	repo := NewMySQLSaleRepository(db)
	ctx := context.Background()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Insert(ctx, tx, testSale("MV100000003", 7)))
	require.NoError(t, repo.Insert(ctx, tx, testSale("MV100000004", 7)))
	require.NoError(t, repo.Insert(ctx, tx, testSale("MV100000005", 8)))
	require.NoError(t, tx.Commit())

	all, err := repo.FindAll(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	sellerID := 7
	filtered, err := repo.FindAll(ctx, &sellerID)
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	for _, s := range filtered {
		assert.Equal(t, 7, s.SellerID)
	}
}

func TestDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	repo := NewMySQLSaleRepository(db)
	ctx := context.Background()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	sale := testSale("MV100000006", 7)
	require.NoError(t, repo.Insert(ctx, tx, sale))
	require.NoError(t, tx.Commit())

	require.NoError(t, repo.Delete(ctx, sale.ID))

	// Deleting a sale never restores stock; only the ledger row goes away.
	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM sales WHERE id = ?", sale.ID).Scan(&count))
	assert.Equal(t, 0, count)
}

func TestDelete_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	repo := NewMySQLSaleRepository(db)

	err := repo.Delete(context.Background(), 999999)

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}
