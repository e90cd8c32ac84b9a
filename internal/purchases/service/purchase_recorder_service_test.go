package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	catalogrepo "menvy/internal/catalog/repository"
	"menvy/internal/docnum"
	"menvy/internal/dto"
	apperrors "menvy/internal/errors"
	purchasesrepo "menvy/internal/purchases/repository"
	"menvy/internal/testutil"
)

func purchaseInput(productID int) dto.RecordPurchaseInput {
	return dto.RecordPurchaseInput{
		ProductID:    productID,
		Quantity:     5,
		CostPrice:    120,
		SupplierName: "Dhaka Textiles",
		Actor:        dto.Actor{ID: 2, Name: "Karim"},
	}
}

func TestRecord_CostPriceOverwrite(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	productRepo := catalogrepo.NewMySQLRepository(db)
	purchaseRepo := purchasesrepo.NewMySQLPurchaseRepository(db)

	productID := testutil.InsertTestProduct(t, db, "Denim Shirt", "MV-SHIRT-101", 1200, 100, 10, 5)
	product, err := productRepo.FindByID(context.Background(), productID)
	require.NoError(t, err)

	recorder := NewRecorderService(db, productRepo, purchaseRepo, docnum.NewGenerator(), zap.NewNop(), 5*time.Second, 3)

	purchase, err := recorder.Record(context.Background(), product, purchaseInput(productID))

	require.NoError(t, err)
	assert.NotZero(t, purchase.ID)
	assert.Regexp(t, `^PUR\d{9}$`, purchase.PurchaseNo)
	assert.Equal(t, 600.0, purchase.Total)

	var stock int
	var costPrice float64
	err = db.QueryRow("SELECT stock, cost_price FROM products WHERE id = ?", productID).Scan(&stock, &costPrice)
	require.NoError(t, err)
	assert.Equal(t, 15, stock)
	// The last purchase replaces the unit cost outright. No averaging.
	assert.Equal(t, 120.0, costPrice)
}

func TestRecord_ProductDeletedConcurrently(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	productRepo := catalogrepo.NewMySQLRepository(db)
	purchaseRepo := purchasesrepo.NewMySQLPurchaseRepository(db)

	productID := testutil.InsertTestProduct(t, db, "Short Lived", "MV-GONE-001", 500, 100, 3, 1)
	product, err := productRepo.FindByID(context.Background(), productID)
	require.NoError(t, err)

	// The product disappears after the pre-check, before the transaction.
	_, err = db.Exec("DELETE FROM products WHERE id = ?", productID)
	require.NoError(t, err)

	recorder := NewRecorderService(db, productRepo, purchaseRepo, docnum.NewGenerator(), zap.NewNop(), 5*time.Second, 3)

	_, err = recorder.Record(context.Background(), product, purchaseInput(productID))

	_, ok := apperrors.IsNotFoundError(err)
	require.True(t, ok, "expected not found, got %v", err)

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM purchases WHERE product_id = ?", productID).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestRecord_ConcurrentPurchasesAllApply(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	productRepo := catalogrepo.NewMySQLRepository(db)
	purchaseRepo := purchasesrepo.NewMySQLPurchaseRepository(db)

	productID := testutil.InsertTestProduct(t, db, "Restocked Shirt", "MV-RESTOCK-001", 800, 100, 0, 5)
	product, err := productRepo.FindByID(context.Background(), productID)
	require.NoError(t, err)

	recorder := NewRecorderService(db, productRepo, purchaseRepo, docnum.NewGenerator(), zap.NewNop(), 10*time.Second, 3)

	const workers = 10
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			in := purchaseInput(productID)
			in.Quantity = 2
			_, err := recorder.Record(context.Background(), product, in)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	// Increments are commutative so deadlocks retried upstream are the only
	// acceptable failure; the service itself should succeed for each caller.
	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
		}
	}

	var stock int
	err = db.QueryRow("SELECT stock FROM products WHERE id = ?", productID).Scan(&stock)
	require.NoError(t, err)
	assert.Equal(t, succeeded*2, stock)

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM purchases WHERE product_id = ?", productID).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, succeeded, count)
}

func TestRecord_SupplierSnapshotPersisted(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	productRepo := catalogrepo.NewMySQLRepository(db)
	purchaseRepo := purchasesrepo.NewMySQLPurchaseRepository(db)

	productID := testutil.InsertTestProduct(t, db, "Denim Shirt", "MV-SHIRT-102", 1200, 100, 10, 5)
	product, err := productRepo.FindByID(context.Background(), productID)
	require.NoError(t, err)

	recorder := NewRecorderService(db, productRepo, purchaseRepo, docnum.NewGenerator(), zap.NewNop(), 5*time.Second, 3)

	phone := "+8801700000000"
	address := "Islampur, Dhaka"
	in := purchaseInput(productID)
	in.SupplierPhone = &phone
	in.SupplierAddress = &address

	purchase, err := recorder.Record(context.Background(), product, in)
	require.NoError(t, err)

	var gotName, gotProductName string
	var gotPhone, gotAddress *string
	err = db.QueryRow(`
		SELECT supplier_name, supplier_phone, supplier_address, product_name
		FROM purchases WHERE id = ?
	`, purchase.ID).Scan(&gotName, &gotPhone, &gotAddress, &gotProductName)
	require.NoError(t, err)

	assert.Equal(t, "Dhaka Textiles", gotName)
	require.NotNil(t, gotPhone)
	assert.Equal(t, phone, *gotPhone)
	require.NotNil(t, gotAddress)
	assert.Equal(t, address, *gotAddress)
	// Denormalized snapshot survives later product renames.
	assert.Equal(t, "Denim Shirt", gotProductName)
}
