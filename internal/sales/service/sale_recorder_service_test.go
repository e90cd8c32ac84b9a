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
	"menvy/internal/domain"
	"menvy/internal/dto"
	apperrors "menvy/internal/errors"
	salesrepo "menvy/internal/sales/repository"
	"menvy/internal/testutil"
)

// stubGenerator devuelve números predefinidos en orden, luego delega al real.
type stubGenerator struct {
	mu       sync.Mutex
	numbers  []string
	fallback docnum.Generator
}

func (g *stubGenerator) Next(kind docnum.Kind) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.numbers) > 0 {
		n := g.numbers[0]
		g.numbers = g.numbers[1:]
		return n
	}
	return g.fallback.Next(kind)
}

func saleInput(actor dto.Actor, quantity int) dto.RecordSaleInput {
	return dto.RecordSaleInput{
		Quantity:      quantity,
		PaymentMethod: domain.PaymentMethodCash,
		Actor:         actor,
	}
}

func TestRecord_HappyPath(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	productRepo := catalogrepo.NewMySQLRepository(db)
	saleRepo := salesrepo.NewMySQLSaleRepository(db)

	productID := testutil.InsertTestProduct(t, db, "Denim Shirt", "MV-SHIRT-001", 1200, 800, 10, 5)
	product, err := productRepo.FindByID(context.Background(), productID)
	require.NoError(t, err)

	recorder := NewRecorderService(db, productRepo, saleRepo, docnum.NewGenerator(), zap.NewNop(), 5*time.Second, 3)

	in := saleInput(dto.Actor{ID: 7, Name: "Rahim"}, 3)
	in.ProductID = productID

	sale, err := recorder.Record(context.Background(), product, in)

	require.NoError(t, err)
	assert.NotZero(t, sale.ID)
	assert.Regexp(t, `^MV\d{9}$`, sale.BillNo)
	assert.Equal(t, 3600.0, sale.Total)
	assert.Equal(t, "Denim Shirt", sale.ProductName)

	var stock int
	err = db.QueryRow("SELECT stock FROM products WHERE id = ?", productID).Scan(&stock)
	require.NoError(t, err)
	assert.Equal(t, 7, stock)
}

func TestRecord_NoOversellUnderConcurrency(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	productRepo := catalogrepo.NewMySQLRepository(db)
	saleRepo := salesrepo.NewMySQLSaleRepository(db)

	const initialStock = 5
	const attempts = 20
	productID := testutil.InsertTestProduct(t, db, "Scarce Shirt", "MV-SCARCE-001", 500, 300, initialStock, 1)
	product, err := productRepo.FindByID(context.Background(), productID)
	require.NoError(t, err)

	recorder := NewRecorderService(db, productRepo, saleRepo, docnum.NewGenerator(), zap.NewNop(), 10*time.Second, 3)

	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(seller int) {
			defer wg.Done()
			in := saleInput(dto.Actor{ID: seller, Name: "Seller"}, 1)
			in.ProductID = productID
			_, err := recorder.Record(context.Background(), product, in)
			results <- err
		}(i + 1)
	}
	wg.Wait()
	close(results)

	successes := 0
	for err := range results {
		if err == nil {
			successes++
			continue
		}
		// Losers must fail closed with a conflict, never a partial write.
		_, ok := apperrors.IsConflictError(err)
		assert.True(t, ok, "unexpected loser error: %v", err)
	}
	assert.Equal(t, initialStock, successes)

	var stock int
	err = db.QueryRow("SELECT stock FROM products WHERE id = ?", productID).Scan(&stock)
	require.NoError(t, err)
	assert.Equal(t, 0, stock)

	var recorded int
	err = db.QueryRow("SELECT COUNT(*) FROM sales WHERE product_id = ?", productID).Scan(&recorded)
	require.NoError(t, err)
	assert.Equal(t, initialStock, recorded)
}

func TestRecord_NumberCollisionRollsBackStock(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	productRepo := catalogrepo.NewMySQLRepository(db)
	saleRepo := salesrepo.NewMySQLSaleRepository(db)

	productID := testutil.InsertTestProduct(t, db, "Denim Shirt", "MV-SHIRT-002", 1200, 800, 10, 5)
	product, err := productRepo.FindByID(context.Background(), productID)
	require.NoError(t, err)

	// Pre-insert a sale occupying the bill number the stub will produce.
	const takenNo = "MV000000001"
	_, err = db.Exec(`
		INSERT INTO sales (bill_no, product_id, product_name, quantity, price, total, seller_id, seller_name, payment_method)
		VALUES (?, ?, 'Denim Shirt', 1, 1200, 1200, 1, 'Seed', 'cash')
	`, takenNo, productID)
	require.NoError(t, err)

	numbers := &stubGenerator{numbers: []string{takenNo}, fallback: docnum.NewGenerator()}
	recorder := NewRecorderService(db, productRepo, saleRepo, numbers, zap.NewNop(), 5*time.Second, 1)

	in := saleInput(dto.Actor{ID: 7, Name: "Rahim"}, 2)
	in.ProductID = productID

	_, err = recorder.Record(context.Background(), product, in)

	_, ok := apperrors.IsDuplicateNumberError(err)
	require.True(t, ok, "expected duplicate number error, got %v", err)

	// The decrement rolled back with the failed insert: stock unchanged, no new row.
	var stock int
	err = db.QueryRow("SELECT stock FROM products WHERE id = ?", productID).Scan(&stock)
	require.NoError(t, err)
	assert.Equal(t, 10, stock)

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM sales WHERE product_id = ?", productID).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRecord_NumberCollisionRegenerates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	productRepo := catalogrepo.NewMySQLRepository(db)
	saleRepo := salesrepo.NewMySQLSaleRepository(db)

	productID := testutil.InsertTestProduct(t, db, "Denim Shirt", "MV-SHIRT-003", 1200, 800, 10, 5)
	product, err := productRepo.FindByID(context.Background(), productID)
	require.NoError(t, err)

	const takenNo = "MV000000002"
	_, err = db.Exec(`
		INSERT INTO sales (bill_no, product_id, product_name, quantity, price, total, seller_id, seller_name, payment_method)
		VALUES (?, ?, 'Denim Shirt', 1, 1200, 1200, 1, 'Seed', 'cash')
	`, takenNo, productID)
	require.NoError(t, err)

	numbers := &stubGenerator{numbers: []string{takenNo, "MV000000003"}, fallback: docnum.NewGenerator()}
	recorder := NewRecorderService(db, productRepo, saleRepo, numbers, zap.NewNop(), 5*time.Second, 3)

	in := saleInput(dto.Actor{ID: 7, Name: "Rahim"}, 2)
	in.ProductID = productID

	sale, err := recorder.Record(context.Background(), product, in)

	require.NoError(t, err)
	assert.Equal(t, "MV000000003", sale.BillNo)

	var stock int
	err = db.QueryRow("SELECT stock FROM products WHERE id = ?", productID).Scan(&stock)
	require.NoError(t, err)
	assert.Equal(t, 8, stock)
}
