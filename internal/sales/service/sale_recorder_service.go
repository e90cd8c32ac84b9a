package service

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"menvy/internal/docnum"
	"menvy/internal/domain"
	"menvy/internal/dto"
	apperrors "menvy/internal/errors"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type ProductRepository interface {
	ConditionalDecrementStock(ctx context.Context, tx *sql.Tx, productID, quantity int) (bool, error)
}

type SaleRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, sale *domain.Sale) error
}

// RecorderService commits a sale as one transaction: the conditional stock
// decrement and the ledger insert become visible together or not at all.
type RecorderService struct {
	db                TransactionManager
	productRepo       ProductRepository
	saleRepo          SaleRepository
	numbers           docnum.Generator
	logger            *zap.Logger
	txTimeout         time.Duration
	maxNumberAttempts int
}

func NewRecorderService(
	db TransactionManager,
	productRepo ProductRepository,
	saleRepo SaleRepository,
	numbers docnum.Generator,
	logger *zap.Logger,
	txTimeout time.Duration,
	maxNumberAttempts int,
) *RecorderService {
	return &RecorderService{
		db:                db,
		productRepo:       productRepo,
		saleRepo:          saleRepo,
		numbers:           numbers,
		logger:            logger,
		txTimeout:         txTimeout,
		maxNumberAttempts: maxNumberAttempts,
	}
}

// Record assumes the caller already validated the input and pre-checked the
// product outside the transaction. The price is snapshotted from the product
// row, never from the request.
func (s *RecorderService) Record(ctx context.Context, product *domain.Product, in dto.RecordSaleInput) (*domain.Sale, error) {
	// Bloque 1: Iniciar transacción con timeout
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, apperrors.NewInternalError("beginning sale transaction", err)
	}
	// Ensure rollback on any exit path. MySQL ignores rollback if already committed.
	defer tx.Rollback()

	// Bloque 2: Decremento condicional — falla cerrado si el stock cambió
	applied, err := s.productRepo.ConditionalDecrementStock(txCtx, tx, product.ID, in.Quantity)
	if err != nil {
		return nil, err
	}
	if !applied {
		// The pre-check saw enough stock; zero rows affected means another
		// sale won the race between check and write.
		s.logger.Warn("conditional decrement affected zero rows",
			zap.Int("productId", product.ID),
			zap.Int("quantity", in.Quantity),
			zap.Int("stockAtCheck", product.Stock))
		return nil, apperrors.NewConflictError("stock changed concurrently, sale not recorded")
	}

	sale := &domain.Sale{
		ProductID:     product.ID,
		ProductName:   product.Name,
		Quantity:      in.Quantity,
		Price:         product.Price,
		Total:         product.Price * float64(in.Quantity),
		SellerID:      in.Actor.ID,
		SellerName:    in.Actor.Name,
		CustomerName:  in.CustomerName,
		CustomerPhone: in.CustomerPhone,
		PaymentMethod: in.PaymentMethod,
		CreatedAt:     time.Now().UTC(),
	}

	// Bloque 3: Insertar el registro, regenerando el número si colisiona
	for attempt := 1; ; attempt++ {
		sale.BillNo = s.numbers.Next(docnum.KindSale)
		err = s.saleRepo.Insert(txCtx, tx, sale)
		if err == nil {
			break
		}
		if _, ok := apperrors.IsDuplicateNumberError(err); ok && attempt < s.maxNumberAttempts {
			s.logger.Warn("bill number collision, regenerating",
				zap.String("billNo", sale.BillNo),
				zap.Int("attempt", attempt))
			continue
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit sale transaction",
			zap.Int("productId", product.ID), zap.Error(err))
		return nil, apperrors.NewInternalError("committing sale transaction", err)
	}

	s.logger.Info("sale recorded",
		zap.String("billNo", sale.BillNo),
		zap.Int("productId", sale.ProductID),
		zap.Int("quantity", sale.Quantity),
		zap.Float64("total", sale.Total),
		zap.Int("sellerId", sale.SellerID))

	return sale, nil
}
