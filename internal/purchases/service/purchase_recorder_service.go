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
	IncrementStockAndSetCostPrice(ctx context.Context, tx *sql.Tx, productID, quantity int, costPrice float64) (bool, error)
}

type PurchaseRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, purchase *domain.Purchase) error
}

// RecorderService commits a purchase as one transaction: the stock increment
// with the cost-price overwrite and the ledger insert become visible together
// or not at all.
type RecorderService struct {
	db                TransactionManager
	productRepo       ProductRepository
	purchaseRepo      PurchaseRepository
	numbers           docnum.Generator
	logger            *zap.Logger
	txTimeout         time.Duration
	maxNumberAttempts int
}

func NewRecorderService(
	db TransactionManager,
	productRepo ProductRepository,
	purchaseRepo PurchaseRepository,
	numbers docnum.Generator,
	logger *zap.Logger,
	txTimeout time.Duration,
	maxNumberAttempts int,
) *RecorderService {
	return &RecorderService{
		db:                db,
		productRepo:       productRepo,
		purchaseRepo:      purchaseRepo,
		numbers:           numbers,
		logger:            logger,
		txTimeout:         txTimeout,
		maxNumberAttempts: maxNumberAttempts,
	}
}

func (s *RecorderService) Record(ctx context.Context, product *domain.Product, in dto.RecordPurchaseInput) (*domain.Purchase, error) {
	// Bloque 1: Iniciar transacción con timeout
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, apperrors.NewInternalError("beginning purchase transaction", err)
	}
	// Ensure rollback on any exit path. MySQL ignores rollback if already committed.
	defer tx.Rollback()

	// Bloque 2: Incremento de stock + sobrescritura del costo unitario.
	// El costPrice siempre refleja la última compra, nunca un promedio.
	applied, err := s.productRepo.IncrementStockAndSetCostPrice(txCtx, tx, product.ID, in.Quantity, in.CostPrice)
	if err != nil {
		return nil, err
	}
	if !applied {
		// The product row disappeared between the pre-check and the write.
		return nil, apperrors.NewNotFoundError("product no longer exists")
	}

	purchase := &domain.Purchase{
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    in.Quantity,
		CostPrice:   in.CostPrice,
		Total:       in.CostPrice * float64(in.Quantity),
		Supplier: domain.Supplier{
			Name:    in.SupplierName,
			Phone:   in.SupplierPhone,
			Address: in.SupplierAddress,
		},
		CreatedBy:     in.Actor.ID,
		CreatedByName: in.Actor.Name,
		CreatedAt:     time.Now().UTC(),
	}

	// Bloque 3: Insertar el registro, regenerando el número si colisiona
	for attempt := 1; ; attempt++ {
		purchase.PurchaseNo = s.numbers.Next(docnum.KindPurchase)
		err = s.purchaseRepo.Insert(txCtx, tx, purchase)
		if err == nil {
			break
		}
		if _, ok := apperrors.IsDuplicateNumberError(err); ok && attempt < s.maxNumberAttempts {
			s.logger.Warn("purchase number collision, regenerating",
				zap.String("purchaseNo", purchase.PurchaseNo),
				zap.Int("attempt", attempt))
			continue
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit purchase transaction",
			zap.Int("productId", product.ID), zap.Error(err))
		return nil, apperrors.NewInternalError("committing purchase transaction", err)
	}

	s.logger.Info("purchase recorded",
		zap.String("purchaseNo", purchase.PurchaseNo),
		zap.Int("productId", purchase.ProductID),
		zap.Int("quantity", purchase.Quantity),
		zap.Float64("costPrice", purchase.CostPrice),
		zap.Float64("total", purchase.Total))

	return purchase, nil
}
