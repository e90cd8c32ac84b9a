package usecase

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"menvy/internal/domain"
	"menvy/internal/dto"
	apperrors "menvy/internal/errors"
)

type ProductRepository interface {
	FindByID(ctx context.Context, id int) (*domain.Product, error)
}

type PurchaseRecorder interface {
	Record(ctx context.Context, product *domain.Product, in dto.RecordPurchaseInput) (*domain.Purchase, error)
}

type PurchaseRepository interface {
	FindAll(ctx context.Context) ([]domain.Purchase, error)
	Delete(ctx context.Context, id int64) error
}

type RecordPurchaseUseCase struct {
	productRepo      ProductRepository
	recorder         PurchaseRecorder
	purchaseRepo     PurchaseRepository
	logger           *zap.Logger
	maxRetryAttempts int
}

func NewRecordPurchaseUseCase(
	productRepo ProductRepository,
	recorder PurchaseRecorder,
	purchaseRepo PurchaseRepository,
	logger *zap.Logger,
	maxRetryAttempts int,
) *RecordPurchaseUseCase {
	return &RecordPurchaseUseCase{
		productRepo:      productRepo,
		recorder:         recorder,
		purchaseRepo:     purchaseRepo,
		logger:           logger,
		maxRetryAttempts: maxRetryAttempts,
	}
}

// RecordPurchase validates the command and commits it through the recorder.
// Unlike sales, a purchase is retried on deadlock: stock increments are
// commutative, and the whole transaction rolls back before each retry.
func (uc *RecordPurchaseUseCase) RecordPurchase(ctx context.Context, in dto.RecordPurchaseInput) (*domain.Purchase, error) {
	// Bloque 1: Validaciones (antes de tocar el storage)
	if err := validateRecordPurchaseInput(in); err != nil {
		return nil, err
	}

	uc.logger.Info("record-purchase started",
		zap.Int("productId", in.ProductID),
		zap.Int("quantity", in.Quantity),
		zap.Float64("costPrice", in.CostPrice),
		zap.Int("createdBy", in.Actor.ID))

	// Bloque 2: Pre-validación del producto (fuera de transacción)
	product, err := uc.productRepo.FindByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}

	// Bloque 3: Transacción con retry acotado
	return uc.recordWithRetry(ctx, product, in)
}

func (uc *RecordPurchaseUseCase) recordWithRetry(ctx context.Context, product *domain.Product, in dto.RecordPurchaseInput) (*domain.Purchase, error) {
	maxAttempts := uc.maxRetryAttempts
	// Backoff intervals: attempt 1 (0ms), attempt 2 (100ms), attempt 3 (200ms).
	backoffs := []time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		purchase, err := uc.recorder.Record(ctx, product, in)
		if err == nil {
			return purchase, nil
		}

		if isDeadlockError(err) {
			if attempt < maxAttempts {
				backoff := backoffs[(attempt-1)%len(backoffs)]
				// Jitter: ±20% of the backoff base
				jitter := time.Duration(float64(backoff) * (0.8 + rand.Float64()*0.4))
				time.Sleep(jitter)
				uc.logger.Warn("deadlock detected, retrying purchase",
					zap.Int("attempt", attempt),
					zap.Int("maxAttempts", maxAttempts),
					zap.Int("productId", product.ID))
				continue
			}
			break
		}

		return nil, err
	}

	return nil, apperrors.NewConflictError("max retries exceeded recording purchase")
}

func (uc *RecordPurchaseUseCase) ListPurchases(ctx context.Context) ([]domain.Purchase, error) {
	return uc.purchaseRepo.FindAll(ctx)
}

// DeletePurchase removes the ledger record without reducing stock.
func (uc *RecordPurchaseUseCase) DeletePurchase(ctx context.Context, id int64) error {
	if err := uc.purchaseRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("purchase deleted, stock not adjusted", zap.Int64("purchaseId", id))
	return nil
}

func validateRecordPurchaseInput(in dto.RecordPurchaseInput) error {
	var details []apperrors.ValidationDetail

	if in.ProductID <= 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "productId",
			Message: "productId must be a positive integer",
		})
	}

	if in.Quantity < 1 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must be at least 1",
		})
	}

	if in.CostPrice < 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "costPrice",
			Message: "costPrice must be non-negative",
		})
	}

	if strings.TrimSpace(in.SupplierName) == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "supplierName",
			Message: "supplierName is required",
		})
	}

	if in.Actor.ID <= 0 || in.Actor.Name == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "actor",
			Message: "authenticated actor identity is required",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}

	return nil
}

func isDeadlockError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1213 || mysqlErr.Number == 1205
	}
	return false
}
