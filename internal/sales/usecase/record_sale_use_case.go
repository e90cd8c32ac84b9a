package usecase

import (
	"context"

	"go.uber.org/zap"

	"menvy/internal/domain"
	"menvy/internal/dto"
	apperrors "menvy/internal/errors"
)

const maxSaleQuantity = 10000

type ProductRepository interface {
	FindByID(ctx context.Context, id int) (*domain.Product, error)
}

type SaleRecorder interface {
	Record(ctx context.Context, product *domain.Product, in dto.RecordSaleInput) (*domain.Sale, error)
}

type SaleRepository interface {
	FindAll(ctx context.Context, sellerID *int) ([]domain.Sale, error)
	Delete(ctx context.Context, id int64) error
}

type RecordSaleUseCase struct {
	productRepo ProductRepository
	recorder    SaleRecorder
	saleRepo    SaleRepository
	logger      *zap.Logger
}

func NewRecordSaleUseCase(
	productRepo ProductRepository,
	recorder SaleRecorder,
	saleRepo SaleRepository,
	logger *zap.Logger,
) *RecordSaleUseCase {
	return &RecordSaleUseCase{
		productRepo: productRepo,
		recorder:    recorder,
		saleRepo:    saleRepo,
		logger:      logger,
	}
}

// RecordSale validates the command, pre-checks the product outside the
// transaction, and hands off to the recorder. A sale is never auto-retried on
// conflict: after a lost commit confirmation a retry could double-sell.
func (uc *RecordSaleUseCase) RecordSale(ctx context.Context, in dto.RecordSaleInput) (*domain.Sale, error) {
	// Bloque 1: Validaciones (antes de tocar el storage)
	if in.PaymentMethod == "" {
		in.PaymentMethod = domain.PaymentMethodCash
	}

	if err := validateRecordSaleInput(in); err != nil {
		return nil, err
	}

	uc.logger.Info("record-sale started",
		zap.Int("productId", in.ProductID),
		zap.Int("quantity", in.Quantity),
		zap.Int("sellerId", in.Actor.ID))

	// Bloque 2: Pre-validaciones contra el producto (fuera de transacción)
	product, err := uc.productRepo.FindByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}

	if !product.IsActive {
		return nil, apperrors.NewValidationError("product is inactive", apperrors.ValidationDetail{
			Field:   "productId",
			Message: "product is inactive",
		})
	}

	if product.Stock < in.Quantity {
		return nil, apperrors.NewInsufficientStockError(in.Quantity, product.Stock)
	}

	// Bloque 3: Transacción atómica (sin reintentos para ventas)
	return uc.recorder.Record(ctx, product, in)
}

func (uc *RecordSaleUseCase) ListSales(ctx context.Context, sellerID *int) ([]domain.Sale, error) {
	return uc.saleRepo.FindAll(ctx, sellerID)
}

// DeleteSale removes the ledger record without restoring stock.
func (uc *RecordSaleUseCase) DeleteSale(ctx context.Context, id int64) error {
	if err := uc.saleRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("sale deleted, stock not adjusted", zap.Int64("saleId", id))
	return nil
}

func validateRecordSaleInput(in dto.RecordSaleInput) error {
	var details []apperrors.ValidationDetail

	if in.ProductID <= 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "productId",
			Message: "productId must be a positive integer",
		})
	}

	if in.Quantity < 1 || in.Quantity > maxSaleQuantity {
		details = append(details, apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must be between 1 and 10000",
		})
	}

	if !domain.ValidPaymentMethod(in.PaymentMethod) {
		details = append(details, apperrors.ValidationDetail{
			Field:   "paymentMethod",
			Message: "paymentMethod must be one of cash, card, mobile_banking",
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
