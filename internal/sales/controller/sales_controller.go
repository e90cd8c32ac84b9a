package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"menvy/internal/domain"
	"menvy/internal/dto"
	apperrors "menvy/internal/errors"
	"menvy/internal/infrastructure/metrics"
)

type RecordSaleUseCase interface {
	RecordSale(ctx context.Context, in dto.RecordSaleInput) (*domain.Sale, error)
	ListSales(ctx context.Context, sellerID *int) ([]domain.Sale, error)
	DeleteSale(ctx context.Context, id int64) error
}

type SalesController struct {
	useCase RecordSaleUseCase
	logger  *zap.Logger
}

func NewSalesController(useCase RecordSaleUseCase, logger *zap.Logger) *SalesController {
	return &SalesController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *SalesController) HandleRecordSale(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	actor, ok := actorFromHeaders(r)
	if !ok {
		c.writeJSON(w, http.StatusUnauthorized, map[string]string{
			"error":   "UNAUTHORIZED",
			"message": "missing actor identity headers",
		})
		return
	}

	var req dto.RecordSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	sale, err := c.useCase.RecordSale(r.Context(), dto.RecordSaleInput{
		ProductID:     req.ProductID,
		Quantity:      req.Quantity,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		PaymentMethod: req.PaymentMethod,
		Actor:         actor,
	})
	if err != nil {
		metrics.SalesRecorded.WithLabelValues(outcomeLabel(err)).Inc()
		c.handleError(w, err, logger)
		return
	}

	metrics.SalesRecorded.WithLabelValues("recorded").Inc()
	c.writeJSON(w, http.StatusCreated, dto.NewSaleResponse(sale))
}

func (c *SalesController) HandleListSales(w http.ResponseWriter, r *http.Request) {
	var sellerID *int
	if raw := r.URL.Query().Get("sellerId"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			c.writeValidationError(w, "invalid sellerId", apperrors.ValidationDetail{
				Field:   "sellerId",
				Message: "sellerId must be a positive integer",
			})
			return
		}
		sellerID = &id
	}

	sales, err := c.useCase.ListSales(r.Context(), sellerID)
	if err != nil {
		c.handleError(w, err, c.logger)
		return
	}

	responses := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		responses = append(responses, dto.NewSaleResponse(&sales[i]))
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{"sales": responses})
}

func (c *SalesController) HandleDeleteSale(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "saleId")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		c.writeValidationError(w, "invalid saleId", apperrors.ValidationDetail{
			Field:   "saleId",
			Message: "saleId must be a positive integer",
		})
		return
	}

	if err := c.useCase.DeleteSale(r.Context(), id); err != nil {
		c.handleError(w, err, c.logger)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]string{"message": "sale deleted"})
}

func (c *SalesController) handleError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, map[string]string{
			"error":   "NOT_FOUND",
			"message": err.Error(),
		})
		return
	}

	if _, ok := apperrors.IsInsufficientStockError(err); ok {
		c.writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error":   "INSUFFICIENT_STOCK",
			"message": err.Error(),
		})
		return
	}

	if _, ok := apperrors.IsConflictError(err); ok {
		c.writeJSON(w, http.StatusConflict, map[string]string{
			"error":   "CONFLICT",
			"message": err.Error(),
		})
		return
	}

	if _, ok := apperrors.IsDuplicateNumberError(err); ok {
		c.writeJSON(w, http.StatusConflict, map[string]string{
			"error":   "DUPLICATE_NUMBER",
			"message": err.Error(),
		})
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error":   "INTERNAL_ERROR",
		"message": "an unexpected error occurred",
	})
}

func outcomeLabel(err error) string {
	if _, ok := apperrors.IsValidationError(err); ok {
		return "validation"
	}
	if _, ok := apperrors.IsNotFoundError(err); ok {
		return "not_found"
	}
	if _, ok := apperrors.IsInsufficientStockError(err); ok {
		return "insufficient_stock"
	}
	if _, ok := apperrors.IsConflictError(err); ok {
		return "conflict"
	}
	return "error"
}

func actorFromHeaders(r *http.Request) (dto.Actor, bool) {
	idStr := r.Header.Get("X-User-Id")
	name := r.Header.Get("X-User-Name")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 || name == "" {
		return dto.Actor{}, false
	}
	return dto.Actor{ID: id, Name: name}, true
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *SalesController) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *SalesController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
