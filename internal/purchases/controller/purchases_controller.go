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

type RecordPurchaseUseCase interface {
	RecordPurchase(ctx context.Context, in dto.RecordPurchaseInput) (*domain.Purchase, error)
	ListPurchases(ctx context.Context) ([]domain.Purchase, error)
	DeletePurchase(ctx context.Context, id int64) error
}

type PurchasesController struct {
	useCase RecordPurchaseUseCase
	logger  *zap.Logger
}

func NewPurchasesController(useCase RecordPurchaseUseCase, logger *zap.Logger) *PurchasesController {
	return &PurchasesController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *PurchasesController) HandleRecordPurchase(w http.ResponseWriter, r *http.Request) {
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

	var req dto.RecordPurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	purchase, err := c.useCase.RecordPurchase(r.Context(), dto.RecordPurchaseInput{
		ProductID:       req.ProductID,
		Quantity:        req.Quantity,
		CostPrice:       req.CostPrice,
		SupplierName:    req.SupplierName,
		SupplierPhone:   req.SupplierPhone,
		SupplierAddress: req.SupplierAddress,
		Actor:           actor,
	})
	if err != nil {
		metrics.PurchasesRecorded.WithLabelValues(outcomeLabel(err)).Inc()
		c.handleError(w, err, logger)
		return
	}

	metrics.PurchasesRecorded.WithLabelValues("recorded").Inc()
	c.writeJSON(w, http.StatusCreated, dto.NewPurchaseResponse(purchase))
}

func (c *PurchasesController) HandleListPurchases(w http.ResponseWriter, r *http.Request) {
	purchases, err := c.useCase.ListPurchases(r.Context())
	if err != nil {
		c.handleError(w, err, c.logger)
		return
	}

	responses := make([]dto.PurchaseResponse, 0, len(purchases))
	for i := range purchases {
		responses = append(responses, dto.NewPurchaseResponse(&purchases[i]))
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{"purchases": responses})
}

func (c *PurchasesController) HandleDeletePurchase(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "purchaseId")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		c.writeValidationError(w, "invalid purchaseId", apperrors.ValidationDetail{
			Field:   "purchaseId",
			Message: "purchaseId must be a positive integer",
		})
		return
	}

	if err := c.useCase.DeletePurchase(r.Context(), id); err != nil {
		c.handleError(w, err, c.logger)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]string{"message": "purchase deleted"})
}

func (c *PurchasesController) handleError(w http.ResponseWriter, err error, logger *zap.Logger) {
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

func (c *PurchasesController) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *PurchasesController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
