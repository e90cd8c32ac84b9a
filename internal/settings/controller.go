package settings

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"menvy/internal/domain"
	"menvy/internal/dto"
	apperrors "menvy/internal/errors"
)

type Repository interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Update(ctx context.Context, s *domain.Settings) error
}

type Controller struct {
	repo   Repository
	logger *zap.Logger
}

func NewController(repo Repository, logger *zap.Logger) *Controller {
	return &Controller{
		repo:   repo,
		logger: logger,
	}
}

func (c *Controller) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	s, err := c.repo.Get(r.Context())
	if err != nil {
		c.logger.Error("loading settings failed", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "INTERNAL_ERROR",
			"message": "an unexpected error occurred",
		})
		return
	}

	c.writeJSON(w, http.StatusOK, dto.NewSettingsDTO(s))
}

func (c *Controller) HandleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req dto.SettingsDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
			Error:   "VALIDATION_ERROR",
			Message: "invalid JSON body",
			Details: []apperrors.ValidationDetail{{Field: "body", Message: "request body must be valid JSON"}},
		})
		return
	}

	if err := validateSettings(req); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
			Error:   "VALIDATION_ERROR",
			Message: ve.Message,
			Details: ve.Details,
		})
		return
	}

	s := req.ToDomain()
	if err := c.repo.Update(r.Context(), &s); err != nil {
		c.logger.Error("updating settings failed", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "INTERNAL_ERROR",
			"message": "an unexpected error occurred",
		})
		return
	}

	c.writeJSON(w, http.StatusOK, dto.NewSettingsDTO(&s))
}

func validateSettings(req dto.SettingsDTO) error {
	var details []apperrors.ValidationDetail

	if req.StoreName == "" {
		details = append(details, apperrors.ValidationDetail{Field: "storeName", Message: "storeName is required"})
	}
	if req.VatRate < 0 || req.VatRate > 100 {
		details = append(details, apperrors.ValidationDetail{Field: "vatRate", Message: "vatRate must be between 0 and 100"})
	}
	if req.SessionTimeoutHours < 1 || req.SessionTimeoutHours > 168 {
		details = append(details, apperrors.ValidationDetail{Field: "sessionTimeout", Message: "sessionTimeout must be between 1 and 168 hours"})
	}
	if req.MaxLoginAttempts < 1 {
		details = append(details, apperrors.ValidationDetail{Field: "maxLoginAttempts", Message: "maxLoginAttempts must be at least 1"})
	}
	if len(req.BusinessHours) > 0 && !json.Valid(req.BusinessHours) {
		details = append(details, apperrors.ValidationDetail{Field: "businessHours", Message: "businessHours must be a valid JSON document"})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
