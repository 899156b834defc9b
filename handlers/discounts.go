package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/omegonstudio/fotospatagonia-backend/models"
	"github.com/omegonstudio/fotospatagonia-backend/repository"
)

type DiscountHandler struct {
	Repo repository.DiscountRepositoryInterface
}

func NewDiscountHandler(repo repository.DiscountRepositoryInterface) *DiscountHandler {
	return &DiscountHandler{Repo: repo}
}

func (h *DiscountHandler) List(w http.ResponseWriter, r *http.Request) {
	discounts, err := h.Repo.ListAll()
	if err != nil {
		log.Printf("Error listing discounts: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "list_failed", "failed to list discounts")
		return
	}
	writeJSON(w, http.StatusOK, discounts)
}

// Validate checks a customer-entered code without exposing inactive or
// expired ones.
func (h *DiscountHandler) Validate(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		WriteAPIError(w, http.StatusBadRequest, "missing_code", "code query parameter is required")
		return
	}

	discount, err := h.Repo.GetByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "discount code not found")
			return
		}
		log.Printf("Error validating discount code '%s': %v", code, err)
		WriteAPIError(w, http.StatusInternalServerError, "validate_failed", "failed to validate discount code")
		return
	}

	if !discount.IsRedeemable(time.Now()) {
		WriteAPIError(w, http.StatusGone, "not_redeemable", "discount code is expired or inactive")
		return
	}
	writeJSON(w, http.StatusOK, discount)
}

type discountPayload struct {
	Code       string     `json:"code"`
	Percentage *float64   `json:"percentage,omitempty"`
	Value      *float64   `json:"value,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	IsActive   *bool      `json:"is_active,omitempty"`
}

func (h *DiscountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload discountPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "invalid request body")
		return
	}
	if payload.Code == "" {
		WriteAPIError(w, http.StatusBadRequest, "missing_fields", "code is required")
		return
	}
	if (payload.Percentage == nil) == (payload.Value == nil) {
		WriteAPIError(w, http.StatusBadRequest, "invalid_discount", "exactly one of percentage or value must be set")
		return
	}
	if payload.Percentage != nil && (*payload.Percentage <= 0 || *payload.Percentage > 100) {
		WriteAPIError(w, http.StatusBadRequest, "invalid_percentage", "percentage must be in (0, 100]")
		return
	}
	if payload.Value != nil && *payload.Value <= 0 {
		WriteAPIError(w, http.StatusBadRequest, "invalid_value", "value must be positive")
		return
	}

	discount := &models.Discount{
		Code:       payload.Code,
		Percentage: payload.Percentage,
		Value:      payload.Value,
		ExpiresAt:  payload.ExpiresAt,
		IsActive:   true,
	}
	if payload.IsActive != nil {
		discount.IsActive = *payload.IsActive
	}

	if err := h.Repo.Create(discount); err != nil {
		log.Printf("Error creating discount '%s': %v", payload.Code, err)
		WriteAPIError(w, http.StatusInternalServerError, "create_failed", "failed to create discount")
		return
	}
	writeJSON(w, http.StatusCreated, discount)
}

func (h *DiscountHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamUint(r, "id")
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "invalid discount id")
		return
	}

	discount, err := h.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "discount not found")
			return
		}
		log.Printf("Error fetching discount %d: %v", id, err)
		WriteAPIError(w, http.StatusInternalServerError, "fetch_failed", "failed to fetch discount")
		return
	}

	var payload struct {
		ExpiresAt *time.Time `json:"expires_at,omitempty"`
		IsActive  *bool      `json:"is_active,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "invalid request body")
		return
	}

	// amounts are immutable once a code exists; orders reference them
	if payload.ExpiresAt != nil {
		discount.ExpiresAt = payload.ExpiresAt
	}
	if payload.IsActive != nil {
		discount.IsActive = *payload.IsActive
	}

	if err := h.Repo.Update(discount); err != nil {
		log.Printf("Error updating discount %d: %v", id, err)
		WriteAPIError(w, http.StatusInternalServerError, "update_failed", "failed to update discount")
		return
	}
	writeJSON(w, http.StatusOK, discount)
}

func (h *DiscountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamUint(r, "id")
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "invalid discount id")
		return
	}

	if err := h.Repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "discount not found")
			return
		}
		log.Printf("Error deleting discount %d: %v", id, err)
		WriteAPIError(w, http.StatusInternalServerError, "delete_failed", "failed to delete discount")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
