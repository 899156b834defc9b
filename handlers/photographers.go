package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"gorm.io/gorm"

	"github.com/omegonstudio/fotospatagonia-backend/models"
	"github.com/omegonstudio/fotospatagonia-backend/repository"
)

type PhotographerHandler struct {
	Repo repository.PhotographerRepositoryInterface
}

func NewPhotographerHandler(repo repository.PhotographerRepositoryInterface) *PhotographerHandler {
	return &PhotographerHandler{Repo: repo}
}

func (h *PhotographerHandler) List(w http.ResponseWriter, r *http.Request) {
	photographers, err := h.Repo.ListAll()
	if err != nil {
		log.Printf("Error listing photographers: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "list_failed", "failed to list photographers")
		return
	}
	writeJSON(w, http.StatusOK, photographers)
}

func (h *PhotographerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamUint(r, "id")
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "invalid photographer id")
		return
	}

	photographer, err := h.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "photographer not found")
			return
		}
		log.Printf("Error fetching photographer %d: %v", id, err)
		WriteAPIError(w, http.StatusInternalServerError, "fetch_failed", "failed to fetch photographer")
		return
	}
	writeJSON(w, http.StatusOK, photographer)
}

type photographerPayload struct {
	Name                 string  `json:"name"`
	CommissionPercentage float64 `json:"commission_percentage"`
	ContactInfo          *string `json:"contact_info,omitempty"`
	UserID               *uint   `json:"user_id,omitempty"`
}

func (h *PhotographerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload photographerPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "invalid request body")
		return
	}
	if payload.Name == "" {
		WriteAPIError(w, http.StatusBadRequest, "missing_fields", "name is required")
		return
	}
	if payload.CommissionPercentage < 0 || payload.CommissionPercentage > 100 {
		WriteAPIError(w, http.StatusBadRequest, "invalid_commission", "commission_percentage must be between 0 and 100")
		return
	}

	photographer := &models.Photographer{
		Name:                 payload.Name,
		CommissionPercentage: payload.CommissionPercentage,
		ContactInfo:          payload.ContactInfo,
		UserID:               payload.UserID,
	}
	if err := h.Repo.Create(photographer); err != nil {
		log.Printf("Error creating photographer '%s': %v", payload.Name, err)
		WriteAPIError(w, http.StatusInternalServerError, "create_failed", "failed to create photographer")
		return
	}
	writeJSON(w, http.StatusCreated, photographer)
}

func (h *PhotographerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamUint(r, "id")
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "invalid photographer id")
		return
	}

	photographer, err := h.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "photographer not found")
			return
		}
		log.Printf("Error fetching photographer %d: %v", id, err)
		WriteAPIError(w, http.StatusInternalServerError, "fetch_failed", "failed to fetch photographer")
		return
	}

	var payload struct {
		Name                 *string  `json:"name,omitempty"`
		CommissionPercentage *float64 `json:"commission_percentage,omitempty"`
		ContactInfo          *string  `json:"contact_info,omitempty"`
		UserID               *uint    `json:"user_id,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "invalid request body")
		return
	}

	if payload.CommissionPercentage != nil && (*payload.CommissionPercentage < 0 || *payload.CommissionPercentage > 100) {
		WriteAPIError(w, http.StatusBadRequest, "invalid_commission", "commission_percentage must be between 0 and 100")
		return
	}

	if payload.Name != nil {
		photographer.Name = *payload.Name
	}
	if payload.CommissionPercentage != nil {
		photographer.CommissionPercentage = *payload.CommissionPercentage
	}
	if payload.ContactInfo != nil {
		photographer.ContactInfo = payload.ContactInfo
	}
	if payload.UserID != nil {
		photographer.UserID = payload.UserID
	}

	if err := h.Repo.Update(photographer); err != nil {
		log.Printf("Error updating photographer %d: %v", id, err)
		WriteAPIError(w, http.StatusInternalServerError, "update_failed", "failed to update photographer")
		return
	}
	writeJSON(w, http.StatusOK, photographer)
}

func (h *PhotographerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamUint(r, "id")
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "invalid photographer id")
		return
	}

	if err := h.Repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "photographer not found")
			return
		}
		log.Printf("Error deleting photographer %d: %v", id, err)
		WriteAPIError(w, http.StatusInternalServerError, "delete_failed", "failed to delete photographer")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
