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

type ComboHandler struct {
	Repo repository.ComboRepositoryInterface
}

func NewComboHandler(repo repository.ComboRepositoryInterface) *ComboHandler {
	return &ComboHandler{Repo: repo}
}

// ListActive returns the combos the storefront offers.
func (h *ComboHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	combos, err := h.Repo.ListActive()
	if err != nil {
		log.Printf("Error listing active combos: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "list_failed", "failed to list combos")
		return
	}
	writeJSON(w, http.StatusOK, combos)
}

// ListAll returns every combo, including inactive ones, for admin views.
func (h *ComboHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	combos, err := h.Repo.ListAll()
	if err != nil {
		log.Printf("Error listing combos: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "list_failed", "failed to list combos")
		return
	}
	writeJSON(w, http.StatusOK, combos)
}

func (h *ComboHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamUint(r, "id")
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "invalid combo id")
		return
	}

	combo, err := h.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "combo not found")
			return
		}
		log.Printf("Error fetching combo %d: %v", id, err)
		WriteAPIError(w, http.StatusInternalServerError, "fetch_failed", "failed to fetch combo")
		return
	}
	writeJSON(w, http.StatusOK, combo)
}

type createComboPayload struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Price       float64 `json:"price"`
	TotalPhotos int     `json:"total_photos"`
	IsFullAlbum bool    `json:"is_full_album"`
	Active      *bool   `json:"active,omitempty"`
}

func (h *ComboHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload createComboPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "invalid request body")
		return
	}

	if payload.Name == "" {
		WriteAPIError(w, http.StatusBadRequest, "missing_fields", "name is required")
		return
	}
	if payload.Price < 0 {
		WriteAPIError(w, http.StatusBadRequest, "invalid_price", "price cannot be negative")
		return
	}
	// full-album combos carry no bundle size; regular combos need one
	if !payload.IsFullAlbum && payload.TotalPhotos <= 0 {
		WriteAPIError(w, http.StatusBadRequest, "invalid_total_photos", "total_photos must be positive for non full-album combos")
		return
	}

	combo := &models.Combo{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		TotalPhotos: payload.TotalPhotos,
		IsFullAlbum: payload.IsFullAlbum,
		Active:      true,
	}
	if payload.Active != nil {
		combo.Active = *payload.Active
	}

	if err := h.Repo.Create(combo); err != nil {
		log.Printf("Error creating combo '%s': %v", payload.Name, err)
		WriteAPIError(w, http.StatusInternalServerError, "create_failed", "failed to create combo")
		return
	}
	writeJSON(w, http.StatusCreated, combo)
}

type updateComboPayload struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	TotalPhotos *int     `json:"total_photos,omitempty"`
	IsFullAlbum *bool    `json:"is_full_album,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}

func (h *ComboHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamUint(r, "id")
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "invalid combo id")
		return
	}

	var payload updateComboPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "invalid request body")
		return
	}
	if payload.Price != nil && *payload.Price < 0 {
		WriteAPIError(w, http.StatusBadRequest, "invalid_price", "price cannot be negative")
		return
	}

	err := h.Repo.Update(id, payload.Name, payload.Description, payload.Price, payload.TotalPhotos, payload.IsFullAlbum, payload.Active)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "combo not found")
			return
		}
		log.Printf("Error updating combo %d: %v", id, err)
		WriteAPIError(w, http.StatusInternalServerError, "update_failed", "failed to update combo")
		return
	}

	combo, err := h.Repo.GetByID(id)
	if err != nil {
		log.Printf("Error fetching updated combo %d: %v", id, err)
		writeJSON(w, http.StatusOK, map[string]interface{}{"id": id})
		return
	}
	writeJSON(w, http.StatusOK, combo)
}

func (h *ComboHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamUint(r, "id")
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "invalid combo id")
		return
	}

	if err := h.Repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "combo not found")
			return
		}
		log.Printf("Error deleting combo %d: %v", id, err)
		WriteAPIError(w, http.StatusInternalServerError, "delete_failed", "failed to delete combo")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
