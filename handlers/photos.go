package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"gorm.io/gorm"

	"github.com/omegonstudio/fotospatagonia-backend/media"
	"github.com/omegonstudio/fotospatagonia-backend/repository"
)

type PhotoHandler struct {
	Repo  repository.PhotoRepositoryInterface
	Store media.Store
}

func NewPhotoHandler(repo repository.PhotoRepositoryInterface, store media.Store) *PhotoHandler {
	return &PhotoHandler{Repo: repo, Store: store}
}

func (h *PhotoHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamUint(r, "id")
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "invalid photo id")
		return
	}

	photo, err := h.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "photo not found")
			return
		}
		log.Printf("Error fetching photo %d: %v", id, err)
		WriteAPIError(w, http.StatusInternalServerError, "fetch_failed", "failed to fetch photo")
		return
	}
	writeJSON(w, http.StatusOK, photo)
}

type updatePhotoPayload struct {
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	TagIDs      []uint   `json:"tag_ids,omitempty"`
}

func (h *PhotoHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamUint(r, "id")
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "invalid photo id")
		return
	}

	var payload updatePhotoPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "invalid request body")
		return
	}
	if payload.Price != nil && *payload.Price < 0 {
		WriteAPIError(w, http.StatusBadRequest, "invalid_price", "price cannot be negative")
		return
	}

	if err := h.Repo.Update(id, payload.Description, payload.Price, payload.TagIDs); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "photo not found")
			return
		}
		log.Printf("Error updating photo %d: %v", id, err)
		WriteAPIError(w, http.StatusInternalServerError, "update_failed", "failed to update photo")
		return
	}

	photo, err := h.Repo.GetByID(id)
	if err != nil {
		log.Printf("Error fetching updated photo %d: %v", id, err)
		writeJSON(w, http.StatusOK, map[string]interface{}{"id": id})
		return
	}
	writeJSON(w, http.StatusOK, photo)
}

// Delete removes the photo row and its stored renditions.
func (h *PhotoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamUint(r, "id")
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "invalid photo id")
		return
	}

	photo, err := h.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "photo not found")
			return
		}
		log.Printf("Error fetching photo %d: %v", id, err)
		WriteAPIError(w, http.StatusInternalServerError, "fetch_failed", "failed to fetch photo")
		return
	}

	if err := h.Repo.Delete(id); err != nil {
		log.Printf("Error deleting photo %d: %v", id, err)
		WriteAPIError(w, http.StatusInternalServerError, "delete_failed", "failed to delete photo")
		return
	}

	// sold photos stay in order archives; only the stored assets go
	for _, rel := range []string{photo.URL, photo.WatermarkURL} {
		if rel != "" {
			if err := h.Store.Delete(rel); err != nil {
				log.Printf("Error deleting asset %s for photo %d: %v", rel, id, err)
			}
		}
	}
	if photo.ThumbnailURL != nil && *photo.ThumbnailURL != "" {
		if err := h.Store.Delete(*photo.ThumbnailURL); err != nil {
			log.Printf("Error deleting thumbnail for photo %d: %v", id, err)
		}
	}

	w.WriteHeader(http.StatusNoContent)
}
