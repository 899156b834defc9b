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

type TagHandler struct {
	Repo repository.TagRepositoryInterface
}

func NewTagHandler(repo repository.TagRepositoryInterface) *TagHandler {
	return &TagHandler{Repo: repo}
}

func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	tags, err := h.Repo.ListAll()
	if err != nil {
		log.Printf("Error listing tags: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "list_failed", "failed to list tags")
		return
	}
	writeJSON(w, http.StatusOK, tags)
}

func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "invalid request body")
		return
	}
	if payload.Name == "" {
		WriteAPIError(w, http.StatusBadRequest, "missing_fields", "name is required")
		return
	}

	tag := &models.Tag{Name: payload.Name}
	if err := h.Repo.Create(tag); err != nil {
		log.Printf("Error creating tag '%s': %v", payload.Name, err)
		WriteAPIError(w, http.StatusInternalServerError, "create_failed", "failed to create tag")
		return
	}
	writeJSON(w, http.StatusCreated, tag)
}

func (h *TagHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamUint(r, "id")
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "invalid tag id")
		return
	}

	var payload struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "invalid request body")
		return
	}
	if payload.Name == "" {
		WriteAPIError(w, http.StatusBadRequest, "missing_fields", "name is required")
		return
	}

	if err := h.Repo.Update(id, payload.Name); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "tag not found")
			return
		}
		log.Printf("Error updating tag %d: %v", id, err)
		WriteAPIError(w, http.StatusInternalServerError, "update_failed", "failed to update tag")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"id": id, "name": payload.Name})
}

func (h *TagHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamUint(r, "id")
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "invalid tag id")
		return
	}

	if err := h.Repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "tag not found")
			return
		}
		log.Printf("Error deleting tag %d: %v", id, err)
		WriteAPIError(w, http.StatusInternalServerError, "delete_failed", "failed to delete tag")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
