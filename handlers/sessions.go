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

type SessionHandler struct {
	Repo      repository.SessionRepositoryInterface
	PhotoRepo repository.PhotoRepositoryInterface
}

func NewSessionHandler(repo repository.SessionRepositoryInterface, photoRepo repository.PhotoRepositoryInterface) *SessionHandler {
	return &SessionHandler{Repo: repo, PhotoRepo: photoRepo}
}

func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.Repo.ListAll()
	if err != nil {
		log.Printf("Error listing sessions: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "list_failed", "failed to list sessions")
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamUint(r, "id")
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "invalid session id")
		return
	}

	session, err := h.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "session not found")
			return
		}
		log.Printf("Error fetching session %d: %v", id, err)
		WriteAPIError(w, http.StatusInternalServerError, "fetch_failed", "failed to fetch session")
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// ListPhotos returns the photos uploaded into one session.
func (h *SessionHandler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamUint(r, "id")
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "invalid session id")
		return
	}

	photos, err := h.PhotoRepo.ListBySession(id)
	if err != nil {
		log.Printf("Error listing photos for session %d: %v", id, err)
		WriteAPIError(w, http.StatusInternalServerError, "list_failed", "failed to list session photos")
		return
	}
	writeJSON(w, http.StatusOK, photos)
}

type sessionPayload struct {
	EventName      string    `json:"event_name"`
	Description    *string   `json:"description,omitempty"`
	EventDate      time.Time `json:"event_date"`
	Location       string    `json:"location"`
	PhotographerID uint      `json:"photographer_id"`
	AlbumID        *uint     `json:"album_id,omitempty"`
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload sessionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "invalid request body")
		return
	}
	if payload.EventName == "" || payload.Location == "" || payload.PhotographerID == 0 {
		WriteAPIError(w, http.StatusBadRequest, "missing_fields", "event_name, location and photographer_id are required")
		return
	}

	session := &models.PhotoSession{
		EventName:      payload.EventName,
		Description:    payload.Description,
		EventDate:      payload.EventDate,
		Location:       payload.Location,
		PhotographerID: payload.PhotographerID,
		AlbumID:        payload.AlbumID,
	}
	if err := h.Repo.Create(session); err != nil {
		log.Printf("Error creating session '%s': %v", payload.EventName, err)
		WriteAPIError(w, http.StatusInternalServerError, "create_failed", "failed to create session")
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (h *SessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamUint(r, "id")
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "invalid session id")
		return
	}

	session, err := h.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "session not found")
			return
		}
		log.Printf("Error fetching session %d: %v", id, err)
		WriteAPIError(w, http.StatusInternalServerError, "fetch_failed", "failed to fetch session")
		return
	}

	var payload struct {
		EventName      *string    `json:"event_name,omitempty"`
		Description    *string    `json:"description,omitempty"`
		EventDate      *time.Time `json:"event_date,omitempty"`
		Location       *string    `json:"location,omitempty"`
		PhotographerID *uint      `json:"photographer_id,omitempty"`
		AlbumID        *uint      `json:"album_id,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "invalid request body")
		return
	}

	if payload.EventName != nil {
		session.EventName = *payload.EventName
	}
	if payload.Description != nil {
		session.Description = payload.Description
	}
	if payload.EventDate != nil {
		session.EventDate = *payload.EventDate
	}
	if payload.Location != nil {
		session.Location = *payload.Location
	}
	if payload.PhotographerID != nil {
		session.PhotographerID = *payload.PhotographerID
	}
	if payload.AlbumID != nil {
		session.AlbumID = payload.AlbumID
	}

	if err := h.Repo.Update(session); err != nil {
		log.Printf("Error updating session %d: %v", id, err)
		WriteAPIError(w, http.StatusInternalServerError, "update_failed", "failed to update session")
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamUint(r, "id")
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "invalid session id")
		return
	}

	if err := h.Repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "session not found")
			return
		}
		log.Printf("Error deleting session %d: %v", id, err)
		WriteAPIError(w, http.StatusInternalServerError, "delete_failed", "failed to delete session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
