package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sort"

	"gorm.io/gorm"

	"github.com/omegonstudio/fotospatagonia-backend/models"
	"github.com/omegonstudio/fotospatagonia-backend/repository"
	"github.com/omegonstudio/fotospatagonia-backend/utils"
)

type AlbumHandler struct {
	Repo repository.AlbumRepositoryInterface
}

func NewAlbumHandler(repo repository.AlbumRepositoryInterface) *AlbumHandler {
	return &AlbumHandler{Repo: repo}
}

func (h *AlbumHandler) List(w http.ResponseWriter, r *http.Request) {
	albums, err := h.Repo.ListAll()
	if err != nil {
		log.Printf("Error listing albums: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "list_failed", "failed to list albums")
		return
	}
	writeJSON(w, http.StatusOK, albums)
}

func (h *AlbumHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamUint(r, "id")
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "invalid album id")
		return
	}

	album, err := h.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "album not found")
			return
		}
		log.Printf("Error fetching album %d: %v", id, err)
		WriteAPIError(w, http.StatusInternalServerError, "fetch_failed", "failed to fetch album")
		return
	}
	writeJSON(w, http.StatusOK, album)
}

// ListPhotos returns the album's photos in natural filename order, the
// order customers expect for numbered event shots.
func (h *AlbumHandler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamUint(r, "id")
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "invalid album id")
		return
	}

	photos, err := h.Repo.ListPhotos(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "album not found")
			return
		}
		log.Printf("Error listing photos for album %d: %v", id, err)
		WriteAPIError(w, http.StatusInternalServerError, "list_failed", "failed to list album photos")
		return
	}

	filenames := make([]string, len(photos))
	for i, p := range photos {
		filenames[i] = p.Filename
	}
	utils.SortFilenamesNatural(filenames)
	rank := make(map[string]int, len(filenames))
	for i, name := range filenames {
		if _, seen := rank[name]; !seen {
			rank[name] = i
		}
	}
	sort.SliceStable(photos, func(i, j int) bool {
		return rank[photos[i].Filename] < rank[photos[j].Filename]
	})

	writeJSON(w, http.StatusOK, photos)
}

type albumPayload struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	TagIDs      []uint  `json:"tag_ids,omitempty"`
}

func (h *AlbumHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload albumPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "invalid request body")
		return
	}
	if payload.Name == "" {
		WriteAPIError(w, http.StatusBadRequest, "missing_fields", "name is required")
		return
	}

	album := &models.Album{
		Name:        payload.Name,
		Description: payload.Description,
	}
	for _, tagID := range payload.TagIDs {
		album.Tags = append(album.Tags, &models.Tag{ID: tagID})
	}

	if err := h.Repo.Create(album); err != nil {
		log.Printf("Error creating album '%s': %v", payload.Name, err)
		WriteAPIError(w, http.StatusInternalServerError, "create_failed", "failed to create album")
		return
	}
	writeJSON(w, http.StatusCreated, album)
}

type updateAlbumPayload struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	TagIDs      []uint  `json:"tag_ids,omitempty"`
}

func (h *AlbumHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamUint(r, "id")
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "invalid album id")
		return
	}

	var payload updateAlbumPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "invalid request body")
		return
	}

	if err := h.Repo.Update(id, payload.Name, payload.Description, payload.TagIDs); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "album not found")
			return
		}
		log.Printf("Error updating album %d: %v", id, err)
		WriteAPIError(w, http.StatusInternalServerError, "update_failed", "failed to update album")
		return
	}

	album, err := h.Repo.GetByID(id)
	if err != nil {
		log.Printf("Error fetching updated album %d: %v", id, err)
		writeJSON(w, http.StatusOK, map[string]interface{}{"id": id})
		return
	}
	writeJSON(w, http.StatusOK, album)
}

func (h *AlbumHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamUint(r, "id")
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "invalid album id")
		return
	}

	if err := h.Repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "album not found")
			return
		}
		log.Printf("Error deleting album %d: %v", id, err)
		WriteAPIError(w, http.StatusInternalServerError, "delete_failed", "failed to delete album")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
