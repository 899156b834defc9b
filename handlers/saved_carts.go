package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omegonstudio/fotospatagonia-backend/models"
	"github.com/omegonstudio/fotospatagonia-backend/repository"
)

// SavedCartHandler manages recoverable cart snapshots. Customers save a
// session to get a link they can reopen on another device; staff can
// list and prune the snapshots.
type SavedCartHandler struct {
	Repo     repository.SavedCartRepositoryInterface
	CartRepo repository.CartRepositoryInterface
}

func NewSavedCartHandler(repo repository.SavedCartRepositoryInterface, cartRepo repository.CartRepositoryInterface) *SavedCartHandler {
	return &SavedCartHandler{Repo: repo, CartRepo: cartRepo}
}

// CreateSession snapshots a cart and returns the recovery record with
// its public ID.
func (h *SavedCartHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		CartID uint `json:"cart_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeInvalidPayload(w)
		return
	}
	if payload.CartID == 0 {
		WriteAPIError(w, http.StatusBadRequest, "missing_cart", "cart_id is required")
		return
	}

	cart, err := h.CartRepo.GetByID(payload.CartID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "cart not found")
			return
		}
		log.Printf("Error fetching cart %d: %v", payload.CartID, err)
		WriteAPIError(w, http.StatusInternalServerError, "fetch_failed", "failed to fetch cart")
		return
	}

	publicID, err := uuid.NewRandom()
	if err != nil {
		log.Printf("Error generating saved cart id: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "create_failed", "failed to save cart session")
		return
	}

	saved := &models.SavedCart{PublicID: publicID.String(), CartID: cart.ID}
	if err := h.Repo.Create(saved); err != nil {
		log.Printf("Error saving cart session for cart %d: %v", cart.ID, err)
		WriteAPIError(w, http.StatusInternalServerError, "create_failed", "failed to save cart session")
		return
	}

	saved.Cart = cart
	writeJSON(w, http.StatusCreated, saved)
}

// GetSession retrieves a saved cart by its public recovery ID.
func (h *SavedCartHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	publicID := chi.URLParam(r, "publicID")

	saved, err := h.Repo.GetByPublicID(publicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "saved cart not found")
			return
		}
		log.Printf("Error fetching saved cart %s: %v", publicID, err)
		WriteAPIError(w, http.StatusInternalServerError, "fetch_failed", "failed to fetch saved cart")
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// List returns all saved cart snapshots.
func (h *SavedCartHandler) List(w http.ResponseWriter, r *http.Request) {
	saved, err := h.Repo.ListAll()
	if err != nil {
		log.Printf("Error listing saved carts: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "list_failed", "failed to list saved carts")
		return
	}
	if saved == nil {
		saved = []models.SavedCart{}
	}
	writeJSON(w, http.StatusOK, saved)
}

// Delete removes a saved cart snapshot.
func (h *SavedCartHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamUint(r, "id")
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "invalid saved cart id")
		return
	}

	if err := h.Repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "saved cart not found")
			return
		}
		log.Printf("Error deleting saved cart %d: %v", id, err)
		WriteAPIError(w, http.StatusInternalServerError, "delete_failed", "failed to delete saved cart")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
