package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"gorm.io/gorm"

	"github.com/omegonstudio/fotospatagonia-backend/models"
	"github.com/omegonstudio/fotospatagonia-backend/services"
)

type CartHandler struct {
	Carts *services.CartService
}

func NewCartHandler(carts *services.CartService) *CartHandler {
	return &CartHandler{Carts: carts}
}

// cartResponse wraps a cart with its computed total so the storefront
// does not have to sum line prices itself.
type cartResponse struct {
	*models.Cart
	Total float64 `json:"total"`
}

func writeCart(w http.ResponseWriter, cart *models.Cart) {
	writeJSON(w, http.StatusOK, cartResponse{Cart: cart, Total: cart.Total()})
}

// cartIdentity resolves the cart owner for a request: the authenticated
// user when OptionalAuthMiddleware attached one, otherwise the guest_id
// query parameter.
func cartIdentity(r *http.Request) (userID *uint, guestID *string, ok bool) {
	if user, authed := r.Context().Value(UserContextKey).(*models.User); authed && user != nil {
		return &user.ID, nil, true
	}
	if guest := r.URL.Query().Get("guest_id"); guest != "" {
		return nil, &guest, true
	}
	return nil, nil, false
}

func (h *CartHandler) writeCartError(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		WriteAPIError(w, http.StatusNotFound, "not_found", "cart item not found")
		return
	}
	log.Printf("Error during cart %s: %v", op, err)
	WriteAPIError(w, http.StatusInternalServerError, "cart_error", "cart operation failed")
}

// Get returns the caller's cart, creating an empty one on first access.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, guestID, ok := cartIdentity(r)
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "missing_identity", "log in or pass a guest_id query parameter")
		return
	}

	cart, err := h.Carts.GetOrCreate(userID, guestID)
	if err != nil {
		h.writeCartError(w, err, "fetch")
		return
	}
	writeCart(w, cart)
}

type cartItemPayload struct {
	PhotoID  uint `json:"photo_id"`
	Quantity int  `json:"quantity"`
}

// AddItem puts a photo in the cart, merging quantities when the photo
// is already there.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, guestID, ok := cartIdentity(r)
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "missing_identity", "log in or pass a guest_id query parameter")
		return
	}

	var payload cartItemPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeInvalidPayload(w)
		return
	}
	if payload.PhotoID == 0 {
		WriteAPIError(w, http.StatusBadRequest, "missing_photo", "photo_id is required")
		return
	}

	cart, err := h.Carts.AddItem(userID, guestID, payload.PhotoID, payload.Quantity)
	if err != nil {
		h.writeCartError(w, err, "add item")
		return
	}
	writeCart(w, cart)
}

// UpdateItem sets the quantity on a cart line. Quantity zero removes
// the line.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, guestID, ok := cartIdentity(r)
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "missing_identity", "log in or pass a guest_id query parameter")
		return
	}

	itemID, ok := urlParamUint(r, "itemID")
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "invalid cart item id")
		return
	}

	var payload struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeInvalidPayload(w)
		return
	}

	cart, err := h.Carts.UpdateItem(userID, guestID, itemID, payload.Quantity)
	if err != nil {
		h.writeCartError(w, err, "update item")
		return
	}
	writeCart(w, cart)
}

// RemoveItem deletes a line from the cart.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, guestID, ok := cartIdentity(r)
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "missing_identity", "log in or pass a guest_id query parameter")
		return
	}

	itemID, ok := urlParamUint(r, "itemID")
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "invalid cart item id")
		return
	}

	cart, err := h.Carts.RemoveItem(userID, guestID, itemID)
	if err != nil {
		h.writeCartError(w, err, "remove item")
		return
	}
	writeCart(w, cart)
}

// Empty removes all lines from the cart.
func (h *CartHandler) Empty(w http.ResponseWriter, r *http.Request) {
	userID, guestID, ok := cartIdentity(r)
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "missing_identity", "log in or pass a guest_id query parameter")
		return
	}

	cart, err := h.Carts.Empty(userID, guestID)
	if err != nil {
		h.writeCartError(w, err, "empty")
		return
	}
	writeCart(w, cart)
}

type cartDetailsPayload struct {
	UserEmail      *string `json:"user_email,omitempty"`
	DiscountCode   *string `json:"discount_code,omitempty"`
	PhotoSessionID *uint   `json:"photo_session_id,omitempty"`
}

// Update stores checkout details on the cart ahead of order creation.
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, guestID, ok := cartIdentity(r)
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "missing_identity", "log in or pass a guest_id query parameter")
		return
	}

	var payload cartDetailsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeInvalidPayload(w)
		return
	}

	cart, err := h.Carts.SetDetails(userID, guestID, payload.UserEmail, payload.DiscountCode, payload.PhotoSessionID)
	if err != nil {
		h.writeCartError(w, err, "update")
		return
	}
	writeCart(w, cart)
}
