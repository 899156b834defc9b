package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/omegonstudio/fotospatagonia-backend/models"
	"github.com/omegonstudio/fotospatagonia-backend/repository"
	"github.com/omegonstudio/fotospatagonia-backend/services"
)

type OrderHandler struct {
	Repo         repository.OrderRepositoryInterface
	Checkout     *services.CheckoutService
	ArchivesPath string
}

func NewOrderHandler(repo repository.OrderRepositoryInterface, checkout *services.CheckoutService, archivesPath string) *OrderHandler {
	return &OrderHandler{Repo: repo, Checkout: checkout, ArchivesPath: archivesPath}
}

type createOrderPayload struct {
	PhotoIDs      []uint  `json:"photo_ids"`
	PaymentMethod string  `json:"payment_method"`
	DiscountCode  *string `json:"discount_code,omitempty"`
	GuestID       *string `json:"guest_id,omitempty"`
	CustomerEmail *string `json:"customer_email,omitempty"`
}

// Create starts a checkout. Guests may create orders; a logged-in user
// gets the order attached to their account.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload createOrderPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "invalid request body")
		return
	}

	in := services.CreateOrderInput{
		PhotoIDs:      payload.PhotoIDs,
		PaymentMethod: payload.PaymentMethod,
		DiscountCode:  payload.DiscountCode,
		GuestID:       payload.GuestID,
		CustomerEmail: payload.CustomerEmail,
	}
	if user, ok := r.Context().Value(UserContextKey).(*models.User); ok && user != nil {
		in.UserID = &user.ID
	}

	order, quote, err := h.Checkout.CreateOrder(in)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptySelection):
			WriteAPIError(w, http.StatusBadRequest, "empty_selection", "order has no photos")
		case errors.Is(err, services.ErrUnknownPaymentFlow):
			WriteAPIError(w, http.StatusBadRequest, "invalid_payment_method", "unknown payment method")
		case errors.Is(err, services.ErrDiscountNotValid):
			WriteAPIError(w, http.StatusGone, "not_redeemable", "discount code is expired or inactive")
		case errors.Is(err, gorm.ErrRecordNotFound):
			WriteAPIError(w, http.StatusNotFound, "not_found", "one or more photos not found")
		default:
			log.Printf("Error creating order: %v", err)
			WriteAPIError(w, http.StatusInternalServerError, "create_failed", "failed to create order")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"order": order,
		"quote": quote,
	})
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Repo.ListAll()
	if err != nil {
		log.Printf("Error listing orders: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "list_failed", "failed to list orders")
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// Get looks an order up by its public id so customers can poll their
// order from the confirmation page.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	publicID := chi.URLParam(r, "publicID")

	order, err := h.Repo.GetByPublicID(publicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "order not found")
			return
		}
		log.Printf("Error fetching order %s: %v", publicID, err)
		WriteAPIError(w, http.StatusInternalServerError, "fetch_failed", "failed to fetch order")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

type updateOrderStatusPayload struct {
	OrderStatus       *string `json:"order_status,omitempty"`
	PaymentStatus     *string `json:"payment_status,omitempty"`
	ExternalPaymentID *string `json:"external_payment_id,omitempty"`
}

// UpdateStatus transitions an order. Marking the payment paid goes
// through the checkout service so earnings get recorded.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	publicID := chi.URLParam(r, "publicID")

	var payload updateOrderStatusPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "invalid request body")
		return
	}

	if payload.PaymentStatus != nil && *payload.PaymentStatus == models.PaymentStatusPaid {
		order, err := h.Checkout.MarkPaid(publicID, payload.ExternalPaymentID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrOrderAlreadyPaid):
				writeJSON(w, http.StatusOK, order)
			case errors.Is(err, gorm.ErrRecordNotFound):
				WriteAPIError(w, http.StatusNotFound, "not_found", "order not found")
			default:
				log.Printf("Error marking order %s paid: %v", publicID, err)
				WriteAPIError(w, http.StatusInternalServerError, "update_failed", "failed to update order")
			}
			return
		}
		writeJSON(w, http.StatusOK, order)
		return
	}

	order, err := h.Repo.GetByPublicID(publicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "order not found")
			return
		}
		log.Printf("Error fetching order %s: %v", publicID, err)
		WriteAPIError(w, http.StatusInternalServerError, "fetch_failed", "failed to fetch order")
		return
	}

	if err := h.Repo.UpdateStatus(order.ID, payload.OrderStatus, payload.PaymentStatus, payload.ExternalPaymentID); err != nil {
		log.Printf("Error updating order %s: %v", publicID, err)
		WriteAPIError(w, http.StatusInternalServerError, "update_failed", "failed to update order")
		return
	}

	updated, err := h.Repo.GetByID(order.ID)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"public_id": publicID})
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Archive builds (or reuses) the order's zip of originals and streams it.
func (h *OrderHandler) Archive(w http.ResponseWriter, r *http.Request) {
	publicID := chi.URLParam(r, "publicID")

	archiveName, err := h.Checkout.BuildArchive(publicID)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			WriteAPIError(w, http.StatusNotFound, "not_found", "order not found")
		case errors.Is(err, services.ErrOrderNotPaid):
			WriteAPIError(w, http.StatusPaymentRequired, "not_paid", "order is not paid")
		default:
			log.Printf("Error building archive for order %s: %v", publicID, err)
			WriteAPIError(w, http.StatusInternalServerError, "archive_failed", "failed to build order archive")
		}
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+archiveName+"\"")
	http.ServeFile(w, r, filepath.Join(h.ArchivesPath, archiveName))
}

// Earnings lists the earnings recorded for one order.
func (h *OrderHandler) Earnings(w http.ResponseWriter, r *http.Request) {
	publicID := chi.URLParam(r, "publicID")

	order, err := h.Repo.GetByPublicID(publicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "order not found")
			return
		}
		log.Printf("Error fetching order %s: %v", publicID, err)
		WriteAPIError(w, http.StatusInternalServerError, "fetch_failed", "failed to fetch order")
		return
	}

	earnings, err := h.Repo.ListEarningsByOrder(order.ID)
	if err != nil {
		log.Printf("Error listing earnings for order %s: %v", publicID, err)
		WriteAPIError(w, http.StatusInternalServerError, "list_failed", "failed to list earnings")
		return
	}
	writeJSON(w, http.StatusOK, earnings)
}
