package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/omegonstudio/fotospatagonia-backend/models"
	"github.com/omegonstudio/fotospatagonia-backend/services"
)

// fakeCartRepo is an in-memory cart store. Photos referenced by items
// are resolved against the prices map so cart totals can be asserted.
type fakeCartRepo struct {
	carts  map[uint]*models.Cart
	items  map[uint]*models.CartItem
	prices map[uint]float64
	nextID uint
}

func newFakeCartRepo(prices map[uint]float64) *fakeCartRepo {
	return &fakeCartRepo{
		carts:  make(map[uint]*models.Cart),
		items:  make(map[uint]*models.CartItem),
		prices: prices,
		nextID: 1,
	}
}

func (r *fakeCartRepo) Create(cart *models.Cart) error {
	cart.ID = r.nextID
	r.nextID++
	stored := *cart
	r.carts[cart.ID] = &stored
	return nil
}

func (r *fakeCartRepo) GetByID(id uint) (*models.Cart, error) {
	cart, ok := r.carts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *cart
	out.Items = nil
	for _, item := range r.items {
		if item.CartID != id {
			continue
		}
		line := *item
		if price, ok := r.prices[item.PhotoID]; ok {
			line.Photo = &models.Photo{ID: item.PhotoID, Price: price}
		}
		out.Items = append(out.Items, line)
	}
	return &out, nil
}

func (r *fakeCartRepo) GetByUserID(userID uint) (*models.Cart, error) {
	for id, cart := range r.carts {
		if cart.UserID != nil && *cart.UserID == userID {
			return r.GetByID(id)
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCartRepo) GetByGuestID(guestID string) (*models.Cart, error) {
	for id, cart := range r.carts {
		if cart.GuestID != nil && *cart.GuestID == guestID {
			return r.GetByID(id)
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCartRepo) SetDetails(cartID uint, userEmail *string, discountCode *string, photoSessionID *uint) error {
	cart, ok := r.carts[cartID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if userEmail != nil {
		cart.UserEmail = userEmail
	}
	if discountCode != nil {
		cart.DiscountCode = discountCode
	}
	if photoSessionID != nil {
		cart.PhotoSessionID = photoSessionID
	}
	return nil
}

func (r *fakeCartRepo) Delete(cartID uint) error {
	delete(r.carts, cartID)
	return r.DeleteItems(cartID)
}

func (r *fakeCartRepo) FindItemByPhoto(cartID, photoID uint) (*models.CartItem, error) {
	for _, item := range r.items {
		if item.CartID == cartID && item.PhotoID == photoID {
			out := *item
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCartRepo) GetItem(cartID, itemID uint) (*models.CartItem, error) {
	item, ok := r.items[itemID]
	if !ok || item.CartID != cartID {
		return nil, gorm.ErrRecordNotFound
	}
	out := *item
	return &out, nil
}

func (r *fakeCartRepo) CreateItem(item *models.CartItem) error {
	item.ID = r.nextID
	r.nextID++
	stored := *item
	r.items[item.ID] = &stored
	return nil
}

func (r *fakeCartRepo) UpdateItemQuantity(itemID uint, quantity int) error {
	item, ok := r.items[itemID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	item.Quantity = quantity
	return nil
}

func (r *fakeCartRepo) MoveItem(itemID, cartID uint) error {
	item, ok := r.items[itemID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	item.CartID = cartID
	return nil
}

func (r *fakeCartRepo) DeleteItem(itemID uint) error {
	if _, ok := r.items[itemID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.items, itemID)
	return nil
}

func (r *fakeCartRepo) DeleteItems(cartID uint) error {
	for id, item := range r.items {
		if item.CartID == cartID {
			delete(r.items, id)
		}
	}
	return nil
}

func newCartRouter(prices map[uint]float64) chi.Router {
	h := NewCartHandler(services.NewCartService(newFakeCartRepo(prices)))
	r := chi.NewRouter()
	r.Get("/cart", h.Get)
	r.Put("/cart", h.Update)
	r.Delete("/cart", h.Empty)
	r.Post("/cart/items", h.AddItem)
	r.Put("/cart/items/{itemID}", h.UpdateItem)
	r.Delete("/cart/items/{itemID}", h.RemoveItem)
	return r
}

func doCartRequest(t *testing.T, router chi.Router, method, url string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("failed to encode payload: %v", err)
		}
	}
	req := httptest.NewRequest(method, url, &body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) cartResponse {
	t.Helper()
	var resp cartResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode cart response: %v", err)
	}
	return resp
}

func TestCartRequiresIdentity(t *testing.T) {
	router := newCartRouter(nil)

	rec := doCartRequest(t, router, http.MethodGet, "/cart", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without user or guest_id, got %d", rec.Code)
	}
}

func TestCartGetCreatesEmptyCart(t *testing.T) {
	router := newCartRouter(nil)

	rec := doCartRequest(t, router, http.MethodGet, "/cart?guest_id=g1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	cart := decodeCart(t, rec)
	if len(cart.Items) != 0 {
		t.Errorf("expected a fresh empty cart, got %d items", len(cart.Items))
	}
	if cart.Total != 0 {
		t.Errorf("expected total 0 for an empty cart, got %v", cart.Total)
	}
}

func TestCartAddItemComputesTotal(t *testing.T) {
	router := newCartRouter(map[uint]float64{10: 150, 11: 200})

	rec := doCartRequest(t, router, http.MethodPost, "/cart/items?guest_id=g1", map[string]interface{}{"photo_id": 10, "quantity": 2})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = doCartRequest(t, router, http.MethodPost, "/cart/items?guest_id=g1", map[string]interface{}{"photo_id": 11})
	cart := decodeCart(t, rec)

	if len(cart.Items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(cart.Items))
	}
	if cart.Total != 500 {
		t.Errorf("expected total 500 (2x150 + 200), got %v", cart.Total)
	}
}

func TestCartAddSamePhotoMergesLine(t *testing.T) {
	router := newCartRouter(map[uint]float64{10: 150})

	doCartRequest(t, router, http.MethodPost, "/cart/items?guest_id=g1", map[string]interface{}{"photo_id": 10})
	rec := doCartRequest(t, router, http.MethodPost, "/cart/items?guest_id=g1", map[string]interface{}{"photo_id": 10})
	cart := decodeCart(t, rec)

	if len(cart.Items) != 1 {
		t.Fatalf("expected a single merged line, got %d", len(cart.Items))
	}
	if cart.Items[0].Quantity != 2 {
		t.Errorf("expected merged quantity 2, got %d", cart.Items[0].Quantity)
	}
}

func TestCartUpdateItemToZeroRemovesLine(t *testing.T) {
	router := newCartRouter(map[uint]float64{10: 150})

	rec := doCartRequest(t, router, http.MethodPost, "/cart/items?guest_id=g1", map[string]interface{}{"photo_id": 10})
	cart := decodeCart(t, rec)
	itemID := cart.Items[0].ID

	rec = doCartRequest(t, router, http.MethodPut, "/cart/items/"+strconv.Itoa(int(itemID))+"?guest_id=g1", map[string]interface{}{"quantity": 0})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	cart = decodeCart(t, rec)
	if len(cart.Items) != 0 {
		t.Errorf("expected empty cart after zero-quantity update, got %d lines", len(cart.Items))
	}
}

func TestCartUpdateUnknownItemReturns404(t *testing.T) {
	router := newCartRouter(nil)

	rec := doCartRequest(t, router, http.MethodPut, "/cart/items/999?guest_id=g1", map[string]interface{}{"quantity": 1})
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown item, got %d", rec.Code)
	}
}

func TestCartStoresCheckoutDetails(t *testing.T) {
	router := newCartRouter(nil)

	rec := doCartRequest(t, router, http.MethodPut, "/cart?guest_id=g1", map[string]interface{}{
		"user_email":    "ana@example.com",
		"discount_code": "VERANO10",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	cart := decodeCart(t, rec)
	if cart.UserEmail == nil || *cart.UserEmail != "ana@example.com" {
		t.Errorf("expected user email to be stored, got %v", cart.UserEmail)
	}
	if cart.DiscountCode == nil || *cart.DiscountCode != "VERANO10" {
		t.Errorf("expected discount code to be stored, got %v", cart.DiscountCode)
	}
}
