package services

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/omegonstudio/fotospatagonia-backend/models"
)

type stubCartRepo struct {
	carts  map[uint]*models.Cart
	items  map[uint]*models.CartItem
	nextID uint
}

func newStubCartRepo() *stubCartRepo {
	return &stubCartRepo{
		carts:  make(map[uint]*models.Cart),
		items:  make(map[uint]*models.CartItem),
		nextID: 1,
	}
}

func (r *stubCartRepo) Create(cart *models.Cart) error {
	cart.ID = r.nextID
	r.nextID++
	stored := *cart
	r.carts[cart.ID] = &stored
	return nil
}

func (r *stubCartRepo) GetByID(id uint) (*models.Cart, error) {
	cart, ok := r.carts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *cart
	out.Items = nil
	for _, item := range r.items {
		if item.CartID == id {
			out.Items = append(out.Items, *item)
		}
	}
	return &out, nil
}

func (r *stubCartRepo) GetByUserID(userID uint) (*models.Cart, error) {
	for id, cart := range r.carts {
		if cart.UserID != nil && *cart.UserID == userID {
			return r.GetByID(id)
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCartRepo) GetByGuestID(guestID string) (*models.Cart, error) {
	for id, cart := range r.carts {
		if cart.GuestID != nil && *cart.GuestID == guestID {
			return r.GetByID(id)
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCartRepo) SetDetails(cartID uint, userEmail *string, discountCode *string, photoSessionID *uint) error {
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

func (r *stubCartRepo) Delete(cartID uint) error {
	if _, ok := r.carts[cartID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.carts, cartID)
	for id, item := range r.items {
		if item.CartID == cartID {
			delete(r.items, id)
		}
	}
	return nil
}

func (r *stubCartRepo) FindItemByPhoto(cartID, photoID uint) (*models.CartItem, error) {
	for _, item := range r.items {
		if item.CartID == cartID && item.PhotoID == photoID {
			out := *item
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCartRepo) GetItem(cartID, itemID uint) (*models.CartItem, error) {
	item, ok := r.items[itemID]
	if !ok || item.CartID != cartID {
		return nil, gorm.ErrRecordNotFound
	}
	out := *item
	return &out, nil
}

func (r *stubCartRepo) CreateItem(item *models.CartItem) error {
	item.ID = r.nextID
	r.nextID++
	stored := *item
	r.items[item.ID] = &stored
	return nil
}

func (r *stubCartRepo) UpdateItemQuantity(itemID uint, quantity int) error {
	item, ok := r.items[itemID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	item.Quantity = quantity
	return nil
}

func (r *stubCartRepo) MoveItem(itemID, cartID uint) error {
	item, ok := r.items[itemID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	item.CartID = cartID
	return nil
}

func (r *stubCartRepo) DeleteItem(itemID uint) error {
	if _, ok := r.items[itemID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.items, itemID)
	return nil
}

func (r *stubCartRepo) DeleteItems(cartID uint) error {
	for id, item := range r.items {
		if item.CartID == cartID {
			delete(r.items, id)
		}
	}
	return nil
}

func uintPtr(v uint) *uint    { return &v }
func strPtr(v string) *string { return &v }

func TestGetOrCreateReturnsSameCart(t *testing.T) {
	svc := NewCartService(newStubCartRepo())

	first, err := svc.GetOrCreate(uintPtr(7), nil)
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	second, err := svc.GetOrCreate(uintPtr(7), nil)
	if err != nil {
		t.Fatalf("second GetOrCreate failed: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("expected the same cart on repeat access, got IDs %d and %d", first.ID, second.ID)
	}
}

func TestGetOrCreateRequiresOwner(t *testing.T) {
	svc := NewCartService(newStubCartRepo())

	if _, err := svc.GetOrCreate(nil, nil); !errors.Is(err, ErrNoCartOwner) {
		t.Errorf("expected ErrNoCartOwner, got %v", err)
	}
}

func TestAddItemMergesQuantities(t *testing.T) {
	svc := NewCartService(newStubCartRepo())
	guest := strPtr("guest-abc")

	if _, err := svc.AddItem(nil, guest, 42, 1); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	cart, err := svc.AddItem(nil, guest, 42, 2)
	if err != nil {
		t.Fatalf("second AddItem failed: %v", err)
	}

	if len(cart.Items) != 1 {
		t.Fatalf("expected 1 line after adding the same photo twice, got %d", len(cart.Items))
	}
	if cart.Items[0].Quantity != 3 {
		t.Errorf("expected merged quantity 3, got %d", cart.Items[0].Quantity)
	}
}

func TestAddItemDefaultsQuantityToOne(t *testing.T) {
	svc := NewCartService(newStubCartRepo())

	cart, err := svc.AddItem(nil, strPtr("g"), 5, 0)
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if cart.Items[0].Quantity != 1 {
		t.Errorf("expected quantity 1, got %d", cart.Items[0].Quantity)
	}
}

func TestUpdateItemZeroQuantityRemovesLine(t *testing.T) {
	svc := NewCartService(newStubCartRepo())
	guest := strPtr("guest-abc")

	cart, err := svc.AddItem(nil, guest, 42, 2)
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	cart, err = svc.UpdateItem(nil, guest, cart.Items[0].ID, 0)
	if err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Errorf("expected empty cart after setting quantity to 0, got %d lines", len(cart.Items))
	}
}

func TestUpdateItemUnknownLine(t *testing.T) {
	svc := NewCartService(newStubCartRepo())

	_, err := svc.UpdateItem(nil, strPtr("g"), 999, 1)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound for unknown item, got %v", err)
	}
}

func TestUpdateItemScopedToOwnCart(t *testing.T) {
	svc := NewCartService(newStubCartRepo())

	cart, err := svc.AddItem(nil, strPtr("owner"), 42, 1)
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	// another visitor must not be able to touch the owner's lines
	_, err = svc.UpdateItem(nil, strPtr("intruder"), cart.Items[0].ID, 5)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound for foreign item, got %v", err)
	}
}

func TestEmptyKeepsCart(t *testing.T) {
	svc := NewCartService(newStubCartRepo())
	guest := strPtr("guest-abc")

	before, err := svc.AddItem(nil, guest, 1, 1)
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	after, err := svc.Empty(nil, guest)
	if err != nil {
		t.Fatalf("Empty failed: %v", err)
	}
	if after.ID != before.ID {
		t.Errorf("expected Empty to keep the cart, got a different cart ID")
	}
	if len(after.Items) != 0 {
		t.Errorf("expected no lines after Empty, got %d", len(after.Items))
	}
}

func TestSetDetails(t *testing.T) {
	svc := NewCartService(newStubCartRepo())

	cart, err := svc.SetDetails(nil, strPtr("g"), strPtr("ana@example.com"), strPtr("VERANO10"), nil)
	if err != nil {
		t.Fatalf("SetDetails failed: %v", err)
	}
	if cart.UserEmail == nil || *cart.UserEmail != "ana@example.com" {
		t.Errorf("expected user email to be stored, got %v", cart.UserEmail)
	}
	if cart.DiscountCode == nil || *cart.DiscountCode != "VERANO10" {
		t.Errorf("expected discount code to be stored, got %v", cart.DiscountCode)
	}
}

func TestTransferGuestCartMerges(t *testing.T) {
	repo := newStubCartRepo()
	svc := NewCartService(repo)
	guest := strPtr("guest-abc")

	// user already has photo 1; guest has photo 1 and photo 2
	if _, err := svc.AddItem(uintPtr(7), nil, 1, 1); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if _, err := svc.AddItem(nil, guest, 1, 2); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if _, err := svc.AddItem(nil, guest, 2, 1); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	if err := svc.TransferGuestCart(*guest, 7); err != nil {
		t.Fatalf("TransferGuestCart failed: %v", err)
	}

	userCart, err := svc.GetOrCreate(uintPtr(7), nil)
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	quantities := make(map[uint]int)
	for _, item := range userCart.Items {
		quantities[item.PhotoID] = item.Quantity
	}
	if quantities[1] != 3 {
		t.Errorf("expected merged quantity 3 for photo 1, got %d", quantities[1])
	}
	if quantities[2] != 1 {
		t.Errorf("expected quantity 1 for photo 2, got %d", quantities[2])
	}

	if _, err := repo.GetByGuestID(*guest); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected guest cart to be deleted after transfer, got %v", err)
	}
}

func TestTransferMissingGuestCartIsNoOp(t *testing.T) {
	svc := NewCartService(newStubCartRepo())

	if err := svc.TransferGuestCart("never-seen", 7); err != nil {
		t.Errorf("expected missing guest cart to be a no-op, got %v", err)
	}
}
