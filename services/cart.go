package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/omegonstudio/fotospatagonia-backend/models"
	"github.com/omegonstudio/fotospatagonia-backend/repository"
)

// ErrNoCartOwner is returned when a cart operation is attempted without
// a user or guest identity.
var ErrNoCartOwner = errors.New("cart requires a user or guest identity")

// CartService implements the shopping cart rules on top of the cart
// repository: one cart per owner, quantity merging when the same photo
// is added twice, and guest-to-user cart transfer on login.
type CartService struct {
	cartRepo repository.CartRepositoryInterface
}

func NewCartService(cartRepo repository.CartRepositoryInterface) *CartService {
	return &CartService{cartRepo: cartRepo}
}

// GetOrCreate returns the owner's cart, creating an empty one on first
// access. Exactly one of userID and guestID must be set; userID wins
// when both are present.
func (s *CartService) GetOrCreate(userID *uint, guestID *string) (*models.Cart, error) {
	if userID == nil && guestID == nil {
		return nil, ErrNoCartOwner
	}

	var (
		cart *models.Cart
		err  error
	)
	if userID != nil {
		cart, err = s.cartRepo.GetByUserID(*userID)
	} else {
		cart, err = s.cartRepo.GetByGuestID(*guestID)
	}
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cart = &models.Cart{UserID: userID, GuestID: guestID}
	if userID != nil {
		cart.GuestID = nil
	}
	if err := s.cartRepo.Create(cart); err != nil {
		return nil, err
	}
	return s.cartRepo.GetByID(cart.ID)
}

// AddItem puts a photo in the owner's cart. Adding a photo already in
// the cart increases its quantity instead of creating a second line.
func (s *CartService) AddItem(userID *uint, guestID *string, photoID uint, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		quantity = 1
	}

	cart, err := s.GetOrCreate(userID, guestID)
	if err != nil {
		return nil, err
	}

	existing, err := s.cartRepo.FindItemByPhoto(cart.ID, photoID)
	switch {
	case err == nil:
		if err := s.cartRepo.UpdateItemQuantity(existing.ID, existing.Quantity+quantity); err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item := &models.CartItem{CartID: cart.ID, PhotoID: photoID, Quantity: quantity}
		if err := s.cartRepo.CreateItem(item); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return s.cartRepo.GetByID(cart.ID)
}

// UpdateItem sets the quantity on a cart line. A quantity of zero or
// less removes the line.
func (s *CartService) UpdateItem(userID *uint, guestID *string, itemID uint, quantity int) (*models.Cart, error) {
	cart, err := s.GetOrCreate(userID, guestID)
	if err != nil {
		return nil, err
	}

	item, err := s.cartRepo.GetItem(cart.ID, itemID)
	if err != nil {
		return nil, err
	}

	if quantity <= 0 {
		err = s.cartRepo.DeleteItem(item.ID)
	} else {
		err = s.cartRepo.UpdateItemQuantity(item.ID, quantity)
	}
	if err != nil {
		return nil, err
	}

	return s.cartRepo.GetByID(cart.ID)
}

// RemoveItem deletes a line from the owner's cart.
func (s *CartService) RemoveItem(userID *uint, guestID *string, itemID uint) (*models.Cart, error) {
	cart, err := s.GetOrCreate(userID, guestID)
	if err != nil {
		return nil, err
	}

	item, err := s.cartRepo.GetItem(cart.ID, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.DeleteItem(item.ID); err != nil {
		return nil, err
	}

	return s.cartRepo.GetByID(cart.ID)
}

// Empty removes every line from the owner's cart. The cart itself and
// its checkout details survive.
func (s *CartService) Empty(userID *uint, guestID *string) (*models.Cart, error) {
	cart, err := s.GetOrCreate(userID, guestID)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.DeleteItems(cart.ID); err != nil {
		return nil, err
	}
	return s.cartRepo.GetByID(cart.ID)
}

// SetDetails stores checkout details (contact email, discount code,
// session link) on the owner's cart.
func (s *CartService) SetDetails(userID *uint, guestID *string, userEmail *string, discountCode *string, photoSessionID *uint) (*models.Cart, error) {
	cart, err := s.GetOrCreate(userID, guestID)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.SetDetails(cart.ID, userEmail, discountCode, photoSessionID); err != nil {
		return nil, err
	}
	return s.cartRepo.GetByID(cart.ID)
}

// TransferGuestCart merges a guest cart into a user's cart after login.
// Lines for photos already in the user cart have their quantities
// summed; the rest move over. The guest cart is deleted. A missing
// guest cart is not an error.
func (s *CartService) TransferGuestCart(guestID string, userID uint) error {
	guestCart, err := s.cartRepo.GetByGuestID(guestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	userCart, err := s.GetOrCreate(&userID, nil)
	if err != nil {
		return err
	}

	for _, guestItem := range guestCart.Items {
		userItem, err := s.cartRepo.FindItemByPhoto(userCart.ID, guestItem.PhotoID)
		switch {
		case err == nil:
			if err := s.cartRepo.UpdateItemQuantity(userItem.ID, userItem.Quantity+guestItem.Quantity); err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := s.cartRepo.MoveItem(guestItem.ID, userCart.ID); err != nil {
				return err
			}
		default:
			return err
		}
	}

	if err := s.cartRepo.Delete(guestCart.ID); err != nil {
		return fmt.Errorf("failed to drop guest cart %s after transfer: %w", guestID, err)
	}
	return nil
}
