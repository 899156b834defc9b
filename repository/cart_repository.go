package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/omegonstudio/fotospatagonia-backend/models"
)

// CartRepository handles database operations for Cart entities
type CartRepository struct {
	DB *gorm.DB
}

// NewCartRepository creates a new instance of CartRepository
func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{DB: db}
}

// Create creates a new cart record
func (r *CartRepository) Create(cart *models.Cart) error {
	err := r.DB.Create(cart).Error
	if err != nil {
		return fmt.Errorf("failed to create cart: %w", err)
	}
	return nil
}

func (r *CartRepository) preloaded() *gorm.DB {
	return r.DB.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("cart_items.created_at ASC")
	}).Preload("Items.Photo")
}

// GetByID retrieves a cart with its items and their photos
func (r *CartRepository) GetByID(id uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.preloaded().First(&cart, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get cart by ID %d: %w", id, err)
	}
	return &cart, nil
}

// GetByUserID retrieves the cart belonging to a registered user
func (r *CartRepository) GetByUserID(userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.preloaded().Where("user_id = ?", userID).First(&cart).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get cart for user %d: %w", userID, err)
	}
	return &cart, nil
}

// GetByGuestID retrieves the cart belonging to an anonymous visitor
func (r *CartRepository) GetByGuestID(guestID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.preloaded().Where("guest_id = ?", guestID).First(&cart).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get cart for guest %s: %w", guestID, err)
	}
	return &cart, nil
}

// SetDetails updates the checkout details stored on a cart. Only
// non-nil fields are changed.
func (r *CartRepository) SetDetails(cartID uint, userEmail *string, discountCode *string, photoSessionID *uint) error {
	updates := make(map[string]interface{})
	if userEmail != nil {
		updates["user_email"] = *userEmail
	}
	if discountCode != nil {
		updates["discount_code"] = *discountCode
	}
	if photoSessionID != nil {
		updates["photo_session_id"] = *photoSessionID
	}
	if len(updates) == 0 {
		return nil
	}
	result := r.DB.Model(&models.Cart{}).Where("id = ?", cartID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update cart ID %d: %w", cartID, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a cart, its items and any saved cart snapshots
// pointing at it
func (r *CartRepository) Delete(cartID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cartID).Delete(&models.SavedCart{}).Error; err != nil {
			return fmt.Errorf("failed to delete saved carts for cart ID %d: %w", cartID, err)
		}
		if err := tx.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete items for cart ID %d: %w", cartID, err)
		}
		result := tx.Delete(&models.Cart{}, cartID)
		if result.Error != nil {
			return fmt.Errorf("failed to delete cart ID %d: %w", cartID, result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// FindItemByPhoto retrieves the item for a given photo within a cart,
// or gorm.ErrRecordNotFound when the photo is not in the cart
func (r *CartRepository) FindItemByPhoto(cartID, photoID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.DB.Where("cart_id = ? AND photo_id = ?", cartID, photoID).First(&item).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find item for photo %d in cart %d: %w", photoID, cartID, err)
	}
	return &item, nil
}

// GetItem retrieves a cart item by ID, scoped to the owning cart
func (r *CartRepository) GetItem(cartID, itemID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.DB.Where("id = ? AND cart_id = ?", itemID, cartID).First(&item).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get item %d in cart %d: %w", itemID, cartID, err)
	}
	return &item, nil
}

// CreateItem creates a new cart item record
func (r *CartRepository) CreateItem(item *models.CartItem) error {
	err := r.DB.Create(item).Error
	if err != nil {
		return fmt.Errorf("failed to add photo %d to cart %d: %w", item.PhotoID, item.CartID, err)
	}
	return nil
}

// UpdateItemQuantity sets the quantity on a cart item
func (r *CartRepository) UpdateItemQuantity(itemID uint, quantity int) error {
	result := r.DB.Model(&models.CartItem{}).Where("id = ?", itemID).Update("quantity", quantity)
	if result.Error != nil {
		return fmt.Errorf("failed to update quantity for item %d: %w", itemID, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MoveItem reassigns a cart item to another cart. Used when merging a
// guest cart into a user cart.
func (r *CartRepository) MoveItem(itemID, cartID uint) error {
	result := r.DB.Model(&models.CartItem{}).Where("id = ?", itemID).Update("cart_id", cartID)
	if result.Error != nil {
		return fmt.Errorf("failed to move item %d to cart %d: %w", itemID, cartID, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteItem removes a single cart item
func (r *CartRepository) DeleteItem(itemID uint) error {
	result := r.DB.Delete(&models.CartItem{}, itemID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete cart item %d: %w", itemID, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteItems removes every item in a cart
func (r *CartRepository) DeleteItems(cartID uint) error {
	err := r.DB.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
	if err != nil {
		return fmt.Errorf("failed to empty cart %d: %w", cartID, err)
	}
	return nil
}
