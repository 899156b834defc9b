package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/omegonstudio/fotospatagonia-backend/models"
)

// SavedCartRepository handles database operations for SavedCart entities
type SavedCartRepository struct {
	DB *gorm.DB
}

// NewSavedCartRepository creates a new instance of SavedCartRepository
func NewSavedCartRepository(db *gorm.DB) *SavedCartRepository {
	return &SavedCartRepository{DB: db}
}

// Create creates a new saved cart snapshot
func (r *SavedCartRepository) Create(saved *models.SavedCart) error {
	err := r.DB.Create(saved).Error
	if err != nil {
		return fmt.Errorf("failed to create saved cart for cart %d: %w", saved.CartID, err)
	}
	return nil
}

// ListAll retrieves all saved carts with their carts, newest first
func (r *SavedCartRepository) ListAll() ([]models.SavedCart, error) {
	var saved []models.SavedCart
	err := r.DB.Preload("Cart.Items.Photo").Order("created_at DESC").Find(&saved).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list saved carts: %w", err)
	}
	return saved, nil
}

// GetByPublicID retrieves a saved cart by its public recovery ID
func (r *SavedCartRepository) GetByPublicID(publicID string) (*models.SavedCart, error) {
	var saved models.SavedCart
	err := r.DB.Preload("Cart.Items.Photo").Where("public_id = ?", publicID).First(&saved).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get saved cart by public ID %s: %w", publicID, err)
	}
	return &saved, nil
}

// Delete removes a saved cart snapshot. The underlying cart is left
// untouched.
func (r *SavedCartRepository) Delete(id uint) error {
	result := r.DB.Delete(&models.SavedCart{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete saved cart ID %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
