package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/omegonstudio/fotospatagonia-backend/models"
)

// ComboRepository handles database operations for Combo entities
type ComboRepository struct {
	DB *gorm.DB
}

// NewComboRepository creates a new instance of ComboRepository
func NewComboRepository(db *gorm.DB) *ComboRepository {
	return &ComboRepository{DB: db}
}

// Create creates a new combo record in the database
func (r *ComboRepository) Create(combo *models.Combo) error {
	err := r.DB.Create(combo).Error
	if err != nil {
		return fmt.Errorf("failed to create combo %s: %w", combo.Name, err)
	}
	return nil
}

// ListAll retrieves every combo, including inactive ones, for the admin catalog
func (r *ComboRepository) ListAll() ([]models.Combo, error) {
	var combos []models.Combo
	err := r.DB.Order("total_photos DESC").Find(&combos).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list combos: %w", err)
	}
	return combos, nil
}

// ListActive retrieves the combos eligible for pricing, largest bundle first
func (r *ComboRepository) ListActive() ([]models.Combo, error) {
	var combos []models.Combo
	err := r.DB.Where("active = ?", true).Order("total_photos DESC").Find(&combos).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active combos: %w", err)
	}
	return combos, nil
}

// GetByID retrieves a combo by its ID
func (r *ComboRepository) GetByID(id uint) (*models.Combo, error) {
	var combo models.Combo
	err := r.DB.First(&combo, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get combo by ID %d: %w", id, err)
	}
	return &combo, nil
}

// Update applies the non-nil fields to an existing combo
func (r *ComboRepository) Update(comboID uint, name *string, description *string, price *float64, totalPhotos *int, isFullAlbum *bool, active *bool) error {
	updates := map[string]interface{}{}
	if name != nil {
		updates["name"] = *name
	}
	if description != nil {
		updates["description"] = *description
	}
	if price != nil {
		updates["price"] = *price
	}
	if totalPhotos != nil {
		updates["total_photos"] = *totalPhotos
	}
	if isFullAlbum != nil {
		updates["is_full_album"] = *isFullAlbum
	}
	if active != nil {
		updates["active"] = *active
	}
	if len(updates) == 0 {
		return nil
	}

	result := r.DB.Model(&models.Combo{}).Where("id = ?", comboID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update combo ID %d: %w", comboID, result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		r.DB.Model(&models.Combo{}).Where("id = ?", comboID).Count(&count)
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

// Delete removes a combo from the catalog
func (r *ComboRepository) Delete(id uint) error {
	result := r.DB.Delete(&models.Combo{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete combo ID %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
