package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/omegonstudio/fotospatagonia-backend/models"
)

// DiscountRepository handles database operations for Discount entities
type DiscountRepository struct {
	DB *gorm.DB
}

// NewDiscountRepository creates a new instance of DiscountRepository
func NewDiscountRepository(db *gorm.DB) *DiscountRepository {
	return &DiscountRepository{DB: db}
}

// Create creates a new discount record. Codes are stored uppercase.
func (r *DiscountRepository) Create(discount *models.Discount) error {
	discount.Code = strings.ToUpper(strings.TrimSpace(discount.Code))
	err := r.DB.Create(discount).Error
	if err != nil {
		return fmt.Errorf("failed to create discount %s: %w", discount.Code, err)
	}
	return nil
}

// ListAll retrieves all discounts, newest first
func (r *DiscountRepository) ListAll() ([]models.Discount, error) {
	var discounts []models.Discount
	err := r.DB.Order("created_at DESC").Find(&discounts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list discounts: %w", err)
	}
	return discounts, nil
}

// GetByID retrieves a discount by its ID
func (r *DiscountRepository) GetByID(id uint) (*models.Discount, error) {
	var discount models.Discount
	err := r.DB.First(&discount, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get discount by ID %d: %w", id, err)
	}
	return &discount, nil
}

// GetByCode retrieves a discount by its code, case-insensitive
func (r *DiscountRepository) GetByCode(code string) (*models.Discount, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	var discount models.Discount
	err := r.DB.Where("code = ?", code).First(&discount).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get discount by code %s: %w", code, err)
	}
	return &discount, nil
}

// Update saves the full discount record
func (r *DiscountRepository) Update(discount *models.Discount) error {
	discount.Code = strings.ToUpper(strings.TrimSpace(discount.Code))
	err := r.DB.Save(discount).Error
	if err != nil {
		return fmt.Errorf("failed to update discount ID %d: %w", discount.ID, err)
	}
	return nil
}

// Delete removes a discount record
func (r *DiscountRepository) Delete(id uint) error {
	result := r.DB.Delete(&models.Discount{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete discount ID %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
