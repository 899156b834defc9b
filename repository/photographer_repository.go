package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/omegonstudio/fotospatagonia-backend/models"
)

// PhotographerRepository handles database operations for Photographer entities
type PhotographerRepository struct {
	DB *gorm.DB
}

// NewPhotographerRepository creates a new instance of PhotographerRepository
func NewPhotographerRepository(db *gorm.DB) *PhotographerRepository {
	return &PhotographerRepository{DB: db}
}

// Create creates a new photographer record in the database
func (r *PhotographerRepository) Create(photographer *models.Photographer) error {
	err := r.DB.Create(photographer).Error
	if err != nil {
		return fmt.Errorf("failed to create photographer %s: %w", photographer.Name, err)
	}
	return nil
}

// ListAll retrieves all photographers ordered by name
func (r *PhotographerRepository) ListAll() ([]models.Photographer, error) {
	var photographers []models.Photographer
	err := r.DB.Order("name ASC").Find(&photographers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list photographers: %w", err)
	}
	return photographers, nil
}

// GetByID retrieves a photographer by its ID
func (r *PhotographerRepository) GetByID(id uint) (*models.Photographer, error) {
	var photographer models.Photographer
	err := r.DB.First(&photographer, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get photographer by ID %d: %w", id, err)
	}
	return &photographer, nil
}

// Update saves the full photographer record
func (r *PhotographerRepository) Update(photographer *models.Photographer) error {
	err := r.DB.Save(photographer).Error
	if err != nil {
		return fmt.Errorf("failed to update photographer ID %d: %w", photographer.ID, err)
	}
	return nil
}

// Delete removes a photographer record
func (r *PhotographerRepository) Delete(id uint) error {
	result := r.DB.Delete(&models.Photographer{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete photographer ID %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
