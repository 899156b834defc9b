package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/omegonstudio/fotospatagonia-backend/models"
)

// TagRepository handles database operations for Tag entities
type TagRepository struct {
	DB *gorm.DB
}

// NewTagRepository creates a new instance of TagRepository
func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{DB: db}
}

// Create creates a new tag record in the database
func (r *TagRepository) Create(tag *models.Tag) error {
	err := r.DB.Create(tag).Error
	if err != nil {
		return fmt.Errorf("failed to create tag %s: %w", tag.Name, err)
	}
	return nil
}

// ListAll retrieves all tags ordered by name
func (r *TagRepository) ListAll() ([]models.Tag, error) {
	var tags []models.Tag
	err := r.DB.Order("name ASC").Find(&tags).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// GetByID retrieves a tag by its ID
func (r *TagRepository) GetByID(id uint) (*models.Tag, error) {
	var tag models.Tag
	err := r.DB.First(&tag, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get tag by ID %d: %w", id, err)
	}
	return &tag, nil
}

// Update renames a tag
func (r *TagRepository) Update(tagID uint, name string) error {
	result := r.DB.Model(&models.Tag{}).Where("id = ?", tagID).Update("name", name)
	if result.Error != nil {
		return fmt.Errorf("failed to update tag ID %d: %w", tagID, result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		r.DB.Model(&models.Tag{}).Where("id = ?", tagID).Count(&count)
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

// Delete removes a tag and its associations
func (r *TagRepository) Delete(id uint) error {
	var tag models.Tag
	if err := r.DB.First(&tag, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return err
		}
		return fmt.Errorf("failed to load tag ID %d for delete: %w", id, err)
	}

	if err := r.DB.Model(&tag).Association("Photos").Clear(); err != nil {
		return fmt.Errorf("failed to clear photo associations for tag ID %d: %w", id, err)
	}
	if err := r.DB.Model(&tag).Association("Albums").Clear(); err != nil {
		return fmt.Errorf("failed to clear album associations for tag ID %d: %w", id, err)
	}

	if err := r.DB.Delete(&tag).Error; err != nil {
		return fmt.Errorf("failed to delete tag ID %d: %w", id, err)
	}
	return nil
}
