package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/omegonstudio/fotospatagonia-backend/media"
	"github.com/omegonstudio/fotospatagonia-backend/models"
)

// PhotoRepository handles database operations for Photo entities
type PhotoRepository struct {
	DB *gorm.DB
}

// NewPhotoRepository creates a new instance of PhotoRepository
func NewPhotoRepository(db *gorm.DB) *PhotoRepository {
	return &PhotoRepository{DB: db}
}

// Create creates a new photo record in the database
func (r *PhotoRepository) Create(photo *models.Photo) error {
	err := r.DB.Create(photo).Error
	if err != nil {
		return fmt.Errorf("failed to create photo %s: %w", photo.Filename, err)
	}
	return nil
}

// ListBySession retrieves all photos of a session
func (r *PhotoRepository) ListBySession(sessionID uint) ([]models.Photo, error) {
	var photos []models.Photo
	err := r.DB.Preload("Tags").Where("session_id = ?", sessionID).Find(&photos).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list photos for session %d: %w", sessionID, err)
	}
	return photos, nil
}

// ListByIDs retrieves the photos matching the given ids, photographer preloaded
func (r *PhotoRepository) ListByIDs(ids []uint) ([]models.Photo, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var photos []models.Photo
	err := r.DB.Preload("Photographer").Find(&photos, ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list photos by ids: %w", err)
	}
	return photos, nil
}

// GetByID retrieves a photo by its ID
func (r *PhotoRepository) GetByID(id uint) (*models.Photo, error) {
	var photo models.Photo
	err := r.DB.Preload("Tags").Preload("Photographer").First(&photo, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get photo by ID %d: %w", id, err)
	}
	return &photo, nil
}

// Update applies the non-nil fields to an existing photo. A non-nil
// tagIDs replaces the whole tag association.
func (r *PhotoRepository) Update(photoID uint, description *string, price *float64, tagIDs []uint) error {
	updates := map[string]interface{}{}
	if description != nil {
		updates["description"] = *description
	}
	if price != nil {
		updates["price"] = *price
	}

	if len(updates) > 0 {
		result := r.DB.Model(&models.Photo{}).Where("id = ?", photoID).Updates(updates)
		if result.Error != nil {
			return fmt.Errorf("failed to update photo ID %d: %w", photoID, result.Error)
		}
		if result.RowsAffected == 0 {
			var count int64
			r.DB.Model(&models.Photo{}).Where("id = ?", photoID).Count(&count)
			if count == 0 {
				return gorm.ErrRecordNotFound
			}
		}
	}

	if tagIDs != nil {
		var photo models.Photo
		if err := r.DB.First(&photo, photoID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return err
			}
			return fmt.Errorf("failed to load photo ID %d for tag update: %w", photoID, err)
		}
		var tags []*models.Tag
		if len(tagIDs) > 0 {
			if err := r.DB.Find(&tags, tagIDs).Error; err != nil {
				return fmt.Errorf("failed to load tags for photo ID %d: %w", photoID, err)
			}
		}
		if err := r.DB.Model(&photo).Association("Tags").Replace(tags); err != nil {
			return fmt.Errorf("failed to replace tags for photo ID %d: %w", photoID, err)
		}
	}

	return nil
}

// UpdateMetadata stores the extracted EXIF fields on the photo row
func (r *PhotoRepository) UpdateMetadata(photoID uint, meta *media.Metadata) error {
	if meta == nil {
		return nil
	}
	updates := map[string]interface{}{
		"width":         meta.Width,
		"height":        meta.Height,
		"camera_make":   meta.CameraMake,
		"camera_model":  meta.CameraModel,
		"aperture":      meta.Aperture,
		"shutter_speed": meta.ShutterSpeed,
		"iso":           meta.ISO,
		"focal_length":  meta.FocalLength,
		"taken_at":      meta.TakenAt,
	}
	err := r.DB.Model(&models.Photo{}).Where("id = ?", photoID).Updates(updates).Error
	if err != nil {
		return fmt.Errorf("failed to update metadata for photo ID %d: %w", photoID, err)
	}
	return nil
}

// Delete removes a photo record
func (r *PhotoRepository) Delete(id uint) error {
	result := r.DB.Delete(&models.Photo{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete photo ID %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
