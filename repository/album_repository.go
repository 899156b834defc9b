package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/omegonstudio/fotospatagonia-backend/models"
)

// AlbumRepository handles database operations for Album entities
type AlbumRepository struct {
	DB *gorm.DB
}

// NewAlbumRepository creates a new instance of AlbumRepository
func NewAlbumRepository(db *gorm.DB) *AlbumRepository {
	return &AlbumRepository{DB: db}
}

// Create creates a new album record in the database
func (r *AlbumRepository) Create(album *models.Album) error {
	err := r.DB.Create(album).Error
	if err != nil {
		return fmt.Errorf("failed to create album %s: %w", album.Name, err)
	}
	return nil
}

// ListAll retrieves all albums with their tags and sessions, ordered by name
func (r *AlbumRepository) ListAll() ([]models.Album, error) {
	var albums []models.Album
	err := r.DB.Preload("Tags").Preload("Sessions").Order("name ASC").Find(&albums).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list albums: %w", err)
	}
	return albums, nil
}

// GetByID retrieves an album by its ID with tags and sessions preloaded
func (r *AlbumRepository) GetByID(id uint) (*models.Album, error) {
	var album models.Album
	err := r.DB.Preload("Tags").Preload("Sessions").Preload("Sessions.Photographer").First(&album, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get album by ID %d: %w", id, err)
	}
	return &album, nil
}

// Update applies the non-nil fields to an existing album. A non-nil
// tagIDs replaces the whole tag association.
func (r *AlbumRepository) Update(albumID uint, name *string, description *string, tagIDs []uint) error {
	updates := map[string]interface{}{}
	if name != nil {
		updates["name"] = *name
	}
	if description != nil {
		updates["description"] = *description
	}

	if len(updates) > 0 {
		result := r.DB.Model(&models.Album{}).Where("id = ?", albumID).Updates(updates)
		if result.Error != nil {
			return fmt.Errorf("failed to update album ID %d: %w", albumID, result.Error)
		}
		if result.RowsAffected == 0 {
			var count int64
			r.DB.Model(&models.Album{}).Where("id = ?", albumID).Count(&count)
			if count == 0 {
				return gorm.ErrRecordNotFound
			}
		}
	}

	if tagIDs != nil {
		var album models.Album
		if err := r.DB.First(&album, albumID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return err
			}
			return fmt.Errorf("failed to load album ID %d for tag update: %w", albumID, err)
		}
		var tags []*models.Tag
		if len(tagIDs) > 0 {
			if err := r.DB.Find(&tags, tagIDs).Error; err != nil {
				return fmt.Errorf("failed to load tags for album ID %d: %w", albumID, err)
			}
		}
		if err := r.DB.Model(&album).Association("Tags").Replace(tags); err != nil {
			return fmt.Errorf("failed to replace tags for album ID %d: %w", albumID, err)
		}
	}

	return nil
}

// Delete removes an album; its sessions stay and lose the album link
func (r *AlbumRepository) Delete(id uint) error {
	err := r.DB.Model(&models.PhotoSession{}).Where("album_id = ?", id).Update("album_id", gorm.Expr("NULL")).Error
	if err != nil {
		return fmt.Errorf("failed to detach sessions from album ID %d: %w", id, err)
	}

	result := r.DB.Delete(&models.Album{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete album ID %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// PhotoCount returns how many photos the album holds across its sessions
func (r *AlbumRepository) PhotoCount(albumID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&models.Photo{}).
		Joins("JOIN photo_sessions ON photo_sessions.id = photos.session_id").
		Where("photo_sessions.album_id = ?", albumID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count photos for album ID %d: %w", albumID, err)
	}
	return count, nil
}

// ListPhotos returns every photo in the album across its sessions
func (r *AlbumRepository) ListPhotos(albumID uint) ([]models.Photo, error) {
	var photos []models.Photo
	err := r.DB.Preload("Tags").Preload("Photographer").
		Joins("JOIN photo_sessions ON photo_sessions.id = photos.session_id").
		Where("photo_sessions.album_id = ?", albumID).
		Find(&photos).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list photos for album ID %d: %w", albumID, err)
	}
	return photos, nil
}
