package models

import "time"

// Photo is a sellable image. URL points at the original, WatermarkURL at
// the public watermarked rendition, ThumbnailURL at the gallery thumb.
// The EXIF columns are filled asynchronously by the upload workers.
type Photo struct {
	ID             uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	Filename       string        `gorm:"size:255;not null" json:"filename"`
	Description    *string       `gorm:"size:255" json:"description,omitempty"` // Nullable
	Price          float64       `gorm:"not null" json:"price"`
	URL            string        `gorm:"type:text;not null" json:"url"`
	WatermarkURL   string        `gorm:"type:text;not null" json:"watermark_url"`
	ThumbnailURL   *string       `gorm:"type:text" json:"thumbnail_url,omitempty"` // Nullable
	PhotographerID uint          `gorm:"not null;index" json:"photographer_id"`
	Photographer   *Photographer `gorm:"foreignKey:PhotographerID" json:"photographer,omitempty"`
	SessionID      uint          `gorm:"not null;index" json:"session_id"`
	Tags           []*Tag        `gorm:"many2many:photo_tags;" json:"tags,omitempty"`

	// EXIF metadata, nullable until extraction runs
	Width        *int     `json:"width,omitempty"`
	Height       *int     `json:"height,omitempty"`
	CameraMake   *string  `gorm:"size:100" json:"camera_make,omitempty"`
	CameraModel  *string  `gorm:"size:100" json:"camera_model,omitempty"`
	Aperture     *float64 `json:"aperture,omitempty"`
	ShutterSpeed *string  `gorm:"size:50" json:"shutter_speed,omitempty"`
	ISO          *int     `json:"iso,omitempty"`
	FocalLength  *float64 `json:"focal_length,omitempty"`
	TakenAt      *int64   `json:"taken_at,omitempty"` // Unix timestamp

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName explicitly sets the table name for GORM.
func (Photo) TableName() string {
	return "photos"
}
