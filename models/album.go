package models

import "time"

// Album groups photo sessions for the public gallery. Photos hang off
// sessions, not albums directly.
type Album struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string         `gorm:"size:100;not null;index" json:"name"`
	Description *string        `gorm:"size:255" json:"description,omitempty"` // Nullable
	Sessions    []PhotoSession `gorm:"foreignKey:AlbumID" json:"sessions,omitempty"`
	Tags        []*Tag         `gorm:"many2many:album_tags;" json:"tags,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// TableName explicitly sets the table name for GORM.
func (Album) TableName() string {
	return "albums"
}
