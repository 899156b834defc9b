package models

import "time"

// PhotoSession is one shooting event (a date, a location, one
// photographer). Uploaded photos always belong to a session.
type PhotoSession struct {
	ID             uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	EventName      string        `gorm:"size:100;not null;index" json:"event_name"`
	Description    *string       `gorm:"size:255" json:"description,omitempty"` // Nullable
	EventDate      time.Time     `gorm:"not null" json:"event_date"`
	Location       string        `gorm:"size:255;not null" json:"location"`
	PhotographerID uint          `gorm:"not null;index" json:"photographer_id"`
	Photographer   *Photographer `gorm:"foreignKey:PhotographerID" json:"photographer,omitempty"`
	AlbumID        *uint         `gorm:"index" json:"album_id,omitempty"` // Nullable
	Photos         []Photo       `gorm:"foreignKey:SessionID" json:"photos,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// TableName explicitly sets the table name for GORM.
func (PhotoSession) TableName() string {
	return "photo_sessions"
}
