package models

import "time"

// Photographer sells photos through the marketplace. The marketplace
// keeps CommissionPercentage of every sale; the rest is recorded as an
// Earning for the photographer.
type Photographer struct {
	ID                   uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID               *uint     `gorm:"uniqueIndex" json:"user_id,omitempty"` // Nullable, set once they get a login
	Name                 string    `gorm:"size:100;not null;index" json:"name"`
	CommissionPercentage float64   `gorm:"not null" json:"commission_percentage"`
	ContactInfo          *string   `gorm:"size:255" json:"contact_info,omitempty"` // Nullable
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// TableName explicitly sets the table name for GORM.
func (Photographer) TableName() string {
	return "photographers"
}
