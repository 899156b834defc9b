package models

import "time"

// Discount is a checkout code. Exactly one of Percentage or Value is
// expected to be set; percentage discounts apply to the quote subtotal,
// value discounts subtract a fixed amount.
type Discount struct {
	ID         uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Code       string     `gorm:"size:50;not null;unique;index" json:"code"`
	Percentage *float64   `json:"percentage,omitempty"` // Nullable
	Value      *float64   `json:"value,omitempty"`      // Nullable
	ExpiresAt  *time.Time `json:"expires_at,omitempty"` // Nullable, no expiry when unset
	IsActive   bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// TableName explicitly sets the table name for GORM.
func (Discount) TableName() string {
	return "discounts"
}

// IsRedeemable reports whether the code can be applied at the given
// time.
func (d *Discount) IsRedeemable(now time.Time) bool {
	if !d.IsActive {
		return false
	}
	if d.ExpiresAt != nil && now.After(*d.ExpiresAt) {
		return false
	}
	return true
}
