package models

import "time"

// Cart is a server-side shopping cart. A cart belongs to exactly one
// owner: a registered user (UserID) or an anonymous visitor (GuestID).
// Guest carts are merged into the user cart on login.
type Cart struct {
	ID             uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         *uint         `gorm:"uniqueIndex" json:"user_id,omitempty"`          // Nullable
	GuestID        *string       `gorm:"size:64;uniqueIndex" json:"guest_id,omitempty"` // Nullable
	UserEmail      *string       `gorm:"size:255" json:"user_email,omitempty"`
	DiscountCode   *string       `gorm:"size:50" json:"discount_code,omitempty"`
	PhotoSessionID *uint         `gorm:"index" json:"photo_session_id,omitempty"` // Nullable
	PhotoSession   *PhotoSession `gorm:"foreignKey:PhotoSessionID" json:"photo_session,omitempty"`
	Items          []CartItem    `gorm:"foreignKey:CartID" json:"items,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// TableName explicitly sets the table name for GORM.
func (Cart) TableName() string {
	return "carts"
}

// Total sums quantity times current photo price over all items. Items
// whose photo was deleted contribute nothing. This is an estimate for
// display; the binding price is computed at checkout.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		if item.Photo != nil {
			total += float64(item.Quantity) * item.Photo.Price
		}
	}
	return total
}

// CartItem is one photo line in a cart.
type CartItem struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID    uint      `gorm:"not null;index" json:"cart_id"`
	PhotoID   uint      `gorm:"not null;index" json:"photo_id"`
	Photo     *Photo    `gorm:"foreignKey:PhotoID" json:"photo,omitempty"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName explicitly sets the table name for GORM.
func (CartItem) TableName() string {
	return "cart_items"
}

// SavedCart is a recoverable snapshot of a cart. PublicID is the only
// identifier exposed on recovery links.
type SavedCart struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PublicID  string    `gorm:"size:36;not null;uniqueIndex" json:"public_id"`
	CartID    uint      `gorm:"not null;index" json:"cart_id"`
	Cart      *Cart     `gorm:"foreignKey:CartID" json:"cart,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName explicitly sets the table name for GORM.
func (SavedCart) TableName() string {
	return "saved_carts"
}
