package models

import "time"

// Payment method values accepted at checkout.
const (
	PaymentMethodMP           = "mp"
	PaymentMethodCash         = "efectivo"
	PaymentMethodBankTransfer = "transferencia"
	PaymentMethodPointOfSale  = "posnet"
)

// Payment status values.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// Order status values.
const (
	OrderStatusPending   = "pending"   // created, not yet paid
	OrderStatusPaid      = "paid"      // paid, not yet fulfilled
	OrderStatusCompleted = "completed" // paid and downloaded
	OrderStatusShipped   = "shipped"   // physical prints only
	OrderStatusRejected  = "rejected"  // payment rejected or order cancelled
)

// Order is a customer purchase. PublicID is the only identifier exposed
// on customer-facing URLs (download page, payment callbacks).
type Order struct {
	ID                uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	PublicID          string      `gorm:"size:36;not null;uniqueIndex" json:"public_id"`
	UserID            *uint       `gorm:"index" json:"user_id,omitempty"`    // Nullable, guest checkout
	GuestID           *string     `gorm:"size:64" json:"guest_id,omitempty"` // Nullable
	CustomerEmail     *string     `gorm:"size:255" json:"customer_email,omitempty"`
	Total             float64     `gorm:"not null" json:"total"`
	PaymentMethod     string      `gorm:"size:20;not null" json:"payment_method"`
	PaymentStatus     string      `gorm:"size:20;not null;default:pending" json:"payment_status"`
	OrderStatus       string      `gorm:"size:20;not null;default:pending" json:"order_status"`
	ExternalPaymentID *string     `gorm:"size:100" json:"external_payment_id,omitempty"` // Nullable
	DiscountID        *uint       `gorm:"index" json:"discount_id,omitempty"`            // Nullable
	Discount          *Discount   `gorm:"foreignKey:DiscountID" json:"discount,omitempty"`
	Items             []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	ArchivePath       *string     `gorm:"type:text" json:"-"` // Nullable, set once a download zip exists
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// TableName explicitly sets the table name for GORM.
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one purchased photo line. Price is the unit price at
// purchase time; combo pricing is reflected in the order Total, not in
// individual line prices.
type OrderItem struct {
	ID       uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID  uint    `gorm:"not null;index" json:"order_id"`
	PhotoID  uint    `gorm:"not null;index" json:"photo_id"`
	Photo    *Photo  `gorm:"foreignKey:PhotoID" json:"photo,omitempty"`
	Price    float64 `gorm:"not null" json:"price"`
	Quantity int     `gorm:"not null;default:1" json:"quantity"`
	Format   *string `gorm:"size:50" json:"format,omitempty"` // Nullable, print format
}

// TableName explicitly sets the table name for GORM.
func (OrderItem) TableName() string {
	return "order_items"
}

// Earning records the photographer's share of one sold order item.
// Rows are written when an order transitions to paid.
type Earning struct {
	ID                  uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PhotographerID      uint      `gorm:"not null;index" json:"photographer_id"`
	OrderID             uint      `gorm:"not null;index" json:"order_id"`
	OrderItemID         uint      `gorm:"not null" json:"order_item_id"`
	Amount              float64   `gorm:"not null" json:"amount"`
	CommissionApplied   float64   `gorm:"not null" json:"commission_applied"`    // marketplace percentage used
	EarnedPhotoFraction float64   `gorm:"not null" json:"earned_photo_fraction"` // photographer fraction * quantity
	CreatedAt           time.Time `json:"created_at"`
}

// TableName explicitly sets the table name for GORM.
func (Earning) TableName() string {
	return "earnings"
}
