package models

// Combo represents a fixed-size photo bundle sold at a flat price.
// A combo with IsFullAlbum set covers an entire album selection once the
// configured minimum photo count is reached, regardless of TotalPhotos.
type Combo struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"size:100;not null;unique" json:"name"`
	Description *string `gorm:"type:text" json:"description,omitempty"` // Nullable
	Price       float64 `gorm:"not null" json:"price"`
	TotalPhotos int     `gorm:"not null" json:"total_photos"`
	IsFullAlbum bool    `gorm:"not null;default:false" json:"is_full_album"`
	Active      bool    `gorm:"not null;default:true" json:"active"`
}

// TableName explicitly sets the table name for GORM.
func (Combo) TableName() string {
	return "combos"
}
