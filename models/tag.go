package models

// Tag labels photos and albums for gallery filtering.
type Tag struct {
	ID     uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name   string   `gorm:"size:50;not null;unique" json:"name"`
	Photos []*Photo `gorm:"many2many:photo_tags;" json:"-"`
	Albums []*Album `gorm:"many2many:album_tags;" json:"-"`
}

// TableName explicitly sets the table name for GORM.
func (Tag) TableName() string {
	return "tags"
}
