package models

import "time"

// Role bundles permission keys so that users can be granted a set at
// once (an "admin" or "photographer" profile) instead of individual
// keys.
type Role struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	Name              string    `json:"name" gorm:"uniqueIndex;not null"`
	Description       *string   `json:"description,omitempty" gorm:"size:255"` // Nullable
	GlobalPermissions []string  `json:"global_permissions" gorm:"serializer:json"`
	Users             []*User   `json:"-" gorm:"many2many:user_roles;"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// UserRole is the join table for the many-to-many relationship between
// users and roles.
type UserRole struct {
	UserID    uint      `json:"user_id" gorm:"primaryKey"`
	RoleID    uint      `json:"role_id" gorm:"primaryKey"`
	User      User      `json:"-" gorm:"foreignKey:UserID"`
	Role      Role      `json:"-" gorm:"foreignKey:RoleID"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name for UserRole to be `user_roles`
func (UserRole) TableName() string {
	return "user_roles"
}
