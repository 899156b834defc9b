package repository

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/omegonstudio/fotospatagonia-backend/models"
)

// RoleRepository handles database operations for Role entities
type RoleRepository struct {
	DB *gorm.DB
}

// NewRoleRepository creates a new instance of RoleRepository
func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{DB: db}
}

// Create creates a new role record
func (r *RoleRepository) Create(role *models.Role) error {
	err := r.DB.Create(role).Error
	if err != nil {
		return fmt.Errorf("failed to create role %s: %w", role.Name, err)
	}
	return nil
}

// ListAll retrieves all roles
func (r *RoleRepository) ListAll() ([]models.Role, error) {
	var roles []models.Role
	err := r.DB.Order("name ASC").Find(&roles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}

// GetByID retrieves a role by its ID
func (r *RoleRepository) GetByID(id uint) (*models.Role, error) {
	var role models.Role
	err := r.DB.First(&role, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get role by ID %d: %w", id, err)
	}
	return &role, nil
}

// GetByName retrieves a role by its unique name
func (r *RoleRepository) GetByName(name string) (*models.Role, error) {
	var role models.Role
	err := r.DB.Where("name = ?", name).First(&role).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get role by name %s: %w", name, err)
	}
	return &role, nil
}

// Update applies non-nil fields to a role record
func (r *RoleRepository) Update(roleID uint, name *string, description *string, globalPermissions *[]string) error {
	updates := make(map[string]interface{})
	if name != nil {
		updates["name"] = *name
	}
	if description != nil {
		updates["description"] = *description
	}
	if globalPermissions != nil {
		updates["global_permissions"] = *globalPermissions
	}
	if len(updates) == 0 {
		return nil
	}
	result := r.DB.Model(&models.Role{}).Where("id = ?", roleID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update role ID %d: %w", roleID, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a role and its user assignments
func (r *RoleRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", id).Delete(&models.UserRole{}).Error; err != nil {
			return fmt.Errorf("failed to delete role assignments for role ID %d: %w", id, err)
		}
		result := tx.Delete(&models.Role{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete role ID %d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// AddUserToRole assigns a role to a user. Assigning an already held
// role is a no-op.
func (r *RoleRepository) AddUserToRole(userID, roleID uint) error {
	assignment := models.UserRole{UserID: userID, RoleID: roleID}
	err := r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&assignment).Error
	if err != nil {
		return fmt.Errorf("failed to assign role %d to user %d: %w", roleID, userID, err)
	}
	return nil
}

// RemoveUserFromRole removes a role assignment from a user
func (r *RoleRepository) RemoveUserFromRole(userID, roleID uint) error {
	result := r.DB.Where("user_id = ? AND role_id = ?", userID, roleID).Delete(&models.UserRole{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove role %d from user %d: %w", roleID, userID, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindUsersByRoleID retrieves the users holding a role
func (r *RoleRepository) FindUsersByRoleID(roleID uint) ([]models.User, error) {
	var role models.Role
	err := r.DB.Preload("Users").First(&role, roleID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to list users for role ID %d: %w", roleID, err)
	}

	users := make([]models.User, 0, len(role.Users))
	for _, userPtr := range role.Users {
		if userPtr != nil {
			users = append(users, *userPtr)
		}
	}
	return users, nil
}
