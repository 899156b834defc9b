package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"gorm.io/gorm"

	"github.com/omegonstudio/fotospatagonia-backend/models"
	"github.com/omegonstudio/fotospatagonia-backend/permissions"
	"github.com/omegonstudio/fotospatagonia-backend/repository"
)

type RoleHandler struct {
	Repo repository.RoleRepositoryInterface
}

func NewRoleHandler(repo repository.RoleRepositoryInterface) *RoleHandler {
	return &RoleHandler{Repo: repo}
}

type RoleCreatePayload struct {
	Name              string   `json:"name"`
	Description       *string  `json:"description,omitempty"`
	GlobalPermissions []string `json:"global_permissions"`
}

type RoleUpdatePayload struct {
	Name              *string   `json:"name,omitempty"`
	Description       *string   `json:"description,omitempty"`
	GlobalPermissions *[]string `json:"global_permissions,omitempty"`
}

// roleUserSummary is a minimal user representation for role membership
// listings.
type roleUserSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func validatePermissionKeys(keys []string) (string, bool) {
	for _, key := range keys {
		if !permissions.IsValidPermissionKey(key) {
			return key, false
		}
	}
	return "", true
}

func (h *RoleHandler) List(w http.ResponseWriter, r *http.Request) {
	roles, err := h.Repo.ListAll()
	if err != nil {
		log.Printf("Error listing roles: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "list_failed", "failed to list roles")
		return
	}
	if roles == nil {
		roles = []models.Role{}
	}
	writeJSON(w, http.StatusOK, roles)
}

func (h *RoleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamUint(r, "id")
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "invalid role id")
		return
	}

	role, err := h.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "role not found")
			return
		}
		log.Printf("Error fetching role %d: %v", id, err)
		WriteAPIError(w, http.StatusInternalServerError, "fetch_failed", "failed to fetch role")
		return
	}
	writeJSON(w, http.StatusOK, role)
}

func (h *RoleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload RoleCreatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeInvalidPayload(w)
		return
	}

	if payload.Name == "" {
		WriteAPIError(w, http.StatusBadRequest, "missing_name", "role name is required")
		return
	}
	if key, ok := validatePermissionKeys(payload.GlobalPermissions); !ok {
		WriteAPIError(w, http.StatusBadRequest, "invalid_permission", fmt.Sprintf("unknown permission key '%s'", key))
		return
	}

	if _, err := h.Repo.GetByName(payload.Name); err == nil {
		WriteAPIError(w, http.StatusConflict, "name_taken", "a role with that name already exists")
		return
	}

	role := &models.Role{
		Name:              payload.Name,
		Description:       payload.Description,
		GlobalPermissions: payload.GlobalPermissions,
	}
	if err := h.Repo.Create(role); err != nil {
		log.Printf("Error creating role %s: %v", payload.Name, err)
		WriteAPIError(w, http.StatusInternalServerError, "create_failed", "failed to create role")
		return
	}
	writeJSON(w, http.StatusCreated, role)
}

func (h *RoleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamUint(r, "id")
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "invalid role id")
		return
	}

	var payload RoleUpdatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeInvalidPayload(w)
		return
	}
	if payload.Name != nil && *payload.Name == "" {
		WriteAPIError(w, http.StatusBadRequest, "missing_name", "role name cannot be empty")
		return
	}
	if payload.GlobalPermissions != nil {
		if key, ok := validatePermissionKeys(*payload.GlobalPermissions); !ok {
			WriteAPIError(w, http.StatusBadRequest, "invalid_permission", fmt.Sprintf("unknown permission key '%s'", key))
			return
		}
	}

	if err := h.Repo.Update(id, payload.Name, payload.Description, payload.GlobalPermissions); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "role not found")
			return
		}
		log.Printf("Error updating role %d: %v", id, err)
		WriteAPIError(w, http.StatusInternalServerError, "update_failed", "failed to update role")
		return
	}

	role, err := h.Repo.GetByID(id)
	if err != nil {
		log.Printf("Error re-fetching role %d after update: %v", id, err)
		WriteAPIError(w, http.StatusInternalServerError, "fetch_failed", "failed to fetch updated role")
		return
	}
	writeJSON(w, http.StatusOK, role)
}

func (h *RoleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamUint(r, "id")
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "invalid role id")
		return
	}

	if err := h.Repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "role not found")
			return
		}
		log.Printf("Error deleting role %d: %v", id, err)
		WriteAPIError(w, http.StatusInternalServerError, "delete_failed", "failed to delete role")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Users lists the users currently holding a role.
func (h *RoleHandler) Users(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamUint(r, "id")
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "invalid role id")
		return
	}

	users, err := h.Repo.FindUsersByRoleID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "role not found")
			return
		}
		log.Printf("Error listing users for role %d: %v", id, err)
		WriteAPIError(w, http.StatusInternalServerError, "list_failed", "failed to list role users")
		return
	}

	summaries := make([]roleUserSummary, len(users))
	for i, user := range users {
		summaries[i] = roleUserSummary{ID: user.ID, Username: user.Username}
	}
	writeJSON(w, http.StatusOK, summaries)
}

// AddUser assigns the role to a user.
func (h *RoleHandler) AddUser(w http.ResponseWriter, r *http.Request) {
	roleID, ok := urlParamUint(r, "id")
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "invalid role id")
		return
	}
	userID, ok := urlParamUint(r, "userID")
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "invalid user id")
		return
	}

	if _, err := h.Repo.GetByID(roleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "role not found")
			return
		}
		log.Printf("Error fetching role %d: %v", roleID, err)
		WriteAPIError(w, http.StatusInternalServerError, "fetch_failed", "failed to fetch role")
		return
	}

	if err := h.Repo.AddUserToRole(userID, roleID); err != nil {
		log.Printf("Error assigning role %d to user %d: %v", roleID, userID, err)
		WriteAPIError(w, http.StatusInternalServerError, "assign_failed", "failed to assign role")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveUser removes the role from a user.
func (h *RoleHandler) RemoveUser(w http.ResponseWriter, r *http.Request) {
	roleID, ok := urlParamUint(r, "id")
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "invalid role id")
		return
	}
	userID, ok := urlParamUint(r, "userID")
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "invalid user id")
		return
	}

	if err := h.Repo.RemoveUserFromRole(userID, roleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "role assignment not found")
			return
		}
		log.Printf("Error removing role %d from user %d: %v", roleID, userID, err)
		WriteAPIError(w, http.StatusInternalServerError, "remove_failed", "failed to remove role")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
