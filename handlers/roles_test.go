package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/omegonstudio/fotospatagonia-backend/models"
	"github.com/omegonstudio/fotospatagonia-backend/permissions"
)

type fakeRoleRepo struct {
	roles       map[uint]*models.Role
	assignments map[uint][]uint // roleID -> userIDs
	nextID      uint
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{
		roles:       make(map[uint]*models.Role),
		assignments: make(map[uint][]uint),
		nextID:      1,
	}
}

func (r *fakeRoleRepo) Create(role *models.Role) error {
	role.ID = r.nextID
	r.nextID++
	stored := *role
	r.roles[role.ID] = &stored
	return nil
}

func (r *fakeRoleRepo) ListAll() ([]models.Role, error) {
	var out []models.Role
	for _, role := range r.roles {
		out = append(out, *role)
	}
	return out, nil
}

func (r *fakeRoleRepo) GetByID(id uint) (*models.Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *role
	return &out, nil
}

func (r *fakeRoleRepo) GetByName(name string) (*models.Role, error) {
	for _, role := range r.roles {
		if role.Name == name {
			out := *role
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRoleRepo) Update(roleID uint, name *string, description *string, globalPermissions *[]string) error {
	role, ok := r.roles[roleID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if name != nil {
		role.Name = *name
	}
	if description != nil {
		role.Description = description
	}
	if globalPermissions != nil {
		role.GlobalPermissions = *globalPermissions
	}
	return nil
}

func (r *fakeRoleRepo) Delete(id uint) error {
	if _, ok := r.roles[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.roles, id)
	delete(r.assignments, id)
	return nil
}

func (r *fakeRoleRepo) AddUserToRole(userID, roleID uint) error {
	for _, existing := range r.assignments[roleID] {
		if existing == userID {
			return nil
		}
	}
	r.assignments[roleID] = append(r.assignments[roleID], userID)
	return nil
}

func (r *fakeRoleRepo) RemoveUserFromRole(userID, roleID uint) error {
	users := r.assignments[roleID]
	for i, existing := range users {
		if existing == userID {
			r.assignments[roleID] = append(users[:i], users[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeRoleRepo) FindUsersByRoleID(roleID uint) ([]models.User, error) {
	if _, ok := r.roles[roleID]; !ok {
		return nil, gorm.ErrRecordNotFound
	}
	var users []models.User
	for _, userID := range r.assignments[roleID] {
		users = append(users, models.User{ID: userID, Username: "user"})
	}
	return users, nil
}

func newRoleRouter(repo *fakeRoleRepo) chi.Router {
	h := NewRoleHandler(repo)
	r := chi.NewRouter()
	r.Get("/roles", h.List)
	r.Post("/roles", h.Create)
	r.Get("/roles/{id}", h.Get)
	r.Put("/roles/{id}", h.Update)
	r.Delete("/roles/{id}", h.Delete)
	r.Get("/roles/{id}/users", h.Users)
	r.Put("/roles/{id}/users/{userID}", h.AddUser)
	r.Delete("/roles/{id}/users/{userID}", h.RemoveUser)
	return r
}

func doRoleRequest(t *testing.T, router chi.Router, method, url string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("failed to encode payload: %v", err)
		}
	}
	req := httptest.NewRequest(method, url, &body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateRole(t *testing.T) {
	router := newRoleRouter(newFakeRoleRepo())

	rec := doRoleRequest(t, router, http.MethodPost, "/roles", map[string]interface{}{
		"name":               "admin",
		"global_permissions": []string{permissions.ManageOrders, permissions.ViewEarnings},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var role models.Role
	if err := json.NewDecoder(rec.Body).Decode(&role); err != nil {
		t.Fatalf("failed to decode role: %v", err)
	}
	if role.Name != "admin" || len(role.GlobalPermissions) != 2 {
		t.Errorf("unexpected role in response: %+v", role)
	}
}

func TestCreateRoleRejectsUnknownPermission(t *testing.T) {
	router := newRoleRouter(newFakeRoleRepo())

	rec := doRoleRequest(t, router, http.MethodPost, "/roles", map[string]interface{}{
		"name":               "admin",
		"global_permissions": []string{"does.not.exist"},
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown permission key, got %d", rec.Code)
	}
}

func TestCreateRoleRejectsDuplicateName(t *testing.T) {
	router := newRoleRouter(newFakeRoleRepo())

	doRoleRequest(t, router, http.MethodPost, "/roles", map[string]interface{}{"name": "admin"})
	rec := doRoleRequest(t, router, http.MethodPost, "/roles", map[string]interface{}{"name": "admin"})
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 for duplicate role name, got %d", rec.Code)
	}
}

func TestUpdateRolePermissions(t *testing.T) {
	repo := newFakeRoleRepo()
	router := newRoleRouter(repo)

	doRoleRequest(t, router, http.MethodPost, "/roles", map[string]interface{}{"name": "staff"})
	rec := doRoleRequest(t, router, http.MethodPut, "/roles/1", map[string]interface{}{
		"global_permissions": []string{permissions.UploadPhotos},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	role, err := repo.GetByID(1)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(role.GlobalPermissions) != 1 || role.GlobalPermissions[0] != permissions.UploadPhotos {
		t.Errorf("expected permissions to be replaced, got %v", role.GlobalPermissions)
	}
}

func TestUpdateUnknownRoleReturns404(t *testing.T) {
	router := newRoleRouter(newFakeRoleRepo())

	rec := doRoleRequest(t, router, http.MethodPut, "/roles/99", map[string]interface{}{"name": "x"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown role, got %d", rec.Code)
	}
}

func TestRoleMembership(t *testing.T) {
	router := newRoleRouter(newFakeRoleRepo())

	doRoleRequest(t, router, http.MethodPost, "/roles", map[string]interface{}{"name": "staff"})

	rec := doRoleRequest(t, router, http.MethodPut, "/roles/1/users/7", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 on assignment, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doRoleRequest(t, router, http.MethodGet, "/roles/1/users", nil)
	var users []roleUserSummary
	if err := json.NewDecoder(rec.Body).Decode(&users); err != nil {
		t.Fatalf("failed to decode users: %v", err)
	}
	if len(users) != 1 || users[0].ID != 7 {
		t.Errorf("expected user 7 in role, got %+v", users)
	}

	rec = doRoleRequest(t, router, http.MethodDelete, "/roles/1/users/7", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 on removal, got %d", rec.Code)
	}
	rec = doRoleRequest(t, router, http.MethodDelete, "/roles/1/users/7", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 removing an absent assignment, got %d", rec.Code)
	}
}
