package models

import "testing"

func TestHasGlobalPermissionDirect(t *testing.T) {
	user := &User{GlobalPermissions: []string{"combos.manage"}}

	if !user.HasGlobalPermission("combos.manage") {
		t.Error("expected direct permission to be granted")
	}
	if user.HasGlobalPermission("orders.manage") {
		t.Error("expected unrelated permission to be denied")
	}
}

func TestHasGlobalPermissionThroughRole(t *testing.T) {
	admin := &Role{Name: "admin", GlobalPermissions: []string{"orders.manage", "earnings.view"}}
	user := &User{Roles: []*Role{admin}}

	if !user.HasGlobalPermission("orders.manage") {
		t.Error("expected role permission to be granted")
	}
	if user.HasGlobalPermission("users.manage") {
		t.Error("expected permission outside the role to be denied")
	}
}

func TestHasGlobalPermissionNilRole(t *testing.T) {
	user := &User{Roles: []*Role{nil}}

	if user.HasGlobalPermission("orders.manage") {
		t.Error("expected no permission from a nil role entry")
	}
}
