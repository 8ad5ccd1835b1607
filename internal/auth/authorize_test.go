package auth

import (
	"errors"
	"testing"
)

func TestHasPermissionIntersects(t *testing.T) {
	u := &User{ID: "u1", Permissions: []Permission{PermissionUser, PermissionItemDelete}}

	if !HasPermission(u, PermissionAdmin, PermissionItemDelete) {
		t.Fatal("expected intersection with ITEMDELETE")
	}
	if HasPermission(u, PermissionAdmin, PermissionPermissionUpdate) {
		t.Fatal("unexpected intersection")
	}
	if HasPermission(u) {
		t.Fatal("empty accepted set must match nothing")
	}
	if HasPermission(nil, PermissionUser) {
		t.Fatal("nil user holds nothing")
	}
}

func TestRequirePermission(t *testing.T) {
	u := &User{ID: "u1", Permissions: []Permission{PermissionUser}}

	if err := RequirePermission(u, PermissionUser); err != nil {
		t.Fatalf("unexpected denial: %v", err)
	}
	if err := RequirePermission(u, PermissionAdmin); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if err := RequirePermission(nil, PermissionAdmin); !errors.Is(err, ErrAuthenticationRequired) {
		t.Fatalf("expected ErrAuthenticationRequired, got %v", err)
	}
}

func TestRequireOwnerOrPermission(t *testing.T) {
	owner := &User{ID: "owner", Permissions: []Permission{PermissionUser}}
	admin := &User{ID: "admin", Permissions: []Permission{PermissionAdmin}}
	bystander := &User{ID: "other", Permissions: []Permission{PermissionUser}}

	// Owner passes without any of the accepted permissions.
	if err := RequireOwnerOrPermission(owner, "owner", PermissionAdmin, PermissionItemDelete); err != nil {
		t.Fatalf("owner denied: %v", err)
	}
	// Non-owner passes through the permission set.
	if err := RequireOwnerOrPermission(admin, "owner", PermissionAdmin, PermissionItemDelete); err != nil {
		t.Fatalf("admin denied: %v", err)
	}
	// Neither owner nor permitted.
	if err := RequireOwnerOrPermission(bystander, "owner", PermissionAdmin, PermissionItemDelete); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	// Empty owner id never grants ownership.
	if err := RequireOwnerOrPermission(bystander, "", PermissionAdmin); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied for empty owner, got %v", err)
	}
}

func TestParsePermissions(t *testing.T) {
	perms, err := ParsePermissions([]string{"user", " ADMIN ", "user"})
	if err != nil {
		t.Fatalf("ParsePermissions: %v", err)
	}
	if len(perms) != 2 || perms[0] != PermissionUser || perms[1] != PermissionAdmin {
		t.Fatalf("unexpected set: %v", perms)
	}

	if _, err := ParsePermissions([]string{"SUPERUSER"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
