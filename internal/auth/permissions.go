package auth

import (
	"fmt"
	"strings"
)

// Permission is an enumerated capability tag. Users hold a set of these;
// checks intersect the user's set with the permissions an operation accepts.
type Permission string

const (
	PermissionUser             Permission = "USER"
	PermissionAdmin            Permission = "ADMIN"
	PermissionItemCreate       Permission = "ITEMCREATE"
	PermissionItemUpdate       Permission = "ITEMUPDATE"
	PermissionItemDelete       Permission = "ITEMDELETE"
	PermissionPermissionUpdate Permission = "PERMISSIONUPDATE"
)

// AllPermissions is the closed set of valid tags, in display order.
var AllPermissions = []Permission{
	PermissionUser,
	PermissionAdmin,
	PermissionItemCreate,
	PermissionItemUpdate,
	PermissionItemDelete,
	PermissionPermissionUpdate,
}

var validPermissions = func() map[Permission]struct{} {
	set := make(map[Permission]struct{}, len(AllPermissions))
	for _, p := range AllPermissions {
		set[p] = struct{}{}
	}
	return set
}()

// ParsePermission validates a raw tag against the closed set.
func ParsePermission(raw string) (Permission, error) {
	p := Permission(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := validPermissions[p]; !ok {
		return "", fmt.Errorf("%w: unknown permission %q", ErrInvalidInput, raw)
	}
	return p, nil
}

// ParsePermissions validates and deduplicates a list of raw tags.
func ParsePermissions(raw []string) ([]Permission, error) {
	seen := make(map[Permission]struct{}, len(raw))
	out := make([]Permission, 0, len(raw))
	for _, r := range raw {
		p, err := ParsePermission(r)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out, nil
}
