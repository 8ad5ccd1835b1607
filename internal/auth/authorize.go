package auth

// HasPermission reports whether the user's permission set intersects the
// accepted set. An empty accepted set matches nothing.
func HasPermission(u *User, accepted ...Permission) bool {
	if u == nil {
		return false
	}
	held := make(map[Permission]struct{}, len(u.Permissions))
	for _, p := range u.Permissions {
		held[p] = struct{}{}
	}
	for _, p := range accepted {
		if _, ok := held[p]; ok {
			return true
		}
	}
	return false
}

// RequirePermission fails with ErrPermissionDenied unless the user holds at
// least one of the accepted permissions. Callers must run this before any
// mutating store call.
func RequirePermission(u *User, accepted ...Permission) error {
	if u == nil {
		return ErrAuthenticationRequired
	}
	if !HasPermission(u, accepted...) {
		return ErrPermissionDenied
	}
	return nil
}

// RequireOwnerOrPermission lets the owner of the target entity through, and
// otherwise falls back to the permission check. This is the gate item
// deletion and order lookup use: owner OR permission, never AND.
func RequireOwnerOrPermission(u *User, ownerID string, accepted ...Permission) error {
	if u == nil {
		return ErrAuthenticationRequired
	}
	if ownerID != "" && u.ID == ownerID {
		return nil
	}
	if !HasPermission(u, accepted...) {
		return ErrPermissionDenied
	}
	return nil
}
