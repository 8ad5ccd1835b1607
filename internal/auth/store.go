package auth

import (
	"context"
	"time"
)

// UserStore describes persistence operations required by the account service.
// Every mutation is atomic per user row; RedeemResetToken in particular is a
// single check-and-clear so two concurrent redemptions of one token cannot
// both succeed.
type UserStore interface {
	// Create persists a new user. Fails with ErrAlreadyExists when the
	// (lowercased) email is taken.
	Create(ctx context.Context, u *User) error
	// Find returns the user by id, or ErrNotFound.
	Find(ctx context.Context, id string) (*User, error)
	// FindByEmail returns the user by lowercased email, or ErrNotFound.
	FindByEmail(ctx context.Context, email string) (*User, error)
	// List returns all users ordered by creation time.
	List(ctx context.Context) ([]*User, error)
	// UpdatePermissions replaces the user's permission set.
	UpdatePermissions(ctx context.Context, userID string, perms []Permission) error
	// SetResetToken stores a pending reset credential and its expiry.
	SetResetToken(ctx context.Context, userID, token string, expiry time.Time) error
	// RedeemResetToken finds the user whose stored reset token matches and
	// whose expiry is after now, replaces the password hash, clears both
	// reset fields, and returns the updated user. ErrResetTokenInvalid when
	// no row matches.
	RedeemResetToken(ctx context.Context, token, passwordHash string, now time.Time) (*User, error)
}
