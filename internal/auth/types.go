package auth

import "time"

// User is an account holder. Email is unique and case-normalized to
// lowercase before persistence. The reset fields are set only while a
// password reset is pending and are cleared atomically on redemption.
type User struct {
	ID               string
	Email            string
	PasswordHash     string
	Permissions      []Permission
	ResetToken       string
	ResetTokenExpiry time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ResetPending reports whether an unredeemed reset credential is stored.
func (u *User) ResetPending() bool {
	return u.ResetToken != "" && !u.ResetTokenExpiry.IsZero()
}

// Clone returns a deep copy so store callers never share slices.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	out := *u
	out.Permissions = append([]Permission(nil), u.Permissions...)
	return &out
}
