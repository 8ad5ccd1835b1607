package auth

import "errors"

var (
	// ErrNotFound indicates the referenced user does not exist.
	ErrNotFound = errors.New("auth: not found")
	// ErrAlreadyExists indicates a user with the same email already exists.
	ErrAlreadyExists = errors.New("auth: already exists")
	// ErrInvalidInput indicates malformed input, e.g. mismatched passwords.
	ErrInvalidInput = errors.New("auth: invalid input")
	// ErrInvalidCredentials indicates a bad email/password pair at signin.
	ErrInvalidCredentials = errors.New("auth: invalid email or password")
	// ErrInvalidToken indicates the session credential failed verification.
	ErrInvalidToken = errors.New("auth: invalid token")
	// ErrAuthenticationRequired indicates no session where one is required.
	ErrAuthenticationRequired = errors.New("auth: authentication required")
	// ErrPermissionDenied indicates the acting user is authenticated but lacks
	// the required ownership or permission.
	ErrPermissionDenied = errors.New("auth: permission denied")
	// ErrResetTokenInvalid indicates a reset token that is unknown, already
	// redeemed, or past its expiry.
	ErrResetTokenInvalid = errors.New("auth: reset token invalid or expired")
)
