package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"stitchmart.org/internal/mail"
)

const defaultResetTTL = time.Hour

// Service provides the account operations: signup, signin, permission
// management, and the password reset workflow (reset.go). All authorization
// checks run before any store mutation.
type Service struct {
	store  UserStore
	codec  *Codec
	mailer mail.Mailer

	mailFrom string
	resetURL string

	now      func() time.Time
	resetTTL time.Duration
}

// ServiceOption configures Service behavior.
type ServiceOption func(*Service) error

// WithMailer wires the outbound mail transport used by reset notifications.
// resetURL is the frontend page the redemption link points at.
func WithMailer(m mail.Mailer, from, resetURL string) ServiceOption {
	return func(s *Service) error {
		if m == nil {
			return errors.New("auth: mailer is nil")
		}
		s.mailer = m
		s.mailFrom = from
		s.resetURL = strings.TrimRight(resetURL, "/")
		return nil
	}
}

// WithResetTTL overrides how long a reset credential stays redeemable.
func WithResetTTL(ttl time.Duration) ServiceOption {
	return func(s *Service) error {
		if ttl > 0 {
			s.resetTTL = ttl
		}
		return nil
	}
}

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) ServiceOption {
	return func(s *Service) error {
		if fn != nil {
			s.now = fn
		}
		return nil
	}
}

// NewService constructs the account service.
func NewService(store UserStore, codec *Codec, opts ...ServiceOption) (*Service, error) {
	if store == nil {
		return nil, errors.New("auth: store is required")
	}
	if codec == nil {
		return nil, errors.New("auth: codec is required")
	}
	svc := &Service{
		store:    store,
		codec:    codec,
		now:      time.Now,
		resetTTL: defaultResetTTL,
	}
	for _, opt := range opts {
		if err := opt(svc); err != nil {
			return nil, err
		}
	}
	return svc, nil
}

// Signup creates an account and returns the user together with a fresh
// session credential. Email is lowercased before persistence and the initial
// permission set is exactly {USER}.
func (s *Service) Signup(ctx context.Context, email, password string) (*User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") || password == "" {
		return nil, "", ErrInvalidInput
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, "", err
	}
	user := &User{
		Email:        email,
		PasswordHash: hash,
		Permissions:  []Permission{PermissionUser},
	}
	if err := s.store.Create(ctx, user); err != nil {
		return nil, "", err
	}

	credential, err := s.codec.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, credential, nil
}

// Signin authenticates an email/password pair and returns a fresh session
// credential. Unknown email and wrong password are indistinguishable to the
// caller: both fail with ErrInvalidCredentials.
func (s *Service) Signin(ctx context.Context, email, password string) (*User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}
	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	credential, err := s.codec.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, credential, nil
}

// User returns the account by id.
func (s *Service) User(ctx context.Context, id string) (*User, error) {
	return s.store.Find(ctx, id)
}

// Users lists all accounts. Gated on ADMIN or PERMISSIONUPDATE.
func (s *Service) Users(ctx context.Context, acting *User) ([]*User, error) {
	if err := RequirePermission(acting, PermissionAdmin, PermissionPermissionUpdate); err != nil {
		return nil, err
	}
	return s.store.List(ctx)
}

// UpdatePermissions replaces the target user's permission set. Gated on
// ADMIN or PERMISSIONUPDATE; every tag must come from the closed set.
func (s *Service) UpdatePermissions(ctx context.Context, acting *User, targetID string, raw []string) (*User, error) {
	if err := RequirePermission(acting, PermissionAdmin, PermissionPermissionUpdate); err != nil {
		return nil, err
	}
	perms, err := ParsePermissions(raw)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpdatePermissions(ctx, targetID, perms); err != nil {
		return nil, err
	}
	return s.store.Find(ctx, targetID)
}
