package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"stitchmart.org/internal/mail"
	"stitchmart.org/internal/obs"
)

// The reset credential is 20 random bytes hex-encoded. It is generated from
// the system entropy pool, never derived from the signing secret.
const resetTokenBytes = 20

func newResetToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// RequestReset starts the reset workflow for the account behind email:
// persists a fresh time-boxed token on the user row, then dispatches the
// redemption link. Fails with ErrNotFound when no such account exists,
// which leaks account existence to the caller. Mail delivery failures are
// logged and not surfaced; the persisted token stays valid either way.
func (s *Service) RequestReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return ErrInvalidInput
	}
	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	token, err := newResetToken()
	if err != nil {
		return err
	}
	expiry := s.now().Add(s.resetTTL)
	if err := s.store.SetResetToken(ctx, user.ID, token, expiry); err != nil {
		return err
	}

	if s.mailer != nil {
		link := s.resetURL + "/reset?resetToken=" + token
		body := mail.ResetEmail(link)
		if err := s.mailer.Send(ctx, s.mailFrom, user.Email, "Your password reset token", body); err != nil {
			obs.LogRequest(map[string]any{
				"level": "warn",
				"msg":   "reset mail delivery failed",
				"email": user.Email,
				"error": err.Error(),
			})
		}
	}
	return nil
}

// ResetPassword redeems a reset credential. The password/confirmation check
// runs before any store access. Redemption is single-use: the store clears
// the token in the same atomic step that matches it, so a second call with
// the same token fails with ErrResetTokenInvalid. On success the user is
// signed in again with a fresh session credential.
func (s *Service) ResetPassword(ctx context.Context, token, password, confirm string) (*User, string, error) {
	if password == "" || password != confirm {
		return nil, "", ErrInvalidInput
	}
	if strings.TrimSpace(token) == "" {
		return nil, "", ErrResetTokenInvalid
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, "", err
	}
	user, err := s.store.RedeemResetToken(ctx, token, hash, s.now())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, "", ErrResetTokenInvalid
		}
		return nil, "", err
	}

	credential, err := s.codec.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, credential, nil
}
