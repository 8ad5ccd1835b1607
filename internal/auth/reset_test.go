package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type recordingMailer struct {
	to      string
	subject string
	html    string
	sends   int
	err     error
}

func (m *recordingMailer) Send(ctx context.Context, from, to, subject, html string) error {
	m.sends++
	m.to = to
	m.subject = subject
	m.html = html
	return m.err
}

// countingStore records redemption attempts so tests can prove validation
// runs before any store access.
type countingStore struct {
	*MemoryStore
	redeems int
}

func (s *countingStore) RedeemResetToken(ctx context.Context, token, hash string, now time.Time) (*User, error) {
	s.redeems++
	return s.MemoryStore.RedeemResetToken(ctx, token, hash, now)
}

func TestRequestResetUnknownEmail(t *testing.T) {
	svc, _ := newTestService(t)
	if err := svc.RequestReset(context.Background(), "ghost@nowhere.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRequestResetPersistsTokenAndMails(t *testing.T) {
	mailer := &recordingMailer{}
	store := NewMemoryStore()
	codec, _ := NewCodec("test-secret")
	svc, err := NewService(store, codec,
		WithMailer(mailer, "store@stitchmart.org", "https://shop.example"))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	ctx := context.Background()
	if _, _, err := svc.Signup(ctx, "a@b.com", "pw123456"); err != nil {
		t.Fatalf("Signup: %v", err)
	}

	before := time.Now()
	if err := svc.RequestReset(ctx, "A@B.com"); err != nil {
		t.Fatalf("RequestReset: %v", err)
	}

	user, _ := store.FindByEmail(ctx, "a@b.com")
	if user.ResetToken == "" || len(user.ResetToken) != 40 {
		t.Fatalf("expected 40-char hex token, got %q", user.ResetToken)
	}
	if want := before.Add(time.Hour); user.ResetTokenExpiry.Before(want.Add(-time.Minute)) || user.ResetTokenExpiry.After(want.Add(time.Minute)) {
		t.Fatalf("expiry not ~1h out: %v", user.ResetTokenExpiry)
	}
	if mailer.sends != 1 || mailer.to != "a@b.com" {
		t.Fatalf("expected one mail to the account, got %d to %q", mailer.sends, mailer.to)
	}
	if !strings.Contains(mailer.html, user.ResetToken) {
		t.Fatal("mail body missing the redemption token")
	}
}

func TestRequestResetSwallowsMailFailure(t *testing.T) {
	mailer := &recordingMailer{err: errors.New("smtp down")}
	store := NewMemoryStore()
	codec, _ := NewCodec("test-secret")
	svc, _ := NewService(store, codec,
		WithMailer(mailer, "store@stitchmart.org", "https://shop.example"))
	ctx := context.Background()
	_, _, _ = svc.Signup(ctx, "a@b.com", "pw123456")

	if err := svc.RequestReset(ctx, "a@b.com"); err != nil {
		t.Fatalf("delivery failure must not surface, got %v", err)
	}
	user, _ := store.FindByEmail(ctx, "a@b.com")
	if !user.ResetPending() {
		t.Fatal("persisted reset state must survive a delivery failure")
	}
}

func TestResetPasswordMismatchSkipsStore(t *testing.T) {
	store := &countingStore{MemoryStore: NewMemoryStore()}
	codec, _ := NewCodec("test-secret")
	svc, _ := NewService(store, codec)

	if _, _, err := svc.ResetPassword(context.Background(), "t1", "x", "y"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if store.redeems != 0 {
		t.Fatalf("mismatch must be rejected before any store lookup, saw %d", store.redeems)
	}
}

func TestResetPasswordIsSingleUse(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	user, _, _ := svc.Signup(ctx, "a@b.com", "old-password")
	if err := svc.RequestReset(ctx, "a@b.com"); err != nil {
		t.Fatalf("RequestReset: %v", err)
	}
	stored, _ := store.Find(ctx, user.ID)
	token := stored.ResetToken

	got, credential, err := svc.ResetPassword(ctx, token, "new-password", "new-password")
	if err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("redeemed for wrong user: %q", got.ID)
	}
	if credential == "" {
		t.Fatal("expected fresh session credential")
	}
	if got.ResetPending() {
		t.Fatal("reset fields must be cleared on redemption")
	}
	if err := VerifyPassword(got.PasswordHash, "new-password"); err != nil {
		t.Fatalf("new password does not verify: %v", err)
	}
	if err := VerifyPassword(got.PasswordHash, "old-password"); err == nil {
		t.Fatal("old password still verifies")
	}

	if _, _, err := svc.ResetPassword(ctx, token, "again", "again"); !errors.Is(err, ErrResetTokenInvalid) {
		t.Fatalf("second redemption: expected ErrResetTokenInvalid, got %v", err)
	}
}

func TestResetPasswordExpiredToken(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	svc, store := newTestService(t, WithClock(func() time.Time { return clock() }))
	ctx := context.Background()

	user, _, _ := svc.Signup(ctx, "a@b.com", "pw123456")
	if err := svc.RequestReset(ctx, "a@b.com"); err != nil {
		t.Fatalf("RequestReset: %v", err)
	}
	stored, _ := store.Find(ctx, user.ID)

	// Jump past the one hour window.
	later := now.Add(time.Hour + time.Minute)
	clock = func() time.Time { return later }

	if _, _, err := svc.ResetPassword(ctx, stored.ResetToken, "new-password", "new-password"); !errors.Is(err, ErrResetTokenInvalid) {
		t.Fatalf("expected ErrResetTokenInvalid, got %v", err)
	}
}
