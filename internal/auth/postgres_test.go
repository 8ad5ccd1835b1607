package auth

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

func userRows(t *testing.T, u *User) *sqlmock.Rows {
	t.Helper()
	expiry := u.ResetTokenExpiry
	if expiry.IsZero() {
		expiry = time.Unix(0, 0).UTC()
	}
	return sqlmock.NewRows([]string{
		"id", "email", "password_hash", "permissions", "reset_token", "reset_token_expiry", "created_at", "updated_at",
	}).AddRow(u.ID, u.Email, u.PasswordHash, []byte(`["USER"]`), u.ResetToken, expiry, u.CreatedAt, u.UpdatedAt)
}

func TestPGStoreCreateDuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("insert into users").
		WithArgs(sqlmock.AnyArg(), "a@b.com", "hash", []byte(`["USER"]`)).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	store := NewPGStore(db)
	u := &User{Email: "a@b.com", PasswordHash: "hash", Permissions: []Permission{PermissionUser}}
	if err := store.Create(context.Background(), u); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPGStoreFindNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("select .* from users where id").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	store := NewPGStore(db)
	if _, err := store.Find(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGStoreRedeemResetTokenSingleStatement(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now().UTC()
	user := &User{
		ID:           "u1",
		Email:        "a@b.com",
		PasswordHash: "new-hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// The whole check-and-clear is one UPDATE: match by token and unexpired
	// window, clear both reset fields, return the row.
	mock.ExpectQuery("update users\\s+set password_hash=\\$1, reset_token=null, reset_token_expiry=null").
		WithArgs("new-hash", "tok", sqlmock.AnyArg()).
		WillReturnRows(userRows(t, user))

	store := NewPGStore(db)
	got, err := store.RedeemResetToken(context.Background(), "tok", "new-hash", now)
	if err != nil {
		t.Fatalf("RedeemResetToken: %v", err)
	}
	if got.ID != "u1" || got.ResetPending() {
		t.Fatalf("unexpected redeemed user: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPGStoreRedeemResetTokenNoMatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("update users").
		WithArgs("new-hash", "tok", sqlmock.AnyArg()).
		WillReturnError(sql.ErrNoRows)

	store := NewPGStore(db)
	if _, err := store.RedeemResetToken(context.Background(), "tok", "new-hash", time.Now()); !errors.Is(err, ErrResetTokenInvalid) {
		t.Fatalf("expected ErrResetTokenInvalid, got %v", err)
	}
}

func TestPGStoreUpdatePermissionsMissingUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("update users set permissions").
		WithArgs([]byte(`["USER","ADMIN"]`), "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	store := NewPGStore(db)
	err = store.UpdatePermissions(context.Background(), "missing", []Permission{PermissionUser, PermissionAdmin})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGStoreSetResetToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	expiry := time.Now().Add(time.Hour)
	mock.ExpectExec("update users set reset_token").
		WithArgs("tok", expiry, "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	store := NewPGStore(db)
	if err := store.SetResetToken(context.Background(), "u1", "tok", expiry); err != nil {
		t.Fatalf("SetResetToken: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
