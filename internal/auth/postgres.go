package auth

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"stitchmart.org/internal/ids"
)

var _ UserStore = (*PGStore)(nil)

// PGStore implements UserStore using PostgreSQL. The unique index on
// lower(email) and the single-statement reset redemption carry the
// atomicity guarantees the service relies on.
type PGStore struct {
	db *sql.DB
}

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

const userColumns = `id, email, password_hash, permissions, coalesce(reset_token, ''), coalesce(reset_token_expiry, 'epoch'::timestamptz), created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*User, error) {
	var (
		u     User
		perms []byte
	)
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &perms, &u.ResetToken, &u.ResetTokenExpiry, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(perms, &u.Permissions); err != nil {
		return nil, err
	}
	if u.ResetTokenExpiry.Unix() == 0 {
		u.ResetTokenExpiry = time.Time{}
	}
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (s *PGStore) Create(ctx context.Context, u *User) error {
	if u.ID == "" {
		u.ID = ids.New()
	}
	perms, err := json.Marshal(u.Permissions)
	if err != nil {
		return err
	}
	row := s.db.QueryRowContext(ctx,
		`insert into users(id, email, password_hash, permissions)
		 values($1, lower($2), $3, $4)
		 returning created_at, updated_at`,
		u.ID, u.Email, u.PasswordHash, perms,
	)
	if err := row.Scan(&u.CreatedAt, &u.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (s *PGStore) Find(ctx context.Context, id string) (*User, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+userColumns+` from users where id=$1`, id)
	return scanUser(row)
}

func (s *PGStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+userColumns+` from users where email=lower($1)`, email)
	return scanUser(row)
}

func (s *PGStore) List(ctx context.Context) ([]*User, error) {
	rows, err := s.db.QueryContext(ctx,
		`select `+userColumns+` from users order by created_at asc`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, u)
	}
	return res, rows.Err()
}

func (s *PGStore) UpdatePermissions(ctx context.Context, userID string, perms []Permission) error {
	payload, err := json.Marshal(perms)
	if err != nil {
		return err
	}
	result, err := s.db.ExecContext(ctx,
		`update users set permissions=$1, updated_at=now() where id=$2`,
		payload, userID,
	)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (s *PGStore) SetResetToken(ctx context.Context, userID, token string, expiry time.Time) error {
	result, err := s.db.ExecContext(ctx,
		`update users set reset_token=$1, reset_token_expiry=$2, updated_at=now() where id=$3`,
		token, expiry, userID,
	)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// RedeemResetToken is a single UPDATE whose predicate performs the
// match-and-expiry check; concurrent redemptions of the same token serialize
// on the row lock and the loser sees zero rows.
func (s *PGStore) RedeemResetToken(ctx context.Context, token, passwordHash string, now time.Time) (*User, error) {
	if token == "" {
		return nil, ErrResetTokenInvalid
	}
	row := s.db.QueryRowContext(ctx,
		`update users
		 set password_hash=$1, reset_token=null, reset_token_expiry=null, updated_at=now()
		 where reset_token=$2 and reset_token_expiry > $3
		 returning `+userColumns,
		passwordHash, token, now,
	)
	u, err := scanUser(row)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrResetTokenInvalid
	}
	return u, err
}

func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
