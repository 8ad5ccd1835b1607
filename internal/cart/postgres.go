package cart

import (
	"context"
	"database/sql"
	"errors"

	"stitchmart.org/internal/ids"
)

var _ Store = (*PGStore)(nil)

// PGStore implements Store using PostgreSQL. The unique(user_id, item_id)
// constraint plus ON CONFLICT upsert makes concurrent adds merge into one
// line regardless of interleaving.
type PGStore struct {
	db *sql.DB
}

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

const lineColumns = `id, user_id, item_id, quantity, created_at, updated_at`

func scanLine(row interface{ Scan(...any) error }) (*Item, error) {
	var l Item
	err := row.Scan(&l.ID, &l.UserID, &l.ItemID, &l.Quantity, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLineNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (s *PGStore) Upsert(ctx context.Context, userID, itemID string) (*Item, error) {
	row := s.db.QueryRowContext(ctx,
		`insert into cart_items(id, user_id, item_id, quantity)
		 values($1, $2, $3, 1)
		 on conflict (user_id, item_id)
		 do update set quantity = cart_items.quantity + 1, updated_at = now()
		 returning `+lineColumns,
		ids.New(), userID, itemID,
	)
	return scanLine(row)
}

func (s *PGStore) Find(ctx context.Context, id string) (*Item, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+lineColumns+` from cart_items where id=$1`, id)
	return scanLine(row)
}

func (s *PGStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `delete from cart_items where id=$1`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrLineNotFound
	}
	return nil
}

func (s *PGStore) ListByUser(ctx context.Context, userID string) ([]*Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`select `+lineColumns+` from cart_items where user_id=$1 order by created_at asc`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*Item
	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, l)
	}
	return res, rows.Err()
}
