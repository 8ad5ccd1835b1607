package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"stitchmart.org/internal/ids"
)

var (
	_ ItemStore  = (*PGItemStore)(nil)
	_ OrderStore = (*PGOrderStore)(nil)
)

// PGItemStore implements ItemStore over PostgreSQL.
type PGItemStore struct {
	db *sql.DB
}

func NewPGItemStore(db *sql.DB) *PGItemStore {
	return &PGItemStore{db: db}
}

const itemColumns = `id, title, description, price, coalesce(image, ''), coalesce(large_image, ''), user_id, created_at, updated_at`

func scanItem(row interface{ Scan(...any) error }) (*Item, error) {
	var it Item
	err := row.Scan(&it.ID, &it.Title, &it.Description, &it.Price, &it.Image, &it.LargeImage, &it.UserID, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return &it, nil
}

func (s *PGItemStore) Create(ctx context.Context, item *Item) error {
	if item.ID == "" {
		item.ID = ids.New()
	}
	row := s.db.QueryRowContext(ctx,
		`insert into items(id, title, description, price, image, large_image, user_id)
		 values($1, $2, $3, $4, $5, $6, $7)
		 returning created_at, updated_at`,
		item.ID, item.Title, item.Description, item.Price, item.Image, item.LargeImage, item.UserID,
	)
	return row.Scan(&item.CreatedAt, &item.UpdatedAt)
}

func (s *PGItemStore) Find(ctx context.Context, id string) (*Item, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+itemColumns+` from items where id=$1`, id)
	return scanItem(row)
}

func (s *PGItemStore) List(ctx context.Context) ([]*Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`select `+itemColumns+` from items order by created_at asc`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, it)
	}
	return res, rows.Err()
}

func (s *PGItemStore) Update(ctx context.Context, id string, patch ItemPatch) (*Item, error) {
	sets := []string{"updated_at=now()"}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if patch.Title != nil {
		sets = append(sets, "title="+arg(*patch.Title))
	}
	if patch.Description != nil {
		sets = append(sets, "description="+arg(*patch.Description))
	}
	if patch.Price != nil {
		sets = append(sets, "price="+arg(*patch.Price))
	}
	query := `update items set ` + strings.Join(sets, ", ") +
		` where id=` + arg(id) + ` returning ` + itemColumns
	row := s.db.QueryRowContext(ctx, query, args...)
	return scanItem(row)
}

func (s *PGItemStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `delete from items where id=$1`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrItemNotFound
	}
	return nil
}

// PGOrderStore implements OrderStore over PostgreSQL.
type PGOrderStore struct {
	db *sql.DB
}

func NewPGOrderStore(db *sql.DB) *PGOrderStore {
	return &PGOrderStore{db: db}
}

const orderColumns = `id, user_id, total, charge, created_at`

func scanOrder(row interface{ Scan(...any) error }) (*Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.UserID, &o.Total, &o.Charge, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (s *PGOrderStore) Create(ctx context.Context, order *Order) error {
	if order.ID == "" {
		order.ID = ids.New()
	}
	row := s.db.QueryRowContext(ctx,
		`insert into orders(id, user_id, total, charge)
		 values($1, $2, $3, $4)
		 returning created_at`,
		order.ID, order.UserID, order.Total, order.Charge,
	)
	return row.Scan(&order.CreatedAt)
}

func (s *PGOrderStore) Find(ctx context.Context, id string) (*Order, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+orderColumns+` from orders where id=$1`, id)
	return scanOrder(row)
}

func (s *PGOrderStore) ListByUser(ctx context.Context, userID string) ([]*Order, error) {
	rows, err := s.db.QueryContext(ctx,
		`select `+orderColumns+` from orders where user_id=$1 order by created_at asc`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, o)
	}
	return res, rows.Err()
}
