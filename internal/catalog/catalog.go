// Package catalog holds the sellable items and the orders placed for them.
// Reads are public; writes go through ownership and permission gates.
package catalog

import (
	"context"
	"errors"
	"time"
)

var (
	ErrItemNotFound  = errors.New("catalog: item not found")
	ErrOrderNotFound = errors.New("catalog: order not found")
	ErrInvalidInput  = errors.New("catalog: invalid input")
)

// Item is a sellable product. Price is in cents.
type Item struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       int       `json:"price"`
	Image       string    `json:"image,omitempty"`
	LargeImage  string    `json:"largeImage,omitempty"`
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ItemPatch carries the updatable fields of an item. Nil means leave as is.
type ItemPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Price       *int    `json:"price"`
}

// Order is a completed purchase. Total is in cents; Charge is the payment
// processor's reference.
type Order struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Total     int       `json:"total"`
	Charge    string    `json:"charge"`
	CreatedAt time.Time `json:"createdAt"`
}

// ItemStore persists items.
type ItemStore interface {
	Create(ctx context.Context, item *Item) error
	Find(ctx context.Context, id string) (*Item, error)
	List(ctx context.Context) ([]*Item, error)
	Update(ctx context.Context, id string, patch ItemPatch) (*Item, error)
	Delete(ctx context.Context, id string) error
}

// OrderStore persists orders.
type OrderStore interface {
	Create(ctx context.Context, order *Order) error
	Find(ctx context.Context, id string) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]*Order, error)
}
