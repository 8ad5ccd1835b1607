// Package cart tracks which catalog items a signed-in user intends to buy.
// A cart line is unique per (user, item); adding the same item again bumps
// the quantity instead of creating a duplicate row.
package cart

import (
	"context"
	"time"
)

// Item is a single cart line.
type Item struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ItemID    string    `json:"itemId"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Store persists cart lines. Upsert must be atomic with respect to
// concurrent calls for the same (userID, itemID) pair: the lines merge,
// they never duplicate.
type Store interface {
	// Upsert adds one unit of itemID to userID's cart, creating the line
	// if absent, and returns the resulting line.
	Upsert(ctx context.Context, userID, itemID string) (*Item, error)
	// Find returns a line by its id. ErrLineNotFound if absent.
	Find(ctx context.Context, id string) (*Item, error)
	// Delete removes a line by its id. ErrLineNotFound if absent.
	Delete(ctx context.Context, id string) error
	// ListByUser returns all of a user's lines, oldest first.
	ListByUser(ctx context.Context, userID string) ([]*Item, error)
}
