package cart

import (
	"context"
	"fmt"

	"stitchmart.org/internal/auth"
	"stitchmart.org/internal/obs"
)

// Service applies cart rules on top of a Store: every operation needs a
// signed-in user, and users only ever touch their own lines.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Add puts one unit of itemID into userID's cart, merging with an existing
// line for the same item.
func (s *Service) Add(ctx context.Context, userID, itemID string) (*Item, error) {
	if userID == "" {
		return nil, auth.ErrAuthenticationRequired
	}
	if itemID == "" {
		return nil, fmt.Errorf("%w: item id required", ErrInvalidInput)
	}
	line, err := s.store.Upsert(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	obs.CountCartMerge()
	return line, nil
}

// Remove deletes a line, but only if it belongs to userID. The ownership
// check happens before the delete so a foreign line is reported as
// ErrNotOwner, never silently removed.
func (s *Service) Remove(ctx context.Context, userID, lineID string) error {
	if userID == "" {
		return auth.ErrAuthenticationRequired
	}
	line, err := s.store.Find(ctx, lineID)
	if err != nil {
		return err
	}
	if line.UserID != userID {
		return ErrNotOwner
	}
	return s.store.Delete(ctx, lineID)
}

// List returns userID's cart lines, oldest first.
func (s *Service) List(ctx context.Context, userID string) ([]*Item, error) {
	if userID == "" {
		return nil, auth.ErrAuthenticationRequired
	}
	return s.store.ListByUser(ctx, userID)
}
