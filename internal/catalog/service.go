package catalog

import (
	"context"
	"fmt"
	"strings"

	"stitchmart.org/internal/auth"
)

// Service applies the ownership and permission gates in front of the stores.
// Reads on items are public; everything else needs a signed-in user.
type Service struct {
	items  ItemStore
	orders OrderStore
}

func NewService(items ItemStore, orders OrderStore) *Service {
	return &Service{items: items, orders: orders}
}

// CreateItem requires a signed-in user and records them as the owner.
func (s *Service) CreateItem(ctx context.Context, acting *auth.User, item *Item) (*Item, error) {
	if acting == nil {
		return nil, auth.ErrAuthenticationRequired
	}
	item.Title = strings.TrimSpace(item.Title)
	if item.Title == "" {
		return nil, fmt.Errorf("%w: title required", ErrInvalidInput)
	}
	if item.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	item.UserID = acting.ID
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem lets the owner, or a holder of ADMIN or ITEMUPDATE, change
// title, description and price. Ownership never changes on update.
func (s *Service) UpdateItem(ctx context.Context, acting *auth.User, id string, patch ItemPatch) (*Item, error) {
	item, err := s.items.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireOwnerOrPermission(acting, item.UserID, auth.PermissionAdmin, auth.PermissionItemUpdate); err != nil {
		return nil, err
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, fmt.Errorf("%w: title required", ErrInvalidInput)
	}
	if patch.Price != nil && *patch.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	return s.items.Update(ctx, id, patch)
}

// DeleteItem loads the item first so the gate sees the real owner; the
// delete only runs once the gate has passed.
func (s *Service) DeleteItem(ctx context.Context, acting *auth.User, id string) error {
	item, err := s.items.Find(ctx, id)
	if err != nil {
		return err
	}
	if err := auth.RequireOwnerOrPermission(acting, item.UserID, auth.PermissionAdmin, auth.PermissionItemDelete); err != nil {
		return err
	}
	return s.items.Delete(ctx, id)
}

func (s *Service) Item(ctx context.Context, id string) (*Item, error) {
	return s.items.Find(ctx, id)
}

func (s *Service) Items(ctx context.Context) ([]*Item, error) {
	return s.items.List(ctx)
}

// Order returns a single order to its owner or to an ADMIN.
func (s *Service) Order(ctx context.Context, acting *auth.User, id string) (*Order, error) {
	if acting == nil {
		return nil, auth.ErrAuthenticationRequired
	}
	order, err := s.orders.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireOwnerOrPermission(acting, order.UserID, auth.PermissionAdmin); err != nil {
		return nil, err
	}
	return order, nil
}

// Orders lists the acting user's own orders. ADMIN does not widen this
// listing; it only widens single-order lookup.
func (s *Service) Orders(ctx context.Context, acting *auth.User) ([]*Order, error) {
	if acting == nil {
		return nil, auth.ErrAuthenticationRequired
	}
	return s.orders.ListByUser(ctx, acting.ID)
}
