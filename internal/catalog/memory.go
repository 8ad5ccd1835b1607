package catalog

import (
	"context"
	"sort"
	"sync"
	"time"

	"stitchmart.org/internal/ids"
)

var (
	_ ItemStore  = (*MemoryItemStore)(nil)
	_ OrderStore = (*MemoryOrderStore)(nil)
)

// MemoryItemStore keeps items in process memory, for tests and for running
// without Postgres.
type MemoryItemStore struct {
	mu    sync.RWMutex
	items map[string]*Item
	now   func() time.Time
}

func NewMemoryItemStore() *MemoryItemStore {
	return &MemoryItemStore{items: make(map[string]*Item), now: time.Now}
}

func (s *MemoryItemStore) Create(ctx context.Context, item *Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.ID == "" {
		item.ID = ids.New()
	}
	now := s.now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now
	cp := *item
	s.items[item.ID] = &cp
	return nil
}

func (s *MemoryItemStore) Find(ctx context.Context, id string) (*Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	cp := *item
	return &cp, nil
}

func (s *MemoryItemStore) List(ctx context.Context) ([]*Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]*Item, 0, len(s.items))
	for _, item := range s.items {
		cp := *item
		res = append(res, &cp)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.Before(res[j].CreatedAt) })
	return res, nil
}

func (s *MemoryItemStore) Update(ctx context.Context, id string, patch ItemPatch) (*Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	if patch.Title != nil {
		item.Title = *patch.Title
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.Price != nil {
		item.Price = *patch.Price
	}
	item.UpdatedAt = s.now().UTC()
	cp := *item
	return &cp, nil
}

func (s *MemoryItemStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return ErrItemNotFound
	}
	delete(s.items, id)
	return nil
}

// MemoryOrderStore keeps orders in process memory.
type MemoryOrderStore struct {
	mu     sync.RWMutex
	orders map[string]*Order
	now    func() time.Time
}

func NewMemoryOrderStore() *MemoryOrderStore {
	return &MemoryOrderStore{orders: make(map[string]*Order), now: time.Now}
}

func (s *MemoryOrderStore) Create(ctx context.Context, order *Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if order.ID == "" {
		order.ID = ids.New()
	}
	order.CreatedAt = s.now().UTC()
	cp := *order
	s.orders[order.ID] = &cp
	return nil
}

func (s *MemoryOrderStore) Find(ctx context.Context, id string) (*Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	cp := *order
	return &cp, nil
}

func (s *MemoryOrderStore) ListByUser(ctx context.Context, userID string) ([]*Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var res []*Order
	for _, order := range s.orders {
		if order.UserID == userID {
			cp := *order
			res = append(res, &cp)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.Before(res[j].CreatedAt) })
	return res, nil
}
