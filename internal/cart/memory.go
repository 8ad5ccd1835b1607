package cart

import (
	"context"
	"sort"
	"sync"
	"time"

	"stitchmart.org/internal/ids"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps cart lines in process memory. One mutex guards the whole
// store, so Upsert is naturally atomic.
type MemoryStore struct {
	mu    sync.Mutex
	lines map[string]*Item          // line id -> line
	byKey map[[2]string]string      // (userID, itemID) -> line id
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		lines: make(map[string]*Item),
		byKey: make(map[[2]string]string),
		now:   time.Now,
	}
}

func (s *MemoryStore) Upsert(ctx context.Context, userID, itemID string) (*Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := [2]string{userID, itemID}
	if id, ok := s.byKey[key]; ok {
		line := s.lines[id]
		line.Quantity++
		line.UpdatedAt = s.now().UTC()
		return cloneLine(line), nil
	}
	now := s.now().UTC()
	line := &Item{
		ID:        ids.New(),
		UserID:    userID,
		ItemID:    itemID,
		Quantity:  1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.lines[line.ID] = line
	s.byKey[key] = line.ID
	return cloneLine(line), nil
}

func (s *MemoryStore) Find(ctx context.Context, id string) (*Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	line, ok := s.lines[id]
	if !ok {
		return nil, ErrLineNotFound
	}
	return cloneLine(line), nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	line, ok := s.lines[id]
	if !ok {
		return ErrLineNotFound
	}
	delete(s.lines, id)
	delete(s.byKey, [2]string{line.UserID, line.ItemID})
	return nil
}

func (s *MemoryStore) ListByUser(ctx context.Context, userID string) ([]*Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res []*Item
	for _, line := range s.lines {
		if line.UserID == userID {
			res = append(res, cloneLine(line))
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.Before(res[j].CreatedAt) })
	return res, nil
}

func cloneLine(l *Item) *Item {
	cp := *l
	return &cp
}
