package auth

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"stitchmart.org/internal/ids"
)

var _ UserStore = (*MemoryStore)(nil)

// MemoryStore implements UserStore with in-process concurrency safety.
// Used by tests and by the server when no database is configured. One mutex
// guards every operation, so check-then-write sequences such as
// RedeemResetToken are serialized the same way a transaction would be.
type MemoryStore struct {
	mu      sync.RWMutex
	users   map[string]*User
	byEmail map[string]string
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:   make(map[string]*User),
		byEmail: make(map[string]string),
	}
}

func (s *MemoryStore) Create(ctx context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(u.Email))
	if _, taken := s.byEmail[email]; taken {
		return ErrAlreadyExists
	}
	if u.ID == "" {
		u.ID = ids.New()
	}
	now := time.Now().UTC()
	u.Email = email
	u.CreatedAt = now
	u.UpdatedAt = now
	s.users[u.ID] = u.Clone()
	s.byEmail[email] = u.ID
	return nil
}

func (s *MemoryStore) Find(ctx context.Context, id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return u.Clone(), nil
}

func (s *MemoryStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, ErrNotFound
	}
	return s.users[id].Clone(), nil
}

func (s *MemoryStore) List(ctx context.Context) ([]*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) UpdatePermissions(ctx context.Context, userID string, perms []Permission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.Permissions = append([]Permission(nil), perms...)
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *MemoryStore) SetResetToken(ctx context.Context, userID, token string, expiry time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.ResetToken = token
	u.ResetTokenExpiry = expiry
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *MemoryStore) RedeemResetToken(ctx context.Context, token, passwordHash string, now time.Time) (*User, error) {
	if token == "" {
		return nil, ErrResetTokenInvalid
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ResetToken != token {
			continue
		}
		if !u.ResetTokenExpiry.After(now) {
			break
		}
		u.PasswordHash = passwordHash
		u.ResetToken = ""
		u.ResetTokenExpiry = time.Time{}
		u.UpdatedAt = time.Now().UTC()
		return u.Clone(), nil
	}
	return nil, ErrResetTokenInvalid
}
