package session

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

var (
	ErrEmptyID  = errors.New("session ID cannot be empty")
	ErrNotFound = errors.New("session not found")
)

// Store keeps conversations for the lifetime of the process.
type Store interface {
	AddSession(ctx context.Context, session *Session) error
	GetSession(ctx context.Context, id string) (*Session, error)
	GetSessions(ctx context.Context) ([]*Session, error)
	DeleteSession(ctx context.Context, id string) error
}

// InMemorySessionStore forgets sessions that have not been read or written
// for the idle TTL.
type InMemorySessionStore struct {
	mu    sync.Mutex
	cache *cache.Cache
}

var _ Store = (*InMemorySessionStore)(nil)

// NewInMemorySessionStore creates a store. A non-positive ttl keeps sessions
// forever.
func NewInMemorySessionStore(ttl time.Duration) *InMemorySessionStore {
	if ttl <= 0 {
		return &InMemorySessionStore{cache: cache.New(cache.NoExpiration, 0)}
	}
	return &InMemorySessionStore{cache: cache.New(ttl, ttl/2)}
}

func (s *InMemorySessionStore) AddSession(_ context.Context, session *Session) error {
	if session.ID == "" {
		return ErrEmptyID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.SetDefault(session.ID, session)
	return nil
}

// GetSession also refreshes the session's idle deadline.
func (s *InMemorySessionStore) GetSession(_ context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, ErrEmptyID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.cache.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	session := v.(*Session)
	s.cache.SetDefault(id, session)
	return session, nil
}

// GetSessions returns live sessions, oldest first.
func (s *InMemorySessionStore) GetSessions(context.Context) ([]*Session, error) {
	s.mu.Lock()
	items := s.cache.Items()
	s.mu.Unlock()

	sessions := make([]*Session, 0, len(items))
	for _, item := range items {
		sessions = append(sessions, item.Object.(*Session))
	}
	slices.SortFunc(sessions, func(a, b *Session) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.ID, b.ID))
	})
	return sessions, nil
}

func (s *InMemorySessionStore) DeleteSession(_ context.Context, id string) error {
	if id == "" {
		return ErrEmptyID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cache.Get(id); !ok {
		return ErrNotFound
	}
	s.cache.Delete(id)
	return nil
}
