// Package session holds conversation state. A Session exposes immutable
// snapshots and is replaced wholesale on every commit.
package session

import (
	"encoding/json"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const maxTitleLength = 50

type Session struct {
	ID        string
	Title     string
	CreatedAt time.Time

	mu       sync.RWMutex
	snapshot Snapshot
}

type Opt func(s *Session)

func WithID(id string) Opt {
	return func(s *Session) {
		s.ID = id
	}
}

func WithTitle(title string) Opt {
	return func(s *Session) {
		s.Title = title
	}
}

func WithMessages(msgs ...Message) Opt {
	return func(s *Session) {
		s.snapshot = NewSnapshot(msgs...)
	}
}

func New(opts ...Opt) *Session {
	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshot
}

// Commit appends msgs and swaps in the resulting snapshot in one step, so
// readers either see all of msgs or none of them. The first user message
// also names an untitled session.
func (s *Session) Commit(msgs ...Message) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot = s.snapshot.Append(msgs...)
	if s.Title == "" {
		for _, m := range msgs {
			if m.Kind == KindUser {
				s.Title = titleFrom(m.Content)
				break
			}
		}
	}
	return s.snapshot
}

// GetTitle reads the title, which the first committed user message sets.
func (s *Session) GetTitle() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.Title
}

func (s *Session) MarshalJSON() ([]byte, error) {
	snap := s.Snapshot()
	return json.Marshal(struct {
		ID        string    `json:"id"`
		Title     string    `json:"title"`
		CreatedAt time.Time `json:"created_at"`
		Messages  []Message `json:"messages"`
	}{
		ID:        s.ID,
		Title:     s.GetTitle(),
		CreatedAt: s.CreatedAt,
		Messages:  snap.messages,
	})
}

func titleFrom(content string) string {
	title := strings.Join(strings.Fields(content), " ")
	if utf8.RuneCountInString(title) <= maxTitleLength {
		return title
	}
	runes := []rune(title)
	return strings.TrimSpace(string(runes[:maxTitleLength])) + "…"
}
