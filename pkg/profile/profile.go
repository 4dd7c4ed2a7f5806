// Package profile stores the optional details of the current user.
package profile

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"slices"
	"strings"
	"sync"
)

var ErrInvalidProfile = errors.New("invalid profile")

type UserDetails struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Age        int      `json:"age,omitempty"`
	Occupation string   `json:"occupation,omitempty"`
	Interests  []string `json:"interests,omitempty"`
}

func (d UserDetails) Validate() error {
	var errs []error
	if strings.TrimSpace(d.Name) == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if strings.TrimSpace(d.Email) == "" {
		errs = append(errs, errors.New("email is required"))
	} else if _, err := mail.ParseAddress(d.Email); err != nil {
		errs = append(errs, fmt.Errorf("email %q is not valid", d.Email))
	}
	if d.Age < 0 || d.Age > 150 {
		errs = append(errs, fmt.Errorf("age %d is out of range", d.Age))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, errors.Join(errs...))
	}
	return nil
}

// Store keeps a single optional profile. Get returns nil when nothing was set.
type Store interface {
	Get(ctx context.Context) (*UserDetails, error)
	Set(ctx context.Context, details UserDetails) error
}

// InMemoryStore lives as long as the process that created it.
type InMemoryStore struct {
	mu      sync.RWMutex
	details *UserDetails
}

var _ Store = (*InMemoryStore)(nil)

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Get(context.Context) (*UserDetails, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.details == nil {
		return nil, nil
	}
	return clone(s.details), nil
}

func (s *InMemoryStore) Set(_ context.Context, details UserDetails) error {
	details.Name = strings.TrimSpace(details.Name)
	details.Email = strings.TrimSpace(details.Email)
	details.Occupation = strings.TrimSpace(details.Occupation)
	if err := details.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.details = clone(&details)
	return nil
}

func clone(d *UserDetails) *UserDetails {
	c := *d
	c.Interests = slices.Clone(d.Interests)
	return &c
}
