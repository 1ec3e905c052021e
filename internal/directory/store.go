// Package directory holds the in-memory activity directory.
package directory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"example.com/signup/internal/domain"
)

// entry guards one activity's roster. Locking is per activity, so signups for
// different activities never contend.
type entry struct {
	mu       sync.RWMutex
	activity domain.Activity
}

// Store is an in-memory domain.Directory. The set of activities is fixed at
// construction; only rosters change afterwards.
type Store struct {
	entries map[string]*entry
}

// New builds a Store from the seed activities.
func New(activities []domain.Activity) (*Store, error) {
	entries := make(map[string]*entry, len(activities))
	for _, activity := range activities {
		if _, dup := entries[activity.Name]; dup {
			return nil, fmt.Errorf("duplicate activity %q", activity.Name)
		}
		entries[activity.Name] = &entry{activity: activity.Clone()}
	}
	return &Store{entries: entries}, nil
}

// List implements domain.Directory.
func (s *Store) List(ctx context.Context) (map[string]domain.Activity, error) {
	out := make(map[string]domain.Activity, len(s.entries))
	for name, e := range s.entries {
		e.mu.RLock()
		out[name] = e.activity.Clone()
		e.mu.RUnlock()
	}
	return out, nil
}

// Get returns a snapshot of a single activity. It sits outside domain.Directory and
// exists for inspecting one roster in tests and tooling.
func (s *Store) Get(ctx context.Context, name string) (domain.Activity, error) {
	e, ok := s.entries[name]
	if !ok {
		return domain.Activity{}, domain.ErrActivityNotFound
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.activity.Clone(), nil
}

// AddParticipant implements domain.Directory.
func (s *Store) AddParticipant(ctx context.Context, name, email string) (domain.Activity, error) {
	e, ok := s.entries[name]
	if !ok {
		return domain.Activity{}, domain.ErrActivityNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.activity.HasParticipant(email) {
		return domain.Activity{}, domain.ErrAlreadyRegistered
	}
	e.activity.Participants = append(e.activity.Participants, email)
	return e.activity.Clone(), nil
}

// RemoveParticipant implements domain.Directory.
func (s *Store) RemoveParticipant(ctx context.Context, name, email string) (domain.Activity, error) {
	e, ok := s.entries[name]
	if !ok {
		return domain.Activity{}, domain.ErrActivityNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	idx := slices.Index(e.activity.Participants, email)
	if idx < 0 {
		return domain.Activity{}, domain.ErrNotRegistered
	}
	e.activity.Participants = slices.Delete(e.activity.Participants, idx, idx+1)
	return e.activity.Clone(), nil
}

// Names returns the activity names in sorted order.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
