// Package memory is the in-memory application store used by tests and the
// default no-setup run.
package memory

import (
	"context"
	"sort"
	"sync"

	"grantcalc/internal/core"
	"grantcalc/internal/store"
)

type Store struct {
	mu   sync.Mutex
	apps map[string]core.Application
}

func New() *Store {
	return &Store{apps: make(map[string]core.Application)}
}

// Save stores a deep copy of the snapshot so later caller mutations cannot
// leak into the store.
func (s *Store) Save(_ context.Context, app core.Application) error {
	if err := app.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apps[app.Number] = cloneApplication(app)
	return nil
}

func (s *Store) Get(_ context.Context, number string) (core.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	app, ok := s.apps[number]
	if !ok {
		return core.Application{}, store.ErrNotFound
	}
	return cloneApplication(app), nil
}

func (s *Store) List(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	numbers := make([]string, 0, len(s.apps))
	for n := range s.apps {
		numbers = append(numbers, n)
	}
	sort.Strings(numbers)
	return numbers, nil
}

func cloneApplication(app core.Application) core.Application {
	out := app
	out.HostClubs = append([]core.Club(nil), app.HostClubs...)
	out.InternationalClubs = append([]core.Club(nil), app.InternationalClubs...)
	out.OtherDonors = append([]core.Donor(nil), app.OtherDonors...)
	return out
}
