// Package session holds the shared auth state: the (identity, profile,
// loading) triple published by the controller and read by everything else.
package session

import (
	"sync"

	"github.com/Noaaaaa59/powerlifting-app-v2/internal/identity"
	"github.com/Noaaaaa59/powerlifting-app-v2/internal/models"
)

// Snapshot is an immutable view of the session state. Version increases on
// every change so late-arriving readers can detect staleness.
type Snapshot struct {
	Identity *identity.Identity `json:"identity"`
	Profile  *models.Profile    `json:"profile"`
	Loading  bool               `json:"loading"`
	Version  uint64             `json:"version"`
}

// Store is the observable state container. The controller is its only
// writer; the mutating methods are unexported on purpose. Everything else
// reads via Snapshot or Subscribe.
type Store struct {
	mu     sync.RWMutex
	snap   Snapshot
	subs   map[int]func(Snapshot)
	nextID int
}

func NewStore() *Store {
	return &Store{
		snap: Snapshot{Loading: true},
		subs: make(map[int]func(Snapshot)),
	}
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Subscribe registers an observer called with every published snapshot. The
// returned function unsubscribes.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) publish(mutate func(*Snapshot)) {
	s.mu.Lock()
	mutate(&s.snap)
	s.snap.Version++
	snap := s.snap
	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

func (s *Store) setIdentity(id *identity.Identity) {
	s.publish(func(snap *Snapshot) { snap.Identity = id })
}

func (s *Store) setProfile(profile *models.Profile) {
	s.publish(func(snap *Snapshot) { snap.Profile = profile })
}

func (s *Store) setLoading(loading bool) {
	s.publish(func(snap *Snapshot) { snap.Loading = loading })
}
