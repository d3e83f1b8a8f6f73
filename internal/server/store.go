package server

import (
	"errors"
	"sync"

	"quickdraw/internal/game"
)

var errSessionNotFound = errors.New("game not found")

// Store keeps the live game sessions in memory. Every mutation of a session
// runs inside Update while the store lock is held, so machine transitions
// never interleave.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*game.Machine
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*game.Machine),
	}
}

func (s *Store) Put(id string, machine *game.Machine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = machine
}

func (s *Store) Update(id string, update func(machine *game.Machine) error) (*game.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	machine, ok := s.sessions[id]
	if !ok {
		return nil, errSessionNotFound
	}
	if err := update(machine); err != nil {
		return nil, err
	}
	return machine.Game(), nil
}

// Snapshot returns the current game for a session under the store lock.
func (s *Store) Snapshot(id string) (*game.Game, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	machine, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	return machine.Game(), true
}

func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}
