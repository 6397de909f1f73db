package game

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"htmx-tictactoe/models"
)

var ErrGameNotFound = errors.New("game not found")

// Store keeps game state for the lifetime of a browser session.
type Store interface {
	Save(ctx context.Context, state models.GameState) error
	Get(ctx context.Context, id string) (models.GameState, error)
	Delete(ctx context.Context, id string) error
}

// MemoryStore is the default in-process store. Games idle for longer than ttl are
// dropped on access; a zero ttl keeps them until the process exits.
type MemoryStore struct {
	mu    sync.RWMutex
	games map[string]models.GameState
	ttl   time.Duration
	now   func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		games: make(map[string]models.GameState),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *MemoryStore) Save(_ context.Context, state models.GameState) error {
	state.History = slices.Clone(state.History)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[state.ID] = state
	s.evictLocked()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (models.GameState, error) {
	s.mu.RLock()
	state, ok := s.games[id]
	s.mu.RUnlock()

	if !ok || s.expired(state) {
		return models.GameState{}, ErrGameNotFound
	}
	state.History = slices.Clone(state.History)
	return state, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
	return nil
}

// Len reports how many games are held, including expired ones not yet evicted.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

func (s *MemoryStore) expired(state models.GameState) bool {
	return s.ttl > 0 && s.now().Sub(state.Updated) > s.ttl
}

func (s *MemoryStore) evictLocked() {
	if s.ttl <= 0 {
		return
	}
	for id, state := range s.games {
		if s.expired(state) {
			delete(s.games, id)
		}
	}
}

// CreateGame creates a new game and stores it
func CreateGame(ctx context.Context, store Store) (*Controller, error) {
	ctrl := NewController(NewID())
	if err := store.Save(ctx, ctrl.Snapshot()); err != nil {
		return nil, err
	}
	return ctrl, nil
}

// LoadGame retrieves a game by ID and resumes its controller.
func LoadGame(ctx context.Context, store Store, id string) (*Controller, error) {
	state, err := store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return Restore(state), nil
}
