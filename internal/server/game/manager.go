package game

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"terrainchess/internal/terrainchess"
)

var ErrMatchNotFound = errors.New("match not found")

// NewMatchOptions describes a match to create. A zero Seed picks one from
// the clock; Factions selects a subset of the mode's factions.
type NewMatchOptions struct {
	Mode     terrainchess.Mode
	Seed     int64
	Factions []terrainchess.Faction
}

type Manager struct {
	mu      sync.RWMutex
	matches map[string]*MatchState
	seeds   terrainchess.SeedSource
	now     func() time.Time
}

// NewManager hosts matches in memory. seeds feeds the Chi-garden overlay of
// every match and may be nil.
func NewManager(seeds terrainchess.SeedSource) *Manager {
	return &Manager{
		matches: make(map[string]*MatchState),
		seeds:   seeds,
		now:     time.Now,
	}
}

func (m *Manager) NewMatch(opts NewMatchOptions) (*MatchState, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = m.now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	var (
		g   *terrainchess.Game
		err error
	)
	if len(opts.Factions) > 0 {
		g, err = terrainchess.NewGameWithFactions(opts.Mode, opts.Factions, rng)
		if err != nil {
			return nil, err
		}
	} else {
		if !opts.Mode.Valid() {
			return nil, fmt.Errorf("unknown mode %d", opts.Mode)
		}
		g = terrainchess.NewGame(opts.Mode, rng)
	}
	if m.seeds != nil {
		g.SetSeedSource(m.seeds)
	}

	now := m.now()
	st := &MatchState{
		ID:        uuid.NewString(),
		Seed:      seed,
		Game:      g,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.mu.Lock()
	m.matches[st.ID] = st
	m.mu.Unlock()
	return st, nil
}

func (m *Manager) Get(id string) (*MatchState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.matches[id]
	if !ok {
		return nil, ErrMatchNotFound
	}
	return st, nil
}

// Do runs fn with exclusive access to the match. UpdatedAt moves when fn
// returns without error.
func (m *Manager) Do(id string, fn func(st *MatchState) error) error {
	st, err := m.Get(id)
	if err != nil {
		return err
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	if err := fn(st); err != nil {
		return err
	}
	st.UpdatedAt = m.now()
	return nil
}

func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.matches[id]; !ok {
		return ErrMatchNotFound
	}
	delete(m.matches, id)
	return nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.matches)
}

// Sweep drops matches untouched for longer than idle and reports how many
// were removed.
func (m *Manager) Sweep(idle time.Duration) int {
	cutoff := m.now().Add(-idle)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, st := range m.matches {
		st.mu.Lock()
		stale := st.UpdatedAt.Before(cutoff)
		st.mu.Unlock()
		if stale {
			delete(m.matches, id)
			n++
		}
	}
	return n
}
