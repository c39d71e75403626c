package session

import (
	"sync"
	"time"

	"github.com/Ashenafi-pixel/gamecrafter-prize-wheel/engine"
	"github.com/google/uuid"
)

// Manager holds live sessions in memory. Nothing is persisted: a new session always starts a fresh engine.
type Manager struct {
	mu        sync.RWMutex
	game      *Game
	newSource func() engine.RandomSource
	sessions  map[uuid.UUID]*entry
}

type entry struct {
	machine   *Machine
	createdAt time.Time
}

// NewManager creates a manager. newSource supplies each session's random source; nil means DefaultSource.
func NewManager(game *Game, newSource func() engine.RandomSource) *Manager {
	if newSource == nil {
		newSource = engine.DefaultSource
	}
	return &Manager{
		game:      game,
		newSource: newSource,
		sessions:  make(map[uuid.UUID]*entry),
	}
}

// Game returns the shared configuration.
func (mg *Manager) Game() *Game { return mg.game }

// Create starts a session and returns its id.
func (mg *Manager) Create() (uuid.UUID, *Machine, error) {
	m, err := mg.game.NewMachine(mg.newSource())
	if err != nil {
		return uuid.Nil, nil, err
	}
	id := uuid.New()
	mg.mu.Lock()
	defer mg.mu.Unlock()
	mg.sessions[id] = &entry{machine: m, createdAt: time.Now()}
	return id, m, nil
}

// Get looks a session up.
func (mg *Manager) Get(id uuid.UUID) (*Machine, bool) {
	mg.mu.RLock()
	defer mg.mu.RUnlock()
	e, ok := mg.sessions[id]
	if !ok {
		return nil, false
	}
	return e.machine, true
}

// Delete ends a session. It reports whether the session existed.
func (mg *Manager) Delete(id uuid.UUID) bool {
	mg.mu.Lock()
	defer mg.mu.Unlock()
	if _, ok := mg.sessions[id]; !ok {
		return false
	}
	delete(mg.sessions, id)
	return true
}

// Expire removes idle sessions created before cutoff and returns how many were removed.
// Sessions with a spin in flight are kept until their round completes.
func (mg *Manager) Expire(cutoff time.Time) int {
	mg.mu.Lock()
	defer mg.mu.Unlock()
	n := 0
	for id, e := range mg.sessions {
		if e.createdAt.Before(cutoff) && e.machine.Phase() == Idle {
			delete(mg.sessions, id)
			n++
		}
	}
	return n
}

// Len is the number of live sessions.
func (mg *Manager) Len() int {
	mg.mu.RLock()
	defer mg.mu.RUnlock()
	return len(mg.sessions)
}
