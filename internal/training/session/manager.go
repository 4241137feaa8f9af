package session

import (
	"sync"

	"github.com/architect/ear-training/internal/common/errors"
	"github.com/architect/ear-training/internal/theory"
	"github.com/architect/ear-training/internal/training/models"
	"github.com/google/uuid"
)

// Manager owns the live sessions. Sessions are in-memory only; the result
// log and progress they write through are the durable state.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	deps     Deps
}

func NewManager(deps Deps) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		deps:     deps,
	}
}

// Create starts a session for an unlocked mode and difficulty. Settings
// come from the persisted record (beginner defaults if never saved); a
// difficulty in the request overrides the saved tier for this session.
func (m *Manager) Create(mode models.TrainingMode, gameMode models.GameMode, difficulty string, settings models.TrainingSettings) (*Session, error) {
	if difficulty != "" {
		if !theory.IsDifficulty(difficulty) {
			return nil, errors.BadRequest("unknown difficulty: " + difficulty)
		}
		settings.Difficulty = difficulty
	}

	progress, err := m.deps.Progress.Get()
	if err == nil {
		if !progress.HasMode(mode) {
			return nil, errors.Forbidden("training mode not unlocked yet: " + string(mode))
		}
		if !progress.HasDifficulty(settings.Difficulty) {
			return nil, errors.Forbidden("difficulty not unlocked yet: " + settings.Difficulty)
		}
	}

	s, err := newSession(uuid.NewString(), mode, gameMode, settings, m.deps)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s, nil
}

// Get returns a live session by id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, errors.NotFound("session")
	}
	return s, nil
}

// Delete tears a session down and forgets it.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()
	if !ok {
		return errors.NotFound("session")
	}
	s.Close()
	return nil
}

// Count reports how many sessions are live.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
