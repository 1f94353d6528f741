package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"monastery360/models"
)

// ErrSessionNotFound is returned by stores for missing or expired sessions.
var ErrSessionNotFound = errors.New("planner session not found")

// UpdateFunc computes the next state from the stored one. It may be called
// more than once for a single Update and must not have side effects.
type UpdateFunc func(cur models.WizardState) (models.WizardState, error)

// SessionStore persists planner sessions. Update is an atomic
// read-modify-write of one session; a missing session is ErrSessionNotFound.
type SessionStore interface {
	Create(ctx context.Context, state models.WizardState) error
	Get(ctx context.Context, sessionID string) (*models.WizardState, error)
	Update(ctx context.Context, sessionID string, fn UpdateFunc) (*models.WizardState, error)
	Delete(ctx context.Context, sessionID string) error
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemorySessionStore keeps JSON snapshots in a map. Used when Redis is not
// configured and in tests.
type MemorySessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]memoryEntry
	now      func() time.Time
}

func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		ttl:      ttl,
		sessions: make(map[string]memoryEntry),
		now:      time.Now,
	}
}

func (m *MemorySessionStore) Create(_ context.Context, state models.WizardState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal planner session: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[state.SessionID] = memoryEntry{data: data, expiresAt: m.now().Add(m.ttl)}
	return nil
}

func (m *MemorySessionStore) load(sessionID string) (models.WizardState, error) {
	entry, ok := m.sessions[sessionID]
	if !ok || (m.ttl > 0 && m.now().After(entry.expiresAt)) {
		delete(m.sessions, sessionID)
		return models.WizardState{}, ErrSessionNotFound
	}
	var state models.WizardState
	if err := json.Unmarshal(entry.data, &state); err != nil {
		return models.WizardState{}, fmt.Errorf("failed to parse planner session %s: %w", sessionID, err)
	}
	return state, nil
}

func (m *MemorySessionStore) Get(_ context.Context, sessionID string) (*models.WizardState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, err := m.load(sessionID)
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (m *MemorySessionStore) Update(_ context.Context, sessionID string, fn UpdateFunc) (*models.WizardState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur, err := m.load(sessionID)
	if err != nil {
		return nil, err
	}
	next, err := fn(cur)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(next)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal planner session: %w", err)
	}
	m.sessions[sessionID] = memoryEntry{data: data, expiresAt: m.now().Add(m.ttl)}
	return &next, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[sessionID]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, sessionID)
	return nil
}
