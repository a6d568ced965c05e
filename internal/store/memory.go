package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Memory is an in-process Store backed by maps guarded by a mutex, used by
// tests and by cmd/lemonchessd when no Mongo URI is configured.
type Memory struct {
	mu       sync.RWMutex
	users    map[uuid.UUID]User
	rooms    map[uuid.UUID]Room
	sessions map[uuid.UUID]Session
}

// NewMemory returns an empty in-process Store.
func NewMemory() *Memory {
	return &Memory{
		users:    make(map[uuid.UUID]User),
		rooms:    make(map[uuid.UUID]Room),
		sessions: make(map[uuid.UUID]Session),
	}
}

func (m *Memory) CreateUser(_ context.Context, u User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
	return nil
}

func (m *Memory) GetUser(_ context.Context, id uuid.UUID) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (m *Memory) CreateRoom(_ context.Context, r Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rooms[r.ID] = r
	return nil
}

func (m *Memory) OpenRooms(_ context.Context) ([]Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var open []Room
	for _, r := range m.rooms {
		if r.Open {
			open = append(open, r)
		}
	}
	return open, nil
}

func (m *Memory) CreateSession(_ context.Context, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *Memory) GetSession(_ context.Context, id uuid.UUID) (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	return s, nil
}

func (m *Memory) SaveSession(_ context.Context, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.sessions[s.ID]
	if !ok {
		return ErrNotFound
	}
	if existing.Version != s.Version-1 {
		return ErrVersionConflict
	}
	m.sessions[s.ID] = s
	return nil
}
