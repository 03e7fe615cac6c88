package engine

import (
	"sync"
)

// Manager tracks live sessions by id. Unlike the chart state, the registry is
// shared between HTTP handlers and websocket goroutines, so it carries its own
// lock.
type Manager struct {
	mu       sync.Mutex
	opts     Options
	sessions map[string]*Session
}

// NewManager creates a registry whose sessions share the given options.
func NewManager(opts Options) *Manager {
	return &Manager{
		opts:     opts,
		sessions: make(map[string]*Session),
	}
}

// Open creates and registers a new session.
func (m *Manager) Open() *Session {
	s := NewSession(m.opts)
	m.mu.Lock()
	m.sessions[s.ID()] = s
	m.mu.Unlock()
	return s
}

// Get returns the session with the given id, or nil.
func (m *Manager) Get(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[id]
}

// Release closes and forgets a session. Unknown ids are ignored.
func (m *Manager) Release(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		s.Close()
	}
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// CloseAll closes every session, for shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()
	for _, s := range sessions {
		s.Close()
	}
}
