package session

import "sync"

// Manager owns the live sessions of the process, keyed by session id.
// Starting a new session never touches existing ones; callers dispose the
// handles they no longer need.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager returns an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Add registers a session under its id.
func (m *Manager) Add(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID()] = s
}

// Get returns the session with the given id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Dispose halts a session's periodic work and removes it from the
// manager.
func (m *Manager) Dispose(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	s.Dispose()
	delete(m.sessions, id)
	return nil
}

// DisposeAll halts every session, for process shutdown.
func (m *Manager) DisposeAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		s.Dispose()
		delete(m.sessions, id)
	}
}
