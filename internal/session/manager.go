package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/sells-group/location-explorer/internal/dataset"
	"github.com/sells-group/location-explorer/internal/observability"
)

// Manager creates and tracks sessions by id.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ds       *dataset.Store
	metrics  *observability.Metrics
}

// NewManager returns a manager backed by the given dataset store.
// metrics may be nil.
func NewManager(ds *dataset.Store, metrics *observability.Metrics) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		ds:       ds,
		metrics:  metrics,
	}
}

// Create starts a new session and returns it.
func (m *Manager) Create() *Session {
	s := New(uuid.New().String(), m.ds)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.SessionsActive.Inc()
	}
	return s
}

// Get returns the session with the given id.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Delete removes a session. Deleting an unknown id is a no-op.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok && m.metrics != nil {
		m.metrics.SessionsActive.Dec()
	}
}
