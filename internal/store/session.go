package store

import (
	"sync"

	"github.com/google/uuid"
)

// Session bundles the per-visitor stores. State lives only as long as the
// process; a returning visitor with an expired session starts empty.
type Session struct {
	ID            string
	Cart          *Cart
	Wishlist      *Wishlist
	Notifications *NotificationQueue
}

// SessionManager hands out sessions keyed by an opaque id, creating stores
// on first use.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
	}
}

// Get returns the session for id, or nil when unknown.
func (m *SessionManager) Get(id string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[id]
}

// GetOrCreate returns the session for id, minting a new one (with a fresh id
// when the given id is empty or unknown).
func (m *SessionManager) GetOrCreate(id string) *Session {
	if id != "" {
		if s := m.Get(id); s != nil {
			return s
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// re-check under the write lock
	if id != "" {
		if s, ok := m.sessions[id]; ok {
			return s
		}
	}

	s := &Session{
		ID:            uuid.NewString(),
		Cart:          NewCart(),
		Wishlist:      NewWishlist(),
		Notifications: NewNotificationQueue(),
	}
	m.sessions[s.ID] = s
	return s
}

// Drop discards a session and its stores.
func (m *SessionManager) Drop(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		s.Notifications.Clear()
		delete(m.sessions, id)
	}
}
