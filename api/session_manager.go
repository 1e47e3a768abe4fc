package api

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/lpc17xx/canfilter/service"
)

var (
	// ErrSessionNotFound is returned when a session ID has no matching session.
	ErrSessionNotFound = errors.New("session not found")
)

// ManagedSession pairs a service.Session with its creation time for the
// API's session listing/status responses.
type ManagedSession struct {
	ID        string
	Session   *service.Session
	CreatedAt time.Time
}

// SessionManager owns every active service.Session, keyed by ID, so one
// process can drive several independent filter tables concurrently.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*ManagedSession
	log      *log.Logger
}

// NewSessionManager creates an empty session manager.
func NewSessionManager(logger *log.Logger) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*ManagedSession),
		log:      logger,
	}
}

// CreateSession allocates a new session bound to a fresh fake HAL.
func (sm *SessionManager) CreateSession() (*ManagedSession, error) {
	id, err := generateSessionID()
	if err != nil {
		return nil, err
	}

	ms := &ManagedSession{
		ID:        id,
		Session:   service.NewSession(id, sm.log),
		CreatedAt: time.Now(),
	}

	sm.mu.Lock()
	sm.sessions[id] = ms
	sm.mu.Unlock()

	return ms, nil
}

// GetSession retrieves a session by ID.
func (sm *SessionManager) GetSession(id string) (*ManagedSession, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	ms, ok := sm.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return ms, nil
}

// DestroySession removes a session by ID.
func (sm *SessionManager) DestroySession(id string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, ok := sm.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(sm.sessions, id)
	return nil
}

// ListSessions returns every session ID currently held.
func (sm *SessionManager) ListSessions() []string {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	ids := make([]string, 0, len(sm.sessions))
	for id := range sm.sessions {
		ids = append(ids, id)
	}
	return ids
}

// Count reports the number of active sessions.
func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

func generateSessionID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
