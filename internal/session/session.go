// Package session persists which student is logged in on this device.
package session

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"wewillshine/internal/models"
	"wewillshine/internal/security"
	"wewillshine/internal/storage"
)

// Key is the local storage key holding the session record
const Key = "student_session"

// DefaultTTL is how long a login stays valid
const DefaultTTL = 7 * 24 * time.Hour

// Manager reads and writes the session record. Expiry is checked lazily on read.
type Manager struct {
	store storage.Store
	ttl   time.Duration
	now   func() time.Time
	mu    sync.Mutex
}

// NewManager creates a session manager. A non-positive ttl uses DefaultTTL.
func NewManager(store storage.Store, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{store: store, ttl: ttl, now: time.Now}
}

// SetClock replaces the time source, for tests
func (m *Manager) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// Login starts a new session for code, replacing any existing one
func (m *Manager) Login(code string) (*models.SessionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	record := &models.SessionRecord{
		Code:      code,
		Token:     security.GenerateSessionID(),
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	data, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	if err := m.store.Set(Key, data); err != nil {
		return nil, err
	}
	return record, nil
}

// Read returns the logged-in student code, or "" when there is no valid session
func (m *Manager) Read() string {
	record := m.Current()
	if record == nil {
		return ""
	}
	return record.Code
}

// Current returns the full session record, or nil when there is no valid session.
// Expired and unreadable records are removed.
func (m *Manager) Current() *models.SessionRecord {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := m.store.Get(Key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		log.Printf("Warning: failed to read session: %v", err)
		return nil
	}

	var record models.SessionRecord
	if err := json.Unmarshal(data, &record); err != nil || record.Code == "" {
		log.Printf("Warning: discarding malformed session record")
		m.clear()
		return nil
	}

	if record.IsExpired(m.now()) {
		m.clear()
		return nil
	}

	return &record
}

// Logout removes the session record
func (m *Manager) Logout() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Delete(Key)
}

func (m *Manager) clear() {
	if err := m.store.Delete(Key); err != nil {
		log.Printf("Warning: failed to clear session: %v", err)
	}
}
