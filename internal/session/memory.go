package session

import (
	"context"
	"sync"
	"time"

	"github.com/brazcamiseteria/storefront/internal/domain"
)

type memoryEntry struct {
	client    domain.ClientIdentity
	expiresAt time.Time
}

// MemoryStore is a process-local Store used when no Redis is configured.
// Expired entries are dropped lazily on read.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (m *MemoryStore) Get(_ context.Context, sessionID string) (*domain.ClientIdentity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[sessionID]
	if !ok {
		return nil, nil
	}
	if m.ttl > 0 && m.now().After(entry.expiresAt) {
		delete(m.entries, sessionID)
		return nil, nil
	}
	client := entry.client
	return &client, nil
}

func (m *MemoryStore) Set(_ context.Context, sessionID string, client *domain.ClientIdentity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if client == nil {
		delete(m.entries, sessionID)
		return nil
	}
	m.entries[sessionID] = memoryEntry{
		client:    *client,
		expiresAt: m.now().Add(m.ttl),
	}
	return nil
}

func (m *MemoryStore) Clear(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, sessionID)
	return nil
}
