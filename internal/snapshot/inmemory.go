package snapshot

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryStore keeps snapshots in process memory, mainly for tests and
// local development.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string][]Record
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[string][]Record)}
}

func (s *InMemoryStore) Save(_ context.Context, record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	s.records[record.SessionID] = append(s.records[record.SessionID], record)
	return nil
}

// BySession returns all snapshots saved for a session, oldest first.
func (s *InMemoryStore) BySession(sessionID string) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	arr := s.records[sessionID]
	out := make([]Record, len(arr))
	copy(out, arr)
	return out
}

func (s *InMemoryStore) Close() error { return nil }
