// Package snapshot is the attachable persistence collaborator for session
// state. The reference behavior keeps sessions in memory only, so the default
// store is a no-op; a real deployment can plug in the Postgres store without
// touching the controller.
package snapshot

import (
	"context"
	"time"

	"github.com/vmelnikov/kinosovetnik/internal/chatcontext"
	"github.com/vmelnikov/kinosovetnik/internal/session"
)

// Record captures one session snapshot emitted after a completed round trip.
type Record struct {
	ID        string               `json:"id"`
	SessionID string               `json:"session_id"`
	History   []session.Message    `json:"history"`
	Context   chatcontext.Snapshot `json:"context"`
	CreatedAt time.Time            `json:"created_at"`
}

// Store persists session snapshots.
type Store interface {
	Save(ctx context.Context, record Record) error
	Close() error
}

// NoopStore discards snapshots. This is the reference behavior: the hook
// point exists, nothing is persisted.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (*NoopStore) Save(context.Context, Record) error { return nil }

func (*NoopStore) Close() error { return nil }
