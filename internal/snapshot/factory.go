package snapshot

import (
	"context"
	"strings"
)

// NewStore creates a postgres-backed store when configured, otherwise the
// no-op store that preserves the reference in-memory-only behavior.
func NewStore(ctx context.Context, databaseURL string) (Store, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return NewNoopStore(), nil
	}
	return NewPostgresStore(ctx, databaseURL)
}
