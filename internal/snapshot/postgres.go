package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists session snapshots in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := initSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{pool: pool}, nil
}

func initSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS session_snapshots (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			history JSONB NOT NULL,
			context JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
		`CREATE INDEX IF NOT EXISTS idx_session_snapshots_session_created ON session_snapshots (session_id, created_at);`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema failed on %q: %w", stmt, err)
		}
	}
	return nil
}

func (s *PostgresStore) Save(ctx context.Context, record Record) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	history, err := json.Marshal(record.History)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	contextJSON, err := json.Marshal(record.Context)
	if err != nil {
		return fmt.Errorf("marshal context: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO session_snapshots (id, session_id, history, context, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		record.ID,
		record.SessionID,
		history,
		contextJSON,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
