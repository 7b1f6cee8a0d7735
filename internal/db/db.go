// Package db provides PostgreSQL storage for parsed resumes.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS parsed_resumes (
	id             UUID PRIMARY KEY,
	source_name    TEXT NOT NULL DEFAULT '',
	format         TEXT NOT NULL DEFAULT 'text',
	content_hash   TEXT NOT NULL DEFAULT '',
	document       JSONB NOT NULL,
	low_confidence BOOLEAN NOT NULL DEFAULT FALSE,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS parsed_resumes_created_at_idx ON parsed_resumes (created_at DESC);
CREATE INDEX IF NOT EXISTS parsed_resumes_content_hash_idx ON parsed_resumes (content_hash);
`

// EnsureSchema creates the parsed_resumes table if it does not exist
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
