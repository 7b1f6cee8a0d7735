package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SaveParsedResume stores a parse result and returns its ID.
// A zero ID is replaced by a new random one.
func (db *DB) SaveParsedResume(ctx context.Context, r *ParsedResume) (uuid.UUID, error) {
	if r == nil || r.Document == nil {
		return uuid.Nil, fmt.Errorf("parsed resume document is required")
	}

	docJSON, err := json.Marshal(r.Document)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal document: %w", err)
	}

	id := r.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	format := r.Format
	if format == "" {
		format = FormatText
	}

	err = db.pool.QueryRow(ctx,
		`INSERT INTO parsed_resumes (id, source_name, format, content_hash, document, low_confidence)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		id, r.SourceName, format, r.ContentHash, docJSON, r.LowConfidence,
	).Scan(&r.CreatedAt)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save parsed resume: %w", err)
	}

	r.ID = id
	r.Format = format
	return id, nil
}

// GetParsedResume retrieves a stored parse result by ID.
// Returns nil, nil when no row exists.
func (db *DB) GetParsedResume(ctx context.Context, id uuid.UUID) (*ParsedResume, error) {
	var r ParsedResume
	var docJSON []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, source_name, format, content_hash, document, low_confidence, created_at
		 FROM parsed_resumes WHERE id = $1`,
		id,
	).Scan(&r.ID, &r.SourceName, &r.Format, &r.ContentHash, &docJSON, &r.LowConfidence, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get parsed resume: %w", err)
	}

	if err := json.Unmarshal(docJSON, &r.Document); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}
	return &r, nil
}

// ListParsedResumes lists stored parse results, newest first, with the total count.
func (db *DB) ListParsedResumes(ctx context.Context, limit, offset int) ([]ParsedResumeSummary, int, error) {
	limit, offset = normalizePage(limit, offset)

	var total int
	if err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM parsed_resumes`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count parsed resumes: %w", err)
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, source_name, format, COALESCE(document->>'name', ''), low_confidence, created_at
		 FROM parsed_resumes
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list parsed resumes: %w", err)
	}
	defer rows.Close()

	summaries := make([]ParsedResumeSummary, 0)
	for rows.Next() {
		var s ParsedResumeSummary
		if err := rows.Scan(&s.ID, &s.SourceName, &s.Format, &s.Name, &s.LowConfidence, &s.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan parsed resume: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate parsed resumes: %w", err)
	}
	return summaries, total, nil
}

// FindByContentHash returns the most recent stored result for a source hash.
// Returns nil, nil when no row exists.
func (db *DB) FindByContentHash(ctx context.Context, hash string) (*ParsedResume, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`SELECT id FROM parsed_resumes WHERE content_hash = $1 ORDER BY created_at DESC LIMIT 1`,
		hash,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find parsed resume: %w", err)
	}
	return db.GetParsedResume(ctx, id)
}
