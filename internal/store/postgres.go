package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/interview-coach/internal/session"
)

// Schema for the sessions table. Applied out of band (migrations are run by
// the operator, not the application).
//
//	CREATE TABLE interview_sessions (
//	    id         UUID PRIMARY KEY,
//	    status     TEXT NOT NULL,
//	    job_title  TEXT NOT NULL DEFAULT '',
//	    snapshot   JSONB NOT NULL,
//	    started_at TIMESTAMPTZ NOT NULL,
//	    ended_at   TIMESTAMPTZ,
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);

// Postgres is the pgx-backed Store.
type Postgres struct {
	pool *pgxpool.Pool
}

// ConnectPostgres establishes a connection pool and verifies it.
func ConnectPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

// Close closes the connection pool.
func (p *Postgres) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

// SaveSession upserts the session snapshot as JSONB.
func (p *Postgres) SaveSession(ctx context.Context, snap session.Snapshot) error {
	jsonBytes, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	jobTitle := ""
	if snap.Requirement != nil {
		jobTitle = snap.Requirement.Title
	}

	_, err = p.pool.Exec(ctx,
		`INSERT INTO interview_sessions (id, status, job_title, snapshot, started_at, ended_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO UPDATE SET
		     status = $2, job_title = $3, snapshot = $4, ended_at = $6, updated_at = NOW()`,
		snap.ID, snap.Status, jobTitle, jsonBytes, snap.StartedAt, snap.EndedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save session %s: %w", snap.ID, err)
	}
	return nil
}

// GetSession loads a session snapshot by ID.
func (p *Postgres) GetSession(ctx context.Context, id string) (session.Snapshot, error) {
	var jsonBytes []byte
	err := p.pool.QueryRow(ctx,
		`SELECT snapshot FROM interview_sessions WHERE id = $1`,
		id,
	).Scan(&jsonBytes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return session.Snapshot{}, &NotFoundError{ID: id}
		}
		return session.Snapshot{}, fmt.Errorf("failed to get session %s: %w", id, err)
	}

	var snap session.Snapshot
	if err := json.Unmarshal(jsonBytes, &snap); err != nil {
		return session.Snapshot{}, fmt.Errorf("failed to unmarshal session %s: %w", id, err)
	}
	return snap, nil
}

// ListSessions returns recent sessions, newest first.
func (p *Postgres) ListSessions(ctx context.Context, limit int) ([]SessionRecord, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, status, job_title, started_at, ended_at
		 FROM interview_sessions ORDER BY started_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		var r SessionRecord
		if err := rows.Scan(&r.ID, &r.Status, &r.JobTitle, &r.StartedAt, &r.EndedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
