// Package store persists interview session state. The Postgres
// implementation stores session snapshots as JSONB; the in-memory
// implementation backs tests and single-process runs.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/interview-coach/internal/session"
	"github.com/jonathan/interview-coach/internal/types"
)

// SessionRecord is the listing view of a persisted session.
type SessionRecord struct {
	ID        string              `json:"id"`
	Status    types.SessionStatus `json:"status"`
	JobTitle  string              `json:"job_title"`
	StartedAt time.Time           `json:"started_at"`
	EndedAt   *time.Time          `json:"ended_at,omitempty"`
}

// Store persists and retrieves session snapshots.
type Store interface {
	// SaveSession upserts the full session state keyed by session ID.
	SaveSession(ctx context.Context, snap session.Snapshot) error

	// GetSession loads a session snapshot. Returns a NotFoundError when
	// no session with that ID exists.
	GetSession(ctx context.Context, id string) (session.Snapshot, error)

	// ListSessions returns recent sessions, newest first.
	ListSessions(ctx context.Context, limit int) ([]SessionRecord, error)

	// Close releases underlying resources.
	Close()
}

// NotFoundError indicates the requested session does not exist.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("session %s not found", e.ID)
}
