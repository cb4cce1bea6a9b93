package store

import (
	"context"
	"sort"
	"sync"

	"github.com/jonathan/interview-coach/internal/session"
)

// Memory is an in-process Store. Each instance is isolated; construct one per
// test or per process rather than sharing globals.
type Memory struct {
	mu    sync.RWMutex
	snaps map[string]session.Snapshot
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{snaps: make(map[string]session.Snapshot)}
}

// SaveSession upserts the snapshot.
func (m *Memory) SaveSession(_ context.Context, snap session.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snaps[snap.ID] = snap
	return nil
}

// GetSession loads a snapshot by ID.
func (m *Memory) GetSession(_ context.Context, id string) (session.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap, ok := m.snaps[id]
	if !ok {
		return session.Snapshot{}, &NotFoundError{ID: id}
	}
	return snap, nil
}

// ListSessions returns recent sessions, newest first.
func (m *Memory) ListSessions(_ context.Context, limit int) ([]SessionRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]SessionRecord, 0, len(m.snaps))
	for _, snap := range m.snaps {
		r := SessionRecord{
			ID:        snap.ID,
			Status:    snap.Status,
			StartedAt: snap.StartedAt,
			EndedAt:   snap.EndedAt,
		}
		if snap.Requirement != nil {
			r.JobTitle = snap.Requirement.Title
		}
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].StartedAt.After(records[j].StartedAt)
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// Close is a no-op for the in-memory store.
func (m *Memory) Close() {}
