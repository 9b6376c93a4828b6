package store

import (
	"context"
	"sync"
	"time"

	"github.com/example/startup-analytics/internal/domain/dashboard"
)

// minTick is the smallest step between two last-updated values of a row.
// It matches PostgreSQL timestamp precision.
const minTick = time.Microsecond

// SnapshotStore is an in-memory snapshot table
type SnapshotStore struct {
	mu   sync.RWMutex
	rows map[string]dashboard.Snapshot
	now  func() time.Time
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{
		rows: make(map[string]dashboard.Snapshot),
		now:  time.Now,
	}
}

// Upsert creates or replaces the row for userID.
func (s *SnapshotStore) Upsert(ctx context.Context, userID string, fields dashboard.Fields) (*dashboard.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.now().UTC().Truncate(minTick)
	if prev, ok := s.rows[userID]; ok && !ts.After(prev.LastUpdated) {
		ts = prev.LastUpdated.Add(minTick)
	}

	row := dashboard.Snapshot{
		UserID:      userID,
		Fields:      fields,
		LastUpdated: ts,
	}
	s.rows[userID] = row
	return &row, nil
}

// Get returns the row for userID
func (s *SnapshotStore) Get(ctx context.Context, userID string) (*dashboard.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.rows[userID]
	if !ok {
		return nil, dashboard.ErrSnapshotNotFound
	}
	return &row, nil
}

// Count returns the number of rows
func (s *SnapshotStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.rows)), nil
}
