package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/example/startup-analytics/internal/domain/dashboard"
)

// MockSnapshotStore is a mock implementation of SnapshotStoreInterface for testing
type MockSnapshotStore struct {
	mu   sync.Mutex
	rows map[string]dashboard.Snapshot

	// For tracking calls in tests
	UpsertCalls []UpsertCall
	GetCalls    []string

	UpsertErr error
	GetErr    error
	CountErr  error
}

// UpsertCall records parameters passed to Upsert
type UpsertCall struct {
	UserID string
	Fields dashboard.Fields
}

// NewMockSnapshotStore creates a new MockSnapshotStore
func NewMockSnapshotStore() *MockSnapshotStore {
	return &MockSnapshotStore{
		rows:        make(map[string]dashboard.Snapshot),
		UpsertCalls: make([]UpsertCall, 0),
		GetCalls:    make([]string, 0),
	}
}

// Upsert records the call and stores the row
func (m *MockSnapshotStore) Upsert(ctx context.Context, userID string, fields dashboard.Fields) (*dashboard.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.UpsertCalls = append(m.UpsertCalls, UpsertCall{UserID: userID, Fields: fields})
	if m.UpsertErr != nil {
		return nil, m.UpsertErr
	}

	ts := time.Now().UTC()
	if prev, ok := m.rows[userID]; ok && !ts.After(prev.LastUpdated) {
		ts = prev.LastUpdated.Add(time.Microsecond)
	}
	row := dashboard.Snapshot{UserID: userID, Fields: fields, LastUpdated: ts}
	m.rows[userID] = row
	return &row, nil
}

// Get returns the stored row
func (m *MockSnapshotStore) Get(ctx context.Context, userID string) (*dashboard.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetCalls = append(m.GetCalls, userID)
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	row, ok := m.rows[userID]
	if !ok {
		return nil, dashboard.ErrSnapshotNotFound
	}
	return &row, nil
}

// Count returns the number of stored rows
func (m *MockSnapshotStore) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CountErr != nil {
		return 0, m.CountErr
	}
	return int64(len(m.rows)), nil
}

// SetData stores a row directly for testing
func (m *MockSnapshotStore) SetData(snap dashboard.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[snap.UserID] = snap
}

// UpsertCount returns how many times Upsert was called
func (m *MockSnapshotStore) UpsertCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.UpsertCalls)
}
