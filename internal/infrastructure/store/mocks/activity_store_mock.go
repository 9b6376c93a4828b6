package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/example/startup-analytics/internal/domain/activity"
)

// MockActivityStore is a mock implementation of ActivityStoreInterface for testing
type MockActivityStore struct {
	mu      sync.Mutex
	entries []activity.Activity

	// For tracking calls in tests
	AppendCalls []activity.Activity
	RecentCalls []RecentCall

	AppendErr error
	ReadErr   error
	// RecentDelay blocks Recent until it elapses or ctx is done
	RecentDelay time.Duration
}

// RecentCall records parameters passed to Recent
type RecentCall struct {
	UserID string
	Limit  int
}

// NewMockActivityStore creates a new MockActivityStore
func NewMockActivityStore() *MockActivityStore {
	return &MockActivityStore{
		entries:     make([]activity.Activity, 0),
		AppendCalls: make([]activity.Activity, 0),
		RecentCalls: make([]RecentCall, 0),
	}
}

func (m *MockActivityStore) Append(ctx context.Context, a activity.Activity) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.AppendCalls = append(m.AppendCalls, a)
	if m.AppendErr != nil {
		return false, m.AppendErr
	}
	for _, e := range m.entries {
		if e.ID == a.ID {
			return false, nil
		}
	}
	m.entries = append(m.entries, a)
	return true, nil
}

func (m *MockActivityStore) Recent(ctx context.Context, userID string, limit int) ([]activity.Activity, error) {
	m.mu.Lock()
	m.RecentCalls = append(m.RecentCalls, RecentCall{UserID: userID, Limit: limit})
	delay := m.RecentDelay
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return m.filter(userID, limit, func(activity.Activity) bool { return true })
}

func (m *MockActivityStore) Since(ctx context.Context, userID string, since time.Time) ([]activity.Activity, error) {
	return m.filter(userID, 0, func(a activity.Activity) bool { return !a.CreatedAt.Before(since) })
}

func (m *MockActivityStore) ByType(ctx context.Context, userID string, t activity.Type, limit int) ([]activity.Activity, error) {
	return m.filter(userID, limit, func(a activity.Activity) bool { return a.Type == t })
}

func (m *MockActivityStore) CountByUser(ctx context.Context, userID string) (int64, error) {
	got, err := m.filter(userID, 0, func(activity.Activity) bool { return true })
	return int64(len(got)), err
}

func (m *MockActivityStore) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadErr != nil {
		return 0, m.ReadErr
	}
	return int64(len(m.entries)), nil
}

// SetData adds entries directly for testing
func (m *MockActivityStore) SetData(entries ...activity.Activity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entries...)
}

func (m *MockActivityStore) filter(userID string, limit int, keep func(activity.Activity) bool) ([]activity.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	out := make([]activity.Activity, 0)
	for _, e := range m.entries {
		if e.UserID == userID && keep(e) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
