package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/example/startup-analytics/internal/domain/activity"
)

// ActivityStore is an in-memory activity log
type ActivityStore struct {
	mu     sync.RWMutex
	byUser map[string][]activity.Activity // userID -> entries, oldest first
	ids    map[string]struct{}
}

func NewActivityStore() *ActivityStore {
	return &ActivityStore{
		byUser: make(map[string][]activity.Activity),
		ids:    make(map[string]struct{}),
	}
}

// Append stores a new entry
func (s *ActivityStore) Append(ctx context.Context, a activity.Activity) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, dup := s.ids[a.ID]; dup {
		return false, nil
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	s.ids[a.ID] = struct{}{}
	entries := append(s.byUser[a.UserID], a)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})
	s.byUser[a.UserID] = entries
	return true, nil
}

// Recent returns up to limit entries, newest first
func (s *ActivityStore) Recent(ctx context.Context, userID string, limit int) ([]activity.Activity, error) {
	return s.filter(userID, limit, func(activity.Activity) bool { return true }), nil
}

// Since returns entries created at or after since, newest first
func (s *ActivityStore) Since(ctx context.Context, userID string, since time.Time) ([]activity.Activity, error) {
	return s.filter(userID, 0, func(a activity.Activity) bool { return !a.CreatedAt.Before(since) }), nil
}

// ByType returns up to limit entries of type t, newest first
func (s *ActivityStore) ByType(ctx context.Context, userID string, t activity.Type, limit int) ([]activity.Activity, error) {
	return s.filter(userID, limit, func(a activity.Activity) bool { return a.Type == t }), nil
}

func (s *ActivityStore) CountByUser(ctx context.Context, userID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.byUser[userID])), nil
}

func (s *ActivityStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.ids)), nil
}

// filter walks a user's entries newest first. limit <= 0 means no limit.
func (s *ActivityStore) filter(userID string, limit int, keep func(activity.Activity) bool) []activity.Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.byUser[userID]
	out := make([]activity.Activity, 0)
	for i := len(entries) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		if keep(entries[i]) {
			out = append(out, entries[i])
		}
	}
	return out
}
