package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/example/startup-analytics/internal/domain/activity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedActivities(t *testing.T, s *ActivityStore, userID string, n int, base time.Time) {
	t.Helper()
	types := []activity.Type{activity.TypeLogin, activity.TypePitchGenerated}
	for i := 0; i < n; i++ {
		ok, err := s.Append(context.Background(), activity.Activity{
			ID:        fmt.Sprintf("%s-act-%d", userID, i),
			UserID:    userID,
			Type:      types[i%2],
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
		require.True(t, ok)
	}
}

func TestActivityStore_Recent_NewestFirstAndBounded(t *testing.T) {
	s := NewActivityStore()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	seedActivities(t, s, "u-1", 15, base)
	seedActivities(t, s, "u-2", 3, base)

	got, err := s.Recent(context.Background(), "u-1", 10)

	require.NoError(t, err)
	require.Len(t, got, 10)
	assert.Equal(t, "u-1-act-14", got[0].ID)
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i-1].CreatedAt.After(got[i].CreatedAt))
	}
}

func TestActivityStore_Recent_UnknownUser(t *testing.T) {
	s := NewActivityStore()

	got, err := s.Recent(context.Background(), "nobody", 10)

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestActivityStore_Append_Duplicate(t *testing.T) {
	s := NewActivityStore()
	a := activity.Activity{ID: "a-1", UserID: "u-1", Type: activity.TypeLogin}

	first, err := s.Append(context.Background(), a)
	require.NoError(t, err)
	second, err := s.Append(context.Background(), a)
	require.NoError(t, err)

	assert.True(t, first)
	assert.False(t, second)
	n, _ := s.CountByUser(context.Background(), "u-1")
	assert.Equal(t, int64(1), n)
}

func TestActivityStore_Since(t *testing.T) {
	s := NewActivityStore()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	seedActivities(t, s, "u-1", 5, base)

	got, err := s.Since(context.Background(), "u-1", base.Add(3*time.Hour))

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "u-1-act-4", got[0].ID)
	assert.Equal(t, "u-1-act-3", got[1].ID)
}

func TestActivityStore_ByType(t *testing.T) {
	s := NewActivityStore()
	seedActivities(t, s, "u-1", 6, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	got, err := s.ByType(context.Background(), "u-1", activity.TypePitchGenerated, 2)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "u-1-act-5", got[0].ID)
	assert.Equal(t, "u-1-act-3", got[1].ID)
}

func TestActivityStore_Counts(t *testing.T) {
	s := NewActivityStore()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	seedActivities(t, s, "u-1", 4, base)
	seedActivities(t, s, "u-2", 2, base)

	perUser, err := s.CountByUser(context.Background(), "u-1")
	require.NoError(t, err)
	total, err := s.Count(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(4), perUser)
	assert.Equal(t, int64(6), total)
}
