package dashboard

import (
	"context"
	"time"

	"github.com/example/startup-analytics/internal/domain/activity"
)

// Fields is the aggregate field set written by one upsert.
type Fields struct {
	ProfileCompletion       int `json:"profile_completion"`
	GeneratedContentCount   int `json:"generated_content_count"`
	MatchCount              int `json:"match_count"`
	ActiveRelationshipCount int `json:"active_relationship_count"`
	MilestoneCount          int `json:"milestone_count"`
}

// Normalize clamps completion to [0,100] and counts to be non-negative.
func (f Fields) Normalize() Fields {
	f.ProfileCompletion = min(max(f.ProfileCompletion, 0), 100)
	f.GeneratedContentCount = max(f.GeneratedContentCount, 0)
	f.MatchCount = max(f.MatchCount, 0)
	f.ActiveRelationshipCount = max(f.ActiveRelationshipCount, 0)
	f.MilestoneCount = max(f.MilestoneCount, 0)
	return f
}

// Snapshot is the aggregate status of one user.
type Snapshot struct {
	UserID string `json:"user_id"`
	Fields
	LastUpdated    time.Time           `json:"last_updated"`
	RecentActivity []activity.Activity `json:"recent_activity"`
}

// SnapshotStore persists exactly one snapshot row per user.
type SnapshotStore interface {
	// Upsert atomically creates or fully replaces the row for userID and
	// refreshes its last-updated time, which strictly increases per row.
	Upsert(ctx context.Context, userID string, fields Fields) (*Snapshot, error)
	// Get returns ErrSnapshotNotFound when the user was never aggregated.
	Get(ctx context.Context, userID string) (*Snapshot, error)
}

// ActivityLog is the read path of the activity log.
type ActivityLog interface {
	// Recent returns at most limit entries, newest first.
	Recent(ctx context.Context, userID string, limit int) ([]activity.Activity, error)
}
