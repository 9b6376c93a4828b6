package store

import (
	"context"
	"time"

	"github.com/example/startup-analytics/internal/domain/activity"
	"github.com/example/startup-analytics/internal/domain/dashboard"
)

// SnapshotStoreInterface is the snapshot table plus the admin counter.
type SnapshotStoreInterface interface {
	dashboard.SnapshotStore
	Count(ctx context.Context) (int64, error)
}

// ActivityStoreInterface is the activity log table. Append is used only by
// the projector; everything else is read-only.
type ActivityStoreInterface interface {
	// Append stores a. It returns false without error if a.ID already exists.
	Append(ctx context.Context, a activity.Activity) (bool, error)

	Recent(ctx context.Context, userID string, limit int) ([]activity.Activity, error)
	Since(ctx context.Context, userID string, since time.Time) ([]activity.Activity, error)
	ByType(ctx context.Context, userID string, t activity.Type, limit int) ([]activity.Activity, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	Count(ctx context.Context) (int64, error)
}
