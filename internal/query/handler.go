package query

import (
	"context"
	"time"

	"github.com/example/startup-analytics/internal/domain/activity"
	"github.com/example/startup-analytics/internal/infrastructure/store"
	"github.com/example/startup-analytics/internal/logger"
	"github.com/example/startup-analytics/internal/readmodel"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
	RecentWindow     = 7 * 24 * time.Hour
)

type Handler struct {
	snapshots  store.SnapshotStoreInterface
	activities store.ActivityStoreInterface
	log        *logger.Logger
	now        func() time.Time
}

func NewHandler(snapshots store.SnapshotStoreInterface, activities store.ActivityStoreInterface, log *logger.Logger) *Handler {
	return &Handler{
		snapshots:  snapshots,
		activities: activities,
		log:        log.With("component", "Query"),
		now:        time.Now,
	}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return min(limit, MaxListLimit)
}

// Dashboard

// GetStoredDashboard returns the persisted snapshot without recomputing it.
func (h *Handler) GetStoredDashboard(ctx context.Context, userID string) (*DashboardReadModel, error) {
	snap, err := h.snapshots.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return readmodel.FromSnapshot(snap, ""), nil
}

// Activities
func (h *Handler) ListActivities(ctx context.Context, userID string, limit int) ([]ActivityReadModel, error) {
	list, err := h.activities.Recent(ctx, userID, clampLimit(limit))
	if err != nil {
		h.log.Error("listing activities failed", "user_id", userID, "error", err)
		return nil, err
	}
	return readmodel.FromActivities(list), nil
}

// RecentActivities returns everything logged in the last RecentWindow.
func (h *Handler) RecentActivities(ctx context.Context, userID string) ([]ActivityReadModel, error) {
	list, err := h.activities.Since(ctx, userID, h.now().Add(-RecentWindow))
	if err != nil {
		h.log.Error("listing recent activities failed", "user_id", userID, "error", err)
		return nil, err
	}
	return readmodel.FromActivities(list), nil
}

func (h *Handler) ActivitiesByType(ctx context.Context, userID, typ string, limit int) ([]ActivityReadModel, error) {
	t, err := activity.ParseType(typ)
	if err != nil {
		return nil, err
	}
	list, err := h.activities.ByType(ctx, userID, t, clampLimit(limit))
	if err != nil {
		h.log.Error("listing activities by type failed", "user_id", userID, "type", t, "error", err)
		return nil, err
	}
	return readmodel.FromActivities(list), nil
}

func (h *Handler) CountActivities(ctx context.Context, userID string) (*ActivityCountReadModel, error) {
	n, err := h.activities.CountByUser(ctx, userID)
	if err != nil {
		h.log.Error("counting activities failed", "user_id", userID, "error", err)
		return nil, err
	}
	return &ActivityCountReadModel{UserID: userID, Count: n}, nil
}

// Overview returns platform-wide totals (for admin use)
func (h *Handler) Overview(ctx context.Context) (*OverviewReadModel, error) {
	dashboards, err := h.snapshots.Count(ctx)
	if err != nil {
		h.log.Error("counting dashboards failed", "error", err)
		return nil, err
	}
	activities, err := h.activities.Count(ctx)
	if err != nil {
		h.log.Error("counting activities failed", "error", err)
		return nil, err
	}
	return &OverviewReadModel{
		TotalDashboards: dashboards,
		TotalActivities: activities,
		GeneratedAt:     h.now().UTC(),
	}, nil
}
