package command

import (
	"context"

	"github.com/example/startup-analytics/internal/domain/activity"
	"github.com/example/startup-analytics/internal/domain/dashboard"
)

type Handler struct {
	activitySvc  *activity.Service
	dashboardSvc *dashboard.Service
}

func NewHandler(activitySvc *activity.Service, dashboardSvc *dashboard.Service) *Handler {
	return &Handler{
		activitySvc:  activitySvc,
		dashboardSvc: dashboardSvc,
	}
}

// LogActivity publishes an ActivityLogged event. The activity log is
// updated asynchronously by the projector.
func (h *Handler) LogActivity(ctx context.Context, cmd LogActivity) (*activity.Activity, error) {
	t, err := activity.ParseType(cmd.Type)
	if err != nil {
		return nil, err
	}
	return h.activitySvc.Log(ctx, cmd.UserID, t, cmd.Description, cmd.Metadata)
}

// RefreshDashboard recomputes the snapshot, bypassing any cache.
func (h *Handler) RefreshDashboard(ctx context.Context, cmd RefreshDashboard) (*dashboard.Snapshot, error) {
	return h.dashboardSvc.GetDashboard(ctx, cmd.UserID, dashboard.Role(cmd.Role), true)
}
