package readmodel

import (
	"time"

	"github.com/example/startup-analytics/internal/domain/activity"
	"github.com/example/startup-analytics/internal/domain/dashboard"
)

// DashboardReadModel is the read model for a user's aggregate status
type DashboardReadModel struct {
	UserID                  string              `json:"user_id"`
	Role                    string              `json:"role,omitempty"`
	ProfileCompletion       int                 `json:"profile_completion"`
	GeneratedContentCount   int                 `json:"generated_content_count"`
	MatchCount              int                 `json:"match_count"`
	ActiveRelationshipCount int                 `json:"active_relationship_count"`
	MilestoneCount          int                 `json:"milestone_count"`
	LastUpdated             time.Time           `json:"last_updated"`
	RecentActivity          []ActivityReadModel `json:"recent_activity"`
}

// ActivityReadModel is the read model for one activity log entry
type ActivityReadModel struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Type        string    `json:"type"`
	Description string    `json:"description,omitempty"`
	Metadata    string    `json:"metadata,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ActivityCountReadModel reports how many activities a user has logged
type ActivityCountReadModel struct {
	UserID string `json:"user_id"`
	Count  int64  `json:"count"`
}

// OverviewReadModel is the admin-wide summary
type OverviewReadModel struct {
	TotalDashboards int64     `json:"total_dashboards"`
	TotalActivities int64     `json:"total_activities"`
	GeneratedAt     time.Time `json:"generated_at"`
}

// FromSnapshot builds the dashboard view. role may be empty for stored
// snapshots, which do not record it.
func FromSnapshot(snap *dashboard.Snapshot, role dashboard.Role) *DashboardReadModel {
	return &DashboardReadModel{
		UserID:                  snap.UserID,
		Role:                    string(role),
		ProfileCompletion:       snap.ProfileCompletion,
		GeneratedContentCount:   snap.GeneratedContentCount,
		MatchCount:              snap.MatchCount,
		ActiveRelationshipCount: snap.ActiveRelationshipCount,
		MilestoneCount:          snap.MilestoneCount,
		LastUpdated:             snap.LastUpdated,
		RecentActivity:          FromActivities(snap.RecentActivity),
	}
}

func FromActivity(a activity.Activity) ActivityReadModel {
	return ActivityReadModel{
		ID:          a.ID,
		UserID:      a.UserID,
		Type:        string(a.Type),
		Description: a.Description,
		Metadata:    a.Metadata,
		CreatedAt:   a.CreatedAt,
	}
}

// FromActivities never returns nil so the JSON is always a list.
func FromActivities(list []activity.Activity) []ActivityReadModel {
	out := make([]ActivityReadModel, 0, len(list))
	for _, a := range list {
		out = append(out, FromActivity(a))
	}
	return out
}
