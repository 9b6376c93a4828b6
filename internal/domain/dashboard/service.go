package dashboard

import (
	"context"

	"github.com/example/startup-analytics/internal/logger"
)

// Cache holds recently built snapshots. A miss is (nil, false, nil).
type Cache interface {
	Get(ctx context.Context, userID string, role Role) (*Snapshot, bool, error)
	Set(ctx context.Context, role Role, snap *Snapshot) error
}

// Service is the fetch-or-recompute entry point used by the HTTP layer.
type Service struct {
	orchestrator *Orchestrator
	store        SnapshotStore
	cache        Cache
	log          *logger.Logger
}

// NewService wires the service. cache may be nil.
func NewService(orchestrator *Orchestrator, store SnapshotStore, cache Cache, log *logger.Logger) *Service {
	return &Service{
		orchestrator: orchestrator,
		store:        store,
		cache:        cache,
		log:          log.With("component", "DashboardService"),
	}
}

// GetDashboard returns a cached snapshot when one is fresh, otherwise it
// rebuilds. refresh forces a rebuild. Cache errors only cost a rebuild.
func (s *Service) GetDashboard(ctx context.Context, userID string, role Role, refresh bool) (*Snapshot, error) {
	role = ParseRole(string(role))

	if s.cache != nil && !refresh {
		snap, ok, err := s.cache.Get(ctx, userID, role)
		switch {
		case err != nil:
			s.log.Warn("snapshot cache read failed", "user_id", userID, "error", err)
		case ok:
			return snap, nil
		}
	}

	snap, err := s.orchestrator.BuildSnapshot(ctx, userID, role)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, role, snap); err != nil {
			s.log.Warn("snapshot cache write failed", "user_id", userID, "error", err)
		}
	}
	return snap, nil
}

// StoredSnapshot returns the last persisted snapshot without contacting
// any upstream source.
func (s *Service) StoredSnapshot(ctx context.Context, userID string) (*Snapshot, error) {
	return s.store.Get(ctx, userID)
}
