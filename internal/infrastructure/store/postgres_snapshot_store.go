package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/example/startup-analytics/internal/domain/dashboard"
	"github.com/google/uuid"
)

// PostgresSnapshotStore keeps one dashboards row per user. The upsert is a
// single INSERT ... ON CONFLICT statement, so concurrent writers for the same
// user serialize on the row lock and never interleave fields.
type PostgresSnapshotStore struct {
	db *sql.DB
}

func NewPostgresSnapshotStore(db *sql.DB) *PostgresSnapshotStore {
	return &PostgresSnapshotStore{db: db}
}

// last_updated is pushed at least one microsecond past the stored value so
// it strictly increases even when two writes land on the same clock tick.
const upsertSnapshotSQL = `
INSERT INTO dashboards (id, user_id, profile_completion, generated_content_count, match_count,
	active_relationship_count, milestone_count, last_updated)
VALUES ($1, $2, $3, $4, $5, $6, $7, clock_timestamp())
ON CONFLICT (user_id) DO UPDATE SET
	profile_completion = EXCLUDED.profile_completion,
	generated_content_count = EXCLUDED.generated_content_count,
	match_count = EXCLUDED.match_count,
	active_relationship_count = EXCLUDED.active_relationship_count,
	milestone_count = EXCLUDED.milestone_count,
	last_updated = GREATEST(EXCLUDED.last_updated, dashboards.last_updated + INTERVAL '1 microsecond')
RETURNING user_id, profile_completion, generated_content_count, match_count,
	active_relationship_count, milestone_count, last_updated`

const selectSnapshotSQL = `
SELECT user_id, profile_completion, generated_content_count, match_count,
	active_relationship_count, milestone_count, last_updated
FROM dashboards
WHERE user_id = $1`

func (s *PostgresSnapshotStore) Upsert(ctx context.Context, userID string, fields dashboard.Fields) (*dashboard.Snapshot, error) {
	row := s.db.QueryRowContext(ctx, upsertSnapshotSQL,
		uuid.New().String(),
		userID,
		fields.ProfileCompletion,
		fields.GeneratedContentCount,
		fields.MatchCount,
		fields.ActiveRelationshipCount,
		fields.MilestoneCount,
	)
	return scanSnapshot(row)
}

func (s *PostgresSnapshotStore) Get(ctx context.Context, userID string) (*dashboard.Snapshot, error) {
	snap, err := scanSnapshot(s.db.QueryRowContext(ctx, selectSnapshotSQL, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, dashboard.ErrSnapshotNotFound
	}
	return snap, err
}

func (s *PostgresSnapshotStore) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM dashboards").Scan(&n)
	return n, err
}

func scanSnapshot(row *sql.Row) (*dashboard.Snapshot, error) {
	var snap dashboard.Snapshot
	err := row.Scan(
		&snap.UserID,
		&snap.ProfileCompletion,
		&snap.GeneratedContentCount,
		&snap.MatchCount,
		&snap.ActiveRelationshipCount,
		&snap.MilestoneCount,
		&snap.LastUpdated,
	)
	if err != nil {
		return nil, err
	}
	snap.LastUpdated = snap.LastUpdated.UTC()
	return &snap, nil
}
