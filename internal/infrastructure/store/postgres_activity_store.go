package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/example/startup-analytics/internal/domain/activity"
)

// PostgresActivityStore implements ActivityStoreInterface on the activities table
type PostgresActivityStore struct {
	db *sql.DB
}

func NewPostgresActivityStore(db *sql.DB) *PostgresActivityStore {
	return &PostgresActivityStore{db: db}
}

const activityColumns = `id, user_id, type, COALESCE(description, ''), COALESCE(metadata, ''), created_at`

// Append inserts a; replays of the same event are ignored
func (s *PostgresActivityStore) Append(ctx context.Context, a activity.Activity) (bool, error) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO activities (id, user_id, type, description, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`, a.ID, a.UserID, string(a.Type), a.Description, a.Metadata, a.CreatedAt)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *PostgresActivityStore) Recent(ctx context.Context, userID string, limit int) ([]activity.Activity, error) {
	return s.query(ctx, `
		SELECT `+activityColumns+`
		FROM activities
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
}

func (s *PostgresActivityStore) Since(ctx context.Context, userID string, since time.Time) ([]activity.Activity, error) {
	return s.query(ctx, `
		SELECT `+activityColumns+`
		FROM activities
		WHERE user_id = $1 AND created_at >= $2
		ORDER BY created_at DESC
	`, userID, since)
}

func (s *PostgresActivityStore) ByType(ctx context.Context, userID string, t activity.Type, limit int) ([]activity.Activity, error) {
	return s.query(ctx, `
		SELECT `+activityColumns+`
		FROM activities
		WHERE user_id = $1 AND type = $2
		ORDER BY created_at DESC
		LIMIT $3
	`, userID, string(t), limit)
}

func (s *PostgresActivityStore) CountByUser(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM activities WHERE user_id = $1", userID).Scan(&n)
	return n, err
}

func (s *PostgresActivityStore) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM activities").Scan(&n)
	return n, err
}

func (s *PostgresActivityStore) query(ctx context.Context, query string, args ...any) ([]activity.Activity, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]activity.Activity, 0)
	for rows.Next() {
		var (
			a   activity.Activity
			typ string
		)
		if err := rows.Scan(&a.ID, &a.UserID, &typ, &a.Description, &a.Metadata, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.Type = activity.Type(typ)
		a.CreatedAt = a.CreatedAt.UTC()
		out = append(out, a)
	}
	return out, rows.Err()
}
