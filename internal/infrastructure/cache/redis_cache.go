package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/example/startup-analytics/internal/domain/dashboard"
	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "dashboard:snapshot:"

// SnapshotCache keeps built snapshots in Redis for a short TTL.
type SnapshotCache struct {
	rdb goredis.UniversalClient
	ttl time.Duration
}

// Connect dials addr and verifies it with a PING.
func Connect(ctx context.Context, addr string) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

func NewSnapshotCache(rdb goredis.UniversalClient, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{rdb: rdb, ttl: ttl}
}

// Key is scoped by role so a user switching roles never sees a stale shape.
func Key(userID string, role dashboard.Role) string {
	return keyPrefix + string(role) + ":" + userID
}

func (c *SnapshotCache) Get(ctx context.Context, userID string, role dashboard.Role) (*dashboard.Snapshot, bool, error) {
	raw, err := c.rdb.Get(ctx, Key(userID, role)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var snap dashboard.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, false, fmt.Errorf("decode cached snapshot: %w", err)
	}
	return &snap, true, nil
}

func (c *SnapshotCache) Set(ctx context.Context, role dashboard.Role, snap *dashboard.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, Key(snap.UserID, role), raw, c.ttl).Err()
}
