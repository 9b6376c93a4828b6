package upstream

import (
	"context"
	"time"

	"github.com/example/startup-analytics/internal/auth"
	"github.com/example/startup-analytics/internal/domain/dashboard"
	"golang.org/x/sync/singleflight"
)

const (
	startupProfilePath = "/api/startups/me"
	// flightTimeout bounds a shared profile read independently of the
	// caller that started it.
	flightTimeout = 10 * time.Second
)

type startupProfile struct {
	ProfileCompletion *int `json:"profileCompletion"`
	MilestonesCount   int  `json:"milestonesCount"`
}

// StartupClient reads the caller's startup profile. Completion and
// milestones come from the same document, so concurrent reads for one caller
// share a single request.
type StartupClient struct {
	client *Client
	group  singleflight.Group
}

func NewStartupClient(c *Client) *StartupClient {
	return &StartupClient{client: c}
}

func (s *StartupClient) profile(ctx context.Context, userID string) (startupProfile, error) {
	token, _ := auth.TokenFromContext(ctx)
	// The shared read must not inherit one caller's cancellation; each caller
	// stops waiting on its own context instead.
	ch := s.group.DoChan(userID+"|"+token, func() (any, error) {
		flightCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), flightTimeout)
		defer cancel()
		var p startupProfile
		if err := s.client.GetJSON(flightCtx, startupProfilePath, &p); err != nil {
			return startupProfile{}, err
		}
		return p, nil
	})
	select {
	case <-ctx.Done():
		return startupProfile{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return startupProfile{}, res.Err
		}
		return res.Val.(startupProfile), nil
	}
}

// ProfileCompletion returns the completion percentage, clamped to [0,100].
// A missing value is 0.
func (s *StartupClient) ProfileCompletion() dashboard.Source {
	return dashboard.SourceFunc(func(ctx context.Context, userID string) (int, error) {
		p, err := s.profile(ctx, userID)
		if err != nil {
			return 0, err
		}
		if p.ProfileCompletion == nil {
			return 0, nil
		}
		return min(max(*p.ProfileCompletion, 0), 100), nil
	})
}

// Milestones returns the number of completed milestones.
func (s *StartupClient) Milestones() dashboard.Source {
	return dashboard.SourceFunc(func(ctx context.Context, userID string) (int, error) {
		p, err := s.profile(ctx, userID)
		if err != nil {
			return 0, err
		}
		return max(p.MilestonesCount, 0), nil
	})
}
