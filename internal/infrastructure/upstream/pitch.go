package upstream

import (
	"context"

	"github.com/example/startup-analytics/internal/domain/dashboard"
)

const myPitchesPath = "/api/pitchs/me"

// PitchClient counts the pitches generated by the caller.
type PitchClient struct {
	client *Client
}

func NewPitchClient(c *Client) *PitchClient {
	return &PitchClient{client: c}
}

func (p *PitchClient) GeneratedContent() dashboard.Source {
	return dashboard.SourceFunc(func(ctx context.Context, _ string) (int, error) {
		return p.client.countList(ctx, myPitchesPath)
	})
}
