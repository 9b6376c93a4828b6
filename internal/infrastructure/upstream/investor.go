package upstream

import (
	"context"

	"github.com/example/startup-analytics/internal/domain/dashboard"
)

const (
	matchesPath           = "/api/matching/for-me"
	activeConnectionsPath = "/api/connections/active"
)

// InvestorClient talks to the matching service, which also owns connections.
type InvestorClient struct {
	client *Client
}

func NewInvestorClient(c *Client) *InvestorClient {
	return &InvestorClient{client: c}
}

func (i *InvestorClient) Matches() dashboard.Source {
	return dashboard.SourceFunc(func(ctx context.Context, _ string) (int, error) {
		return i.client.countList(ctx, matchesPath)
	})
}

func (i *InvestorClient) ActiveConnections() dashboard.Source {
	return dashboard.SourceFunc(func(ctx context.Context, _ string) (int, error) {
		return i.client.countList(ctx, activeConnectionsPath)
	})
}
