package upstream

import (
	"github.com/example/startup-analytics/internal/config"
	"github.com/example/startup-analytics/internal/domain/dashboard"
)

// NewSources builds one breaker-guarded client per upstream service and maps
// every facet to the client that owns it.
func NewSources(cfg config.Config, opts ...Option) dashboard.Sources {
	startup := NewStartupClient(NewClient("startup-service", cfg.StartupServiceURL, cfg.Breaker, opts...))
	pitch := NewPitchClient(NewClient("pitch-service", cfg.PitchServiceURL, cfg.Breaker, opts...))
	investor := NewInvestorClient(NewClient("investor-service", cfg.InvestorServiceURL, cfg.Breaker, opts...))

	return dashboard.Sources{
		dashboard.FacetProfileCompletion:   startup.ProfileCompletion(),
		dashboard.FacetMilestones:          startup.Milestones(),
		dashboard.FacetGeneratedContent:    pitch.GeneratedContent(),
		dashboard.FacetMatches:             investor.Matches(),
		dashboard.FacetActiveRelationships: investor.ActiveConnections(),
	}
}
