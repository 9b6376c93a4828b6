package api

import (
	"net/http"
	"time"

	"github.com/example/startup-analytics/internal/api/middleware"
	"github.com/example/startup-analytics/internal/auth"
	"github.com/example/startup-analytics/internal/domain/dashboard"
	"github.com/example/startup-analytics/internal/logger"
	"github.com/example/startup-analytics/internal/observability"
)

// RouterConfig holds everything the router needs
type RouterConfig struct {
	Handlers *Handlers
	Resolver auth.Resolver
	// Metrics is optional; /metrics is only served when set.
	Metrics *observability.Collector
	Logger  *logger.Logger
}

func NewRouter(cfg RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}
	h := cfg.Handlers
	mux := http.NewServeMux()

	authed := func(fn http.HandlerFunc) http.Handler {
		return middleware.AuthMiddleware(cfg.Resolver, log)(fn)
	}
	adminOnly := func(fn http.HandlerFunc) http.Handler {
		return middleware.AuthMiddleware(cfg.Resolver, log)(middleware.RequireRole(string(dashboard.RoleAdmin))(fn))
	}

	// Health & metrics
	mux.HandleFunc("GET /health", h.Health)
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics.Handler())
	}

	// Dashboard
	mux.Handle("GET /api/dashboard/me", authed(h.GetMyDashboard))
	mux.Handle("GET /api/dashboard/stats", authed(h.GetMyDashboard))
	mux.Handle("GET /api/dashboard/progress", authed(h.GetMyDashboard))
	mux.Handle("GET /api/dashboard/snapshot", authed(h.GetStoredDashboard))

	// Activities
	mux.Handle("GET /api/dashboard/activities", authed(h.ListActivities))
	mux.Handle("POST /api/dashboard/activities", authed(h.LogActivity))
	mux.Handle("GET /api/dashboard/activities/recent", authed(h.RecentActivities))
	mux.Handle("GET /api/dashboard/activities/count", authed(h.CountActivities))
	mux.Handle("GET /api/dashboard/activities/type/{type}", authed(h.ActivitiesByType))

	// Admin
	mux.Handle("GET /api/analytics/overview", adminOnly(h.Overview))

	var handler http.Handler = withLogging(mux, log)
	if cfg.Metrics != nil {
		handler = cfg.Metrics.HTTPMetrics(handler)
	}
	return handler
}

func withLogging(next http.Handler, log *logger.Logger) http.Handler {
	log = log.With("component", "API")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug("request", "method", r.Method, "path", r.URL.Path, "elapsed", time.Since(start))
	})
}
