package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/startup-analytics/internal/api"
	"github.com/example/startup-analytics/internal/auth"
	"github.com/example/startup-analytics/internal/command"
	"github.com/example/startup-analytics/internal/config"
	"github.com/example/startup-analytics/internal/domain/activity"
	"github.com/example/startup-analytics/internal/domain/dashboard"
	"github.com/example/startup-analytics/internal/infrastructure/cache"
	"github.com/example/startup-analytics/internal/infrastructure/kafka"
	"github.com/example/startup-analytics/internal/infrastructure/store"
	"github.com/example/startup-analytics/internal/infrastructure/upstream"
	"github.com/example/startup-analytics/internal/logger"
	"github.com/example/startup-analytics/internal/observability"
	"github.com/example/startup-analytics/internal/query"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	base, err := logger.New(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	defer base.Sync()
	log := base.With("component", "API")

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", "error", err)
	}

	log.Info("starting analytics api",
		"addr", cfg.HTTPAddr,
		"kafka_brokers", cfg.KafkaBrokers,
		"kafka_topic", cfg.KafkaTopic,
		"facet_timeout", cfg.FacetTimeout,
	)

	// PostgreSQL: snapshots and the projected activity log
	db, err := store.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to PostgreSQL", "error", err)
	}
	defer db.Close()
	if err := store.EnsureSchema(ctx, db); err != nil {
		log.Fatal("failed to ensure schema", "error", err)
	}
	log.Info("connected to PostgreSQL")

	snapshots := store.NewPostgresSnapshotStore(db)
	activities := store.NewPostgresActivityStore(db)

	// Kafka producer for the activity write path
	producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer producer.Close()

	// Identity: the auth service when configured, else local JWT validation
	var resolver auth.Resolver
	if cfg.AuthServiceURL != "" {
		resolver = auth.NewRemoteResolver(cfg.AuthServiceURL, nil)
		log.Info("resolving identities via auth service", "url", cfg.AuthServiceURL)
	} else {
		resolver = auth.NewJWTService(cfg.JWTSecret, 15*time.Minute)
		log.Info("resolving identities from local JWTs")
	}

	metrics := observability.NewCollector("startup_analytics")

	sources := upstream.NewSources(cfg,
		upstream.WithLogger(base),
		upstream.WithStateObserver(metrics.ObserveBreaker),
	)
	orchestrator := dashboard.NewOrchestrator(sources, snapshots, activities,
		dashboard.WithLogger(base),
		dashboard.WithRecorder(metrics),
		dashboard.WithFacetTimeout(cfg.FacetTimeout),
		dashboard.WithActivityLimit(cfg.RecentActivityLimit),
	)

	var snapshotCache dashboard.Cache
	if cfg.RedisAddr != "" {
		rdb, err := cache.Connect(ctx, cfg.RedisAddr)
		if err != nil {
			log.Warn("redis unavailable, snapshot cache disabled", "error", err)
		} else {
			defer rdb.Close()
			snapshotCache = cache.NewSnapshotCache(rdb, cfg.SnapshotCacheTTL)
			log.Info("snapshot cache enabled", "redis", cfg.RedisAddr, "ttl", cfg.SnapshotCacheTTL)
		}
	}

	dashboardSvc := dashboard.NewService(orchestrator, snapshots, snapshotCache, base)
	activitySvc := activity.NewService(producer)

	cmdHandler := command.NewHandler(activitySvc, dashboardSvc)
	queryHandler := query.NewHandler(snapshots, activities, base)

	router := api.NewRouter(api.RouterConfig{
		Handlers: api.NewHandlers(dashboardSvc, cmdHandler, queryHandler, base),
		Resolver: resolver,
		Metrics:  metrics,
		Logger:   base,
	})

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server started", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", "error", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}
