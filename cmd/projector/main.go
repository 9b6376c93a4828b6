package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/startup-analytics/internal/config"
	"github.com/example/startup-analytics/internal/infrastructure/kafka"
	"github.com/example/startup-analytics/internal/infrastructure/store"
	"github.com/example/startup-analytics/internal/logger"
	"github.com/example/startup-analytics/internal/projection"
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
	log := base.With("component", "Projector")

	log.Info("starting activity projector",
		"kafka_brokers", cfg.KafkaBrokers,
		"kafka_topic", cfg.KafkaTopic,
		"group", cfg.KafkaConsumerGroup,
	)

	db, err := store.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to PostgreSQL", "error", err)
	}
	defer db.Close()
	if err := store.EnsureSchema(ctx, db); err != nil {
		log.Fatal("failed to ensure schema", "error", err)
	}
	log.Info("connected to PostgreSQL")

	projector := projection.NewProjector(store.NewPostgresActivityStore(db), base)

	consumer := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.KafkaConsumerGroup, base)
	defer consumer.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		log.Info("consuming events")
		if err := consumer.Consume(ctx, projector.HandleEvent); err != nil && ctx.Err() == nil {
			log.Error("consumer error", "error", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
	case <-done:
	}

	log.Info("shutting down")
	cancel()
	<-done
}
