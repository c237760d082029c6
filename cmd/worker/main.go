package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/hotelbooking/config"
	"github.com/Domenick1991/hotelbooking/internal/kafka"
	"github.com/Domenick1991/hotelbooking/internal/logging"
	"github.com/Domenick1991/hotelbooking/internal/repository"
	"github.com/Domenick1991/hotelbooking/internal/service/activity"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// The worker folds booking lifecycle events from Kafka into the activity log.
func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	logger := logging.New(cfg.Logging, os.Stdout).WithField("component", "worker")

	if cfg.Database.Driver != config.DriverPostgres {
		logger.Fatalf("worker needs database.driver %q, got %q", config.DriverPostgres, cfg.Database.Driver)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logger.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()
	if err := repository.Migrate(ctx, pool); err != nil {
		logger.Fatalf("migrate: %v", err)
	}

	activityService := activity.NewActivityService(repository.NewEventRepository(pool), logger)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.BookingEventsTopic, logger)
	defer consumer.Close()

	logger.WithField("topic", cfg.Kafka.BookingEventsTopic).Info("consuming booking events")
	err = consumer.ConsumeEvents(ctx, activityService.Record)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatalf("consumer stopped: %v", err)
	}
	logger.Info("worker stopped")
}
