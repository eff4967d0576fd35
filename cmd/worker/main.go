package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/magmaminds/admissions/pkg/app"
	"github.com/magmaminds/admissions/pkg/cache"
	"github.com/magmaminds/admissions/pkg/config"
	"github.com/magmaminds/admissions/pkg/events"
	"github.com/magmaminds/admissions/pkg/logger"
	"github.com/magmaminds/admissions/pkg/telemetry"
	admissionsSvcs "github.com/magmaminds/admissions/services/admissions/application/services"
	admissionsEvents "github.com/magmaminds/admissions/services/admissions/domain/events"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(context.Background()) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	appConfig := &app.Application{
		Config:   cfg,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	<-ctx.Done()
	// EventBus.Close (deferred) waits up to 30s for in-flight handlers.
	log.Info("shutting down worker...")
}

// subscription binds a topic to its handler.
type subscription struct {
	topic   string
	handler events.Handler
}

// registerSubscribers wires all domain event handlers.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	tally := admissionsSvcs.NewTallyService(cache.NewApplicationTally(a.Redis))

	subs := []subscription{
		{admissionsEvents.TopicApplicationSubmitted, tally.HandleSubmitted},
	}

	topics := make([]string, 0, len(subs))
	for _, s := range subs {
		errCh, err := a.EventBus.Subscribe(ctx, s.topic, s.handler)
		if err != nil {
			return err
		}
		go drainErrors(ctx, a.Logger, s.topic, errCh)
		topics = append(topics, s.topic)
	}

	a.Logger.Info("event subscribers registered", "topics", topics)
	return nil
}

// drainErrors logs handler failures so the error channel never blocks.
func drainErrors(ctx context.Context, log logger.Logger, topic string, errCh <-chan error) {
	for err := range errCh {
		log.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
	}
}
