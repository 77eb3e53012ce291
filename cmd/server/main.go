package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/grachmannico95/incident-replay/internal/config"
	"github.com/grachmannico95/incident-replay/internal/eventbus"
	"github.com/grachmannico95/incident-replay/internal/filters"
	"github.com/grachmannico95/incident-replay/internal/handler"
	"github.com/grachmannico95/incident-replay/internal/metrics"
	"github.com/grachmannico95/incident-replay/internal/realtime"
	"github.com/grachmannico95/incident-replay/internal/server"
	"github.com/grachmannico95/incident-replay/internal/service"
	"github.com/grachmannico95/incident-replay/internal/simulation"
	"github.com/grachmannico95/incident-replay/internal/storage"
	"github.com/grachmannico95/incident-replay/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.New(cfg.Logging.Level)
	defer log.Sync()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	log.Info(ctx, "Starting application")

	store := storage.Load(int64(cfg.Simulation.Seed))
	log.Info(ctx, "Dataset generated",
		"seed", cfg.Simulation.Seed,
		"transactions", len(store.Transactions(ctx)),
	)

	clock := simulation.NewIncidentClock()
	clock.SetRunning(cfg.Simulation.Autostart)
	if _, err := clock.SetSpeed(cfg.Simulation.Speed); err != nil {
		log.Warn(ctx, "Ignoring configured speed", "speed", cfg.Simulation.Speed, "error", err)
	}

	state := filters.NewState()
	if _, err := state.SetAlertThreshold(cfg.Simulation.AlertThreshold); err != nil {
		log.Warn(ctx, "Ignoring configured alert threshold", "error", err)
	}

	bus := eventbus.New(log, &eventbus.Config{
		ChannelBuffer: cfg.EventBus.ChannelBufferSize,
		MaxRetries:    cfg.EventBus.MaxRetries,
	})
	log.Info(ctx, "Event bus initialized")

	hub := realtime.NewHub(log)
	go hub.Run(ctx)

	recorder := metrics.New()

	dashboardService := service.NewDashboardService(store, clock, state, log)
	simulationService := service.NewSimulationService(clock, state, bus, log)
	log.Info(ctx, "Services initialized")

	metricsConsumer := eventbus.NewMetricsConsumer(dashboardService, recorder, log)
	broadcastConsumer := eventbus.NewBroadcastConsumer(dashboardService, hub, log)
	for _, eventType := range []eventbus.EventType{eventbus.EventTypeTick, eventbus.EventTypeStateChanged} {
		for _, consumer := range []eventbus.Consumer{metricsConsumer, broadcastConsumer} {
			if err := bus.Subscribe(eventType, consumer); err != nil {
				log.Fatal(ctx, "Failed to subscribe consumer",
					"event_type", eventType,
					"error", err,
				)
			}
		}
	}

	if err := bus.Start(ctx); err != nil {
		log.Fatal(ctx, "Failed to start event bus",
			"error", err,
		)
	}

	ticker := simulation.NewTicker(clock, cfg.Simulation.TickInterval, cfg.Simulation.MinutesPerTick, log, simulationService.OnTick)
	ticker.Start(ctx)

	// Prime the gauges so /metrics is populated before the first tick.
	simulationService.OnTick(ctx, clock.Snapshot())

	srv := server.New(cfg, log, server.Handlers{
		Health:     handler.NewHealthHandler(hub),
		Dashboard:  handler.NewDashboardHandler(dashboardService, log),
		Simulation: handler.NewSimulationHandler(simulationService, log),
		Stream:     handler.NewStreamHandler(hub, log),
		Metrics:    recorder.Handler(),
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(ctx, "Failed to start HTTP server",
				"error", err,
			)
		}
	}()

	log.Info(ctx, "Application started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info(ctx, "Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Shutdown order: HTTP first, then the clock driver, then the consumers
	// and finally the hub.
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "HTTP server shutdown error",
			"error", err,
		)
	}

	ticker.Stop()

	if err := bus.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "Event bus shutdown error",
			"error", err,
		)
	}

	stop()

	log.Info(shutdownCtx, "Application stopped gracefully")
}
