package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"irrigation_dashboard/internal/config"
	"irrigation_dashboard/internal/emulator"
	"irrigation_dashboard/internal/handlers"
	"irrigation_dashboard/internal/ingest"
	"irrigation_dashboard/internal/logger"
	"irrigation_dashboard/internal/metrics"
	"irrigation_dashboard/internal/models"
	"irrigation_dashboard/internal/repository"
	"irrigation_dashboard/internal/repository/db"
	"irrigation_dashboard/internal/server"
	"irrigation_dashboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

type dashboardHooks struct {
	startMessage string
	seedPercent  *int // seeds simulated zones when set
	poll         bool // run the backend poller
	ingest       bool // subscribe to device readings over MQTT
}

func runDashboard(ctx context.Context, cfg config.Config, zones *service.ZoneTable, log *logger.Logger, hooks dashboardHooks) error {
	setGinMode(cfg)

	repos, closeRepos, err := openRepository(cfg, log)
	if err != nil {
		return err
	}
	defer closeRepos()

	m := metrics.New()
	services := service.NewService(repos, zones, service.Options{
		RawMax:  cfg.Sensor.RawMax,
		Metrics: m,
	})
	apiHandler := handlers.NewHandler(services, log,
		handlers.WithMetrics(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})),
	)

	var sub *ingest.Subscriber
	if hooks.ingest {
		if sub, err = newIngest(cfg.MQTT, services.Irrigation, log); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = services.ActivityLog.Record(ctx, 0, models.LogTypeSystem, hooks.startMessage)
	if hooks.seedPercent != nil {
		services.Irrigation.Seed(ctx, *hooks.seedPercent)
	}

	g, ctx := errgroup.WithContext(ctx)
	srv := &server.Server{}
	g.Go(func() error {
		return srv.Run(cfg.Port, apiHandler.InitRoutes())
	})
	g.Go(func() error {
		return waitForShutdown(ctx, srv, log)
	})
	if hooks.poll {
		g.Go(func() error {
			services.Poller.Run(ctx, cfg.Poll.Interval)
			return nil
		})
	}
	if sub != nil {
		g.Go(func() error {
			// the dashboard keeps serving slider input when the broker is unreachable
			if err := sub.Run(ctx); err != nil {
				log.Errorw("mqtt_ingest_stopped", "err", err)
			}
			return nil
		})
	}
	return g.Wait()
}

func newIngest(cfg config.MQTTConfig, sink ingest.ReadingSink, log *logger.Logger) (*ingest.Subscriber, error) {
	return ingest.NewSubscriber(ingest.Config{
		Broker:   cfg.Broker,
		ClientID: cfg.ClientID,
		Username: cfg.Username,
		Password: cfg.Password,
		Topic:    cfg.Topic,
		QoS:      byte(cfg.QoS),
	}, sink, log.Named("mqtt"))
}

func runEmulatorServer(ctx context.Context, cfg config.Config, device *emulator.Device, handler *emulator.Handler, log *logger.Logger) error {
	setGinMode(cfg)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	srv := &server.Server{}
	g.Go(func() error {
		return srv.Run(cfg.Emulator.Port, handler.InitRoutes())
	})
	g.Go(func() error {
		device.Run(ctx, cfg.Emulator.Tick)
		return nil
	})
	g.Go(func() error {
		return waitForShutdown(ctx, srv, log)
	})
	return g.Wait()
}

// openRepository selects the activity log store. SQLite with an empty DSN is in-memory.
func openRepository(cfg config.Config, log *logger.Logger) (*repository.Repository, func(), error) {
	if cfg.Activity.Store != config.StoreSQLite {
		return repository.NewMemoryRepository(cfg.Activity.Capacity), func() {}, nil
	}
	sqlDB, err := db.InitDB(cfg.Activity.DSN)
	if err != nil {
		return nil, nil, err
	}
	log.Infow("activity log in sqlite", "dsn", cfg.Activity.DSN, "capacity", cfg.Activity.Capacity)
	return repository.NewSQLiteRepository(sqlDB, cfg.Activity.Capacity), func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}, nil
}

// waitForShutdown blocks until ctx is done and then stops srv, allowing in-flight requests to complete.
func waitForShutdown(ctx context.Context, srv *server.Server, log *logger.Logger) error {
	<-ctx.Done()
	log.Infow("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && err != http.ErrServerClosed {
		log.Errorw("server forced to shutdown", "err", err)
		return err
	}
	return nil
}

func setGinMode(cfg config.Config) {
	if cfg.Log.Level == logger.DebugLevel {
		gin.SetMode(gin.DebugMode)
		return
	}
	gin.SetMode(gin.ReleaseMode)
}
