// Package main is the entry point for the service. It wires all dependencies
// using samber/do v2, starts the HTTP server and background jobs, and handles
// graceful shutdown on SIGINT/SIGTERM.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do/v2"

	adapthttp "github.com/jalonhq/jalon/internal/adapters/http"
	"github.com/jalonhq/jalon/internal/adapters/http/handlers"
	"github.com/jalonhq/jalon/internal/adapters/http/middleware"
	"github.com/jalonhq/jalon/internal/adapters/notify"
	"github.com/jalonhq/jalon/internal/adapters/sqlite"
	"github.com/jalonhq/jalon/internal/app"
	"github.com/jalonhq/jalon/internal/authz"
	"github.com/jalonhq/jalon/internal/platform/config"
	"github.com/jalonhq/jalon/internal/platform/health"
	"github.com/jalonhq/jalon/internal/platform/httpclient"
	"github.com/jalonhq/jalon/internal/platform/logging"
	"github.com/jalonhq/jalon/internal/platform/telemetry"
	"github.com/jalonhq/jalon/internal/ports"
	"github.com/jalonhq/jalon/internal/scheduler"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	serverShutdownTimeout = 15 * time.Second
	otelShutdownTimeout   = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		return errors.New("APP_PROFILE environment variable is required (e.g. local, dev, qa, prod)")
	}

	// Bootstrap: config, logger, telemetry.
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	ctx := context.Background()
	otel, err := initTelemetry(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	// DI container.
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, otel.metrics)

	registerDependencies(injector, cfg, logger)

	// Resolve the server (eagerly wires the full graph).
	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("resolving server: %w", err)
	}

	db := do.MustInvoke[*sql.DB](injector)
	defer db.Close()

	// Register health checkers after the graph is wired.
	registry := do.MustInvoke[ports.HealthRegistry](injector)
	registry.Register(sqlite.NewHealthChecker(db))
	if cfg.Notify.Channel == "gateway" {
		registry.Register(do.MustInvoke[*httpclient.Client](injector))
	}

	// Background jobs are owned here: started after the server comes up,
	// stopped before telemetry flush.
	var reminder *scheduler.Reminder
	if cfg.Reminder.Enabled {
		reminder = do.MustInvoke[*scheduler.Reminder](injector)
		if err := reminder.Start(); err != nil {
			return fmt.Errorf("starting reminder job: %w", err)
		}
		logger.Info("reminder job started",
			slog.Duration("interval", cfg.Reminder.Interval),
			slog.Duration("lookahead", cfg.Reminder.Lookahead),
		)
	}

	// Start server in background.
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	// Wait for shutdown signal or server error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErr:
		if reminder != nil {
			reminder.Stop()
		}
		return fmt.Errorf("server failed: %w", err)
	}

	// Graceful shutdown: drain HTTP requests, then stop background jobs.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	}

	// Wait for Start() goroutine to return.
	<-serverErr

	if reminder != nil {
		reminder.Stop()
		logger.Info("reminder job stopped")
	}

	// Flush telemetry.
	otelCtx, otelCancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer otelCancel()

	if err := otel.Shutdown(otelCtx); err != nil {
		logger.Error("telemetry shutdown error", slog.Any("error", err))
	}

	logger.Info("shutdown complete")
	return nil
}

// otelProviders bundles OpenTelemetry provider lifecycle. All fields are nil
// when telemetry is disabled.
type otelProviders struct {
	tracer  *sdktrace.TracerProvider
	meter   *sdkmetric.MeterProvider
	metrics *telemetry.Metrics
}

// Shutdown flushes both providers. Nil-safe.
func (o *otelProviders) Shutdown(ctx context.Context) error {
	var errs []error
	if o.tracer != nil {
		if err := o.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if o.meter != nil {
		if err := o.meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

func initTelemetry(ctx context.Context, cfg *config.Config) (*otelProviders, error) {
	if !cfg.Telemetry.Enabled {
		return &otelProviders{}, nil
	}

	tp, err := telemetry.InitTracer(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	mp, err := telemetry.InitMeter(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("init meter: %w", err)
	}

	metrics, err := telemetry.NewMetrics(mp, cfg.Telemetry.ServiceName)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, fmt.Errorf("creating metrics: %w", err)
	}

	return &otelProviders{
		tracer:  tp,
		meter:   mp,
		metrics: metrics,
	}, nil
}

func registerDependencies(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	do.Provide(injector, func(_ do.Injector) (*sql.DB, error) {
		return sqlite.Open(sqlite.Config{
			Path:        cfg.Database.Path,
			BusyTimeout: cfg.Database.BusyTimeout,
		})
	})

	do.Provide(injector, func(i do.Injector) (ports.StageRepository, error) {
		db := do.MustInvoke[*sql.DB](i)
		return sqlite.NewStageRepo(db), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.TaskRepository, error) {
		db := do.MustInvoke[*sql.DB](i)
		return sqlite.NewTaskRepo(db), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.RoleResolver, error) {
		db := do.MustInvoke[*sql.DB](i)
		return sqlite.NewUserRepo(db), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.Authorizer, error) {
		return authz.NewEngine(), nil
	})

	do.Provide(injector, func(i do.Injector) (*httpclient.Client, error) {
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return httpclient.New(&cfg.Notify.Gateway, "notification-gateway", metrics, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.Notifier, error) {
		if cfg.Notify.Channel == "gateway" {
			client := do.MustInvoke[*httpclient.Client](i)
			return notify.NewGateway(client), nil
		}
		return notify.NewLog(logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.StageService, error) {
		return app.NewStageService(
			do.MustInvoke[ports.StageRepository](i),
			do.MustInvoke[ports.TaskRepository](i),
			do.MustInvoke[ports.RoleResolver](i),
			do.MustInvoke[ports.Authorizer](i),
			do.MustInvoke[ports.Notifier](i),
			logger,
		), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.TaskService, error) {
		tasks := do.MustInvoke[ports.TaskRepository](i)
		notifier := do.MustInvoke[ports.Notifier](i)
		return app.NewTaskService(tasks, notifier, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (*scheduler.Reminder, error) {
		tasks := do.MustInvoke[ports.TaskRepository](i)
		notifier := do.MustInvoke[ports.Notifier](i)
		return scheduler.NewReminder(tasks, notifier, logger,
			cfg.Reminder.Interval, cfg.Reminder.Lookahead), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.StageHandler, error) {
		svc := do.MustInvoke[ports.StageService](i)
		return handlers.NewStageHandler(svc), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.TaskHandler, error) {
		svc := do.MustInvoke[ports.TaskService](i)
		return handlers.NewTaskHandler(svc), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.HealthHandler, error) {
		registry := do.MustInvoke[ports.HealthRegistry](i)
		return handlers.NewHealthHandler(registry), nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		stageH := do.MustInvoke[*handlers.StageHandler](i)
		taskH := do.MustInvoke[*handlers.TaskHandler](i)
		healthH := do.MustInvoke[*handlers.HealthHandler](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		return adapthttp.NewRouter(stageH, taskH, healthH,
			middleware.Recovery(logger),
			middleware.RequestID(),
			middleware.CorrelationID(),
			middleware.OpenTelemetry(metrics),
			middleware.Logging(logger),
			middleware.Timeout(cfg.Server.WriteTimeout),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler := do.MustInvoke[nethttp.Handler](i)
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})
}
