// Package main is the entry point for the service. It wires all dependencies
// using samber/do v2, starts the HTTP server, and handles graceful shutdown
// on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do/v2"

	adapthttp "github.com/jsamuelsen11/todo-backend/internal/adapters/http"
	"github.com/jsamuelsen11/todo-backend/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/todo-backend/internal/adapters/http/middleware"

	"github.com/jsamuelsen11/todo-backend/internal/app"
	"github.com/jsamuelsen11/todo-backend/internal/platform/config"
	"github.com/jsamuelsen11/todo-backend/internal/platform/health"
	"github.com/jsamuelsen11/todo-backend/internal/platform/logging"
	"github.com/jsamuelsen11/todo-backend/internal/platform/metrics"
	"github.com/jsamuelsen11/todo-backend/internal/platform/telemetry"
	"github.com/jsamuelsen11/todo-backend/internal/ports"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	serverShutdownTimeout = 15 * time.Second
	otelShutdownTimeout   = 5 * time.Second
	storeOpenTimeout      = 30 * time.Second
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
		return errors.New("APP_PROFILE environment variable is required (e.g. local, dev, test, prod)")
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr,
		logging.WithAttrs(
			slog.String("service", cfg.Telemetry.ServiceName),
			slog.String("profile", profile),
			slog.String("storage_driver", cfg.Storage.Driver),
		),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	otel, err := initTelemetry(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
		defer cancel()
		if err := otel.Shutdown(flushCtx); err != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", err))
		}
	}()

	injector := do.New()
	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, otel.metrics)
	do.ProvideValue(injector, metrics.New(metrics.WithRuntimeCollectors()))
	registerDependencies(injector, cfg, logger)

	// Resolving the server wires the whole graph and opens the store.
	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		injector.Shutdown()
		return fmt.Errorf("resolving server: %w", err)
	}

	serverErr := make(chan error, 1)
	go func() { serverErr <- server.Start() }()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-serverErr:
		runErr = err
		serverErr = nil
	}

	// The injector stops dependents first: the server drains, then the
	// store closes.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()
	if report := injector.ShutdownWithContext(shutdownCtx); !report.Succeed {
		logger.Error("shutdown incomplete", slog.String("errors", report.Error()))
	}
	if serverErr != nil {
		<-serverErr
	}

	if runErr != nil {
		return fmt.Errorf("server failed: %w", runErr)
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

	m, err := telemetry.NewMetrics(mp, cfg.Telemetry.ServiceName)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, fmt.Errorf("creating metrics: %w", err)
	}

	return &otelProviders{
		tracer:  tp,
		meter:   mp,
		metrics: m,
	}, nil
}

func registerDependencies(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	do.Provide(injector, func(i do.Injector) (*todoStore, error) {
		otelMetrics := do.MustInvoke[*telemetry.Metrics](i)
		promMetrics := do.MustInvoke[*metrics.Metrics](i)

		ctx, cancel := context.WithTimeout(context.Background(), storeOpenTimeout)
		defer cancel()
		return openStore(ctx, cfg, otelMetrics, promMetrics, logger)
	})

	do.Provide(injector, func(i do.Injector) (ports.TodoService, error) {
		store := do.MustInvoke[*todoStore](i)
		return app.NewTodoService(store.repo, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.HealthRegistry, error) {
		registry := health.New()
		if store := do.MustInvoke[*todoStore](i); store.checker != nil {
			registry.Register(store.checker)
		}
		return registry, nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.TodoHandler, error) {
		svc := do.MustInvoke[ports.TodoService](i)
		return handlers.NewTodoHandler(svc), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.HealthHandler, error) {
		registry := do.MustInvoke[ports.HealthRegistry](i)
		return handlers.NewHealthHandler(registry), nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		todoH := do.MustInvoke[*handlers.TodoHandler](i)
		healthH := do.MustInvoke[*handlers.HealthHandler](i)
		otelMetrics := do.MustInvoke[*telemetry.Metrics](i)
		promMetrics := do.MustInvoke[*metrics.Metrics](i)

		endpoint := adapthttp.MetricsEndpoint{}
		var observer middleware.HTTPObserver
		if cfg.Metrics.Enabled {
			endpoint = adapthttp.MetricsEndpoint{Path: cfg.Metrics.Path, Handler: promMetrics.Handler()}
			observer = promMetrics
		}

		stack := middleware.Stack(middleware.StackConfig{
			Logger:   logger,
			Metrics:  otelMetrics,
			Observer: observer,
			Timeout:  cfg.Server.WriteTimeout,
		})
		return adapthttp.NewRouter(todoH, healthH, endpoint, stack), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler := do.MustInvoke[nethttp.Handler](i)
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})
}
