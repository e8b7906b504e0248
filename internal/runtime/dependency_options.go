package runtime

import (
	"context"
	"fmt"
	"net"
	"net/http"

	inboundhttp "github.com/architeacher/device-tracker/internal/adapters/inbound/http"
	"github.com/architeacher/device-tracker/internal/adapters/repos"
	"github.com/architeacher/device-tracker/internal/config"
	"github.com/architeacher/device-tracker/internal/infrastructure"
	infraPostgres "github.com/architeacher/device-tracker/internal/infrastructure/postgres"
	"github.com/architeacher/device-tracker/internal/services"
	"github.com/architeacher/device-tracker/internal/usecases"
	"github.com/architeacher/device-tracker/pkg/circuitbreaker"
	"github.com/architeacher/device-tracker/pkg/logger"
	"github.com/architeacher/device-tracker/pkg/metrics"
	"github.com/architeacher/device-tracker/pkg/metrics/noop"
	"github.com/cenkalti/backoff/v4"
)

func defaultOptions(ctx context.Context) []DependencyOption {
	return []DependencyOption{
		WithConfig(),
		WithLogger(),
		WithTracing(ctx),
		WithMetrics(ctx),
		WithDatabase(ctx),
		WithDevicesRepository(),
		WithDevicesService(),
		WithApplication(),
		WithHTTPServer(),
	}
}

func WithConfig() DependencyOption {
	return func(d *dependencies) error {
		cfg, err := config.Init()
		if err != nil {
			return fmt.Errorf("initializing configuration: %w", err)
		}

		d.config = cfg

		return nil
	}
}

func WithLogger() DependencyOption {
	return func(d *dependencies) error {
		d.infra.logger = logger.New(d.config.Logging.Level, d.config.Logging.Format)

		return nil
	}
}

func WithTracing(_ context.Context) DependencyOption {
	return func(d *dependencies) error {
		if !d.config.Telemetry.Enabled || !d.config.Telemetry.Traces.Enabled {
			d.infra.tracerProvider = infrastructure.NewNoopTracerProvider()

			return nil
		}

		tp, shutdown, err := infrastructure.NewTracerProvider(
			d.config.Telemetry.ServiceName,
			d.config.App.ServiceVersion,
			d.config.Telemetry.OTLPEndpoint,
		)
		if err != nil {
			return fmt.Errorf("initializing tracer: %w", err)
		}

		d.infra.tracerProvider = tp
		d.cleanupFuncs["tracer"] = shutdown

		return nil
	}
}

func WithMetrics(_ context.Context) DependencyOption {
	return func(d *dependencies) error {
		if !d.config.Telemetry.Enabled || !d.config.Telemetry.Metrics.Enabled {
			d.infra.metricsClient = noop.NewMetricsClient()

			return nil
		}

		mp, shutdown, err := infrastructure.NewMeterProvider(
			d.config.Telemetry.ServiceName,
			d.config.App.ServiceVersion,
			d.config.Telemetry.OTLPEndpoint,
		)
		if err != nil {
			return fmt.Errorf("initializing meter provider: %w", err)
		}

		d.infra.metricsClient = metrics.NewOtelClient(
			mp.Meter(d.config.Telemetry.ServiceName),
			shutdown,
		)
		d.cleanupFuncs["meter"] = shutdown

		return nil
	}
}

func WithDatabase(ctx context.Context) DependencyOption {
	return func(d *dependencies) error {
		pool, err := infraPostgres.NewPool(ctx, d.config.Database)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}

		if d.config.Database.RunMigrations {
			if err := infraPostgres.Migrate(d.config.Database.MigrationDSN()); err != nil {
				pool.Close()

				return fmt.Errorf("migrating database: %w", err)
			}

			d.infra.logger.Info().Msg("database migrations applied")
		}

		d.infra.dbPool = pool
		d.cleanupFuncs["database"] = func(context.Context) error {
			pool.Close()

			return nil
		}

		return nil
	}
}

func WithDevicesRepository() DependencyOption {
	return func(d *dependencies) error {
		baseRepo := repos.NewDevicesRepository(
			d.infra.dbPool,
			repos.NewPgxScanner(),
			repos.NewExampleTranslator(),
			d.infra.logger,
		)

		retryCfg := d.config.Retry
		newBackOff := func() backoff.BackOff {
			bo := backoff.NewExponentialBackOff()
			bo.InitialInterval = retryCfg.InitialInterval
			bo.MaxInterval = retryCfg.MaxInterval
			bo.Multiplier = retryCfg.Multiplier

			return bo
		}

		d.repos.deviceRepo = repos.NewResilientDeviceRepository(
			baseRepo,
			circuitbreaker.Config{
				Name:             "devices-repository",
				Enabled:          d.config.CircuitBreaker.Enabled,
				MaxRequests:      d.config.CircuitBreaker.MaxRequests,
				Interval:         d.config.CircuitBreaker.Interval,
				Timeout:          d.config.CircuitBreaker.Timeout,
				FailureThreshold: d.config.CircuitBreaker.FailureThreshold,
			},
			retryCfg.MaxRetries,
			newBackOff,
		)

		return nil
	}
}

func WithDevicesService() DependencyOption {
	return func(d *dependencies) error {
		d.devicesService = services.NewDevicesService(d.repos.deviceRepo)

		return nil
	}
}

func WithApplication() DependencyOption {
	return func(d *dependencies) error {
		d.app = usecases.NewApplication(
			d.devicesService,
			d.getDBHealthChecker(),
			d.infra.logger,
			d.infra.metricsClient,
			d.infra.tracerProvider,
		)

		return nil
	}
}

func WithHTTPServer() DependencyOption {
	return func(d *dependencies) error {
		router := inboundhttp.NewRouter(inboundhttp.RouterConfig{
			App:           d.app,
			Logger:        d.infra.logger,
			MetricsClient: d.infra.metricsClient,
			Config:        d.config,
		})

		serverCfg := d.config.HTTPServer
		server := &http.Server{
			Addr:         net.JoinHostPort(serverCfg.Host, fmt.Sprintf("%d", serverCfg.Port)),
			Handler:      router,
			ReadTimeout:  serverCfg.ReadTimeout,
			WriteTimeout: serverCfg.WriteTimeout,
			IdleTimeout:  serverCfg.IdleTimeout,
		}

		d.infra.httpServer = server
		d.cleanupFuncs["http-server"] = server.Shutdown

		return nil
	}
}
