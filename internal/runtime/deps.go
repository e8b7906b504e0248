package runtime

import (
	"context"
	"fmt"
	"net/http"

	"github.com/architeacher/device-tracker/internal/config"
	"github.com/architeacher/device-tracker/internal/ports"
	"github.com/architeacher/device-tracker/internal/usecases"
	"github.com/architeacher/device-tracker/pkg/logger"
	"github.com/architeacher/device-tracker/pkg/metrics"
	"github.com/jackc/pgx/v5/pgxpool"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	infrastructureDep struct {
		httpServer     *http.Server
		tracerProvider otelTrace.TracerProvider
		metricsClient  metrics.Client
		logger         logger.Logger
		dbPool         *pgxpool.Pool
	}

	repositories struct {
		deviceRepo ports.DeviceRepository
	}

	dependencies struct {
		config         *config.ServiceConfig
		infra          infrastructureDep
		repos          repositories
		devicesService ports.DevicesService
		app            *usecases.Application
		cleanupFuncs   map[string]func(ctx context.Context) error
	}

	DependencyOption func(*dependencies) error
)

func initializeDependencies(ctx context.Context, opts ...DependencyOption) (*dependencies, error) {
	deps := &dependencies{
		cleanupFuncs: make(map[string]func(ctx context.Context) error),
	}

	allOpts := append(defaultOptions(ctx), opts...)

	for _, opt := range allOpts {
		if err := opt(deps); err != nil {
			return nil, fmt.Errorf("failed to apply dependency option: %w", err)
		}
	}

	return deps, nil
}

func (d *dependencies) getDBHealthChecker() ports.DatabaseHealthChecker {
	return d.repos.deviceRepo.(ports.DatabaseHealthChecker)
}
