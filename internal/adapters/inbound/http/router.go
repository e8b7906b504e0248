package http

import (
	"fmt"
	"net/http"

	"github.com/architeacher/device-tracker/internal/adapters/inbound/http/handlers"
	"github.com/architeacher/device-tracker/internal/adapters/inbound/http/middleware"
	"github.com/architeacher/device-tracker/internal/config"
	"github.com/architeacher/device-tracker/internal/usecases"
	"github.com/architeacher/device-tracker/pkg/logger"
	"github.com/architeacher/device-tracker/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

type RouterConfig struct {
	App           *usecases.Application
	Logger        logger.Logger
	MetricsClient metrics.Client
	Config        *config.ServiceConfig
}

func NewRouter(cfg RouterConfig) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID())
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.Recovery(cfg.Logger))
	router.Use(middleware.SecurityHeaders())
	router.Use(chimiddleware.Timeout(cfg.Config.HTTPServer.RequestTimeout))

	if cfg.Config.Telemetry.Traces.Enabled {
		router.Use(middleware.Tracer())
		cfg.Logger.Info().Msg("distributed tracing enabled")
	}

	doc, err := LoadOpenAPIDoc()
	if err != nil {
		cfg.Logger.Fatal().Err(err).Msg("failed to load OpenAPI document")
	}

	router.Use(middleware.RequestValidator(cfg.Logger, doc))

	if cfg.Config.Telemetry.Metrics.Enabled {
		metricsMiddleware := middleware.NewMetricsMiddleware(cfg.MetricsClient)
		router.Use(metricsMiddleware.Middleware)
		cfg.Logger.Info().Msg("HTTP metrics collection enabled")
	}

	if cfg.Config.Logging.AccessLog.Enabled {
		healthFilter := middleware.NewHealthCheckFilter(cfg.Config.Logging.AccessLog.LogHealthChecks)

		router.Use(healthFilter.Middleware)
		router.Use(middleware.AccessLogger(cfg.Logger))
	}

	deviceHandler := handlers.NewDeviceHandler(cfg.App)
	healthHandler := handlers.NewHealthHandler(cfg.App)

	router.Route("/devices", func(r chi.Router) {
		r.Get("/", deviceHandler.ListDevices)
		r.Post("/", deviceHandler.CreateDevice)

		r.Route(fmt.Sprintf("/{%s}", handlers.DeviceIDParam), func(r chi.Router) {
			r.Get("/", deviceHandler.GetDevice)
			r.Put("/", deviceHandler.UpdateDevice)
			r.Patch("/", deviceHandler.PatchDevice)
			r.Delete("/", deviceHandler.DeleteDevice)
		})
	})

	router.Route("/health", func(r chi.Router) {
		r.Get("/liveness", healthHandler.LivenessCheck)
		r.Get("/readiness", healthHandler.ReadinessCheck)
	})

	return router
}
