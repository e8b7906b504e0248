package commands

import (
	"context"

	"github.com/architeacher/device-tracker/internal/domain/model"
	"github.com/architeacher/device-tracker/internal/ports"
	"github.com/architeacher/device-tracker/pkg/decorator"
	"github.com/architeacher/device-tracker/pkg/logger"
	"github.com/architeacher/device-tracker/pkg/metrics"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	CreateDeviceCommand struct {
		Data model.DeviceData
	}

	CreateDeviceCommandHandler = decorator.CommandHandler[CreateDeviceCommand, model.DeviceData]

	createDeviceCommandHandler struct {
		devicesService ports.DevicesService
	}
)

func NewCreateDeviceCommandHandler(
	svc ports.DevicesService,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) CreateDeviceCommandHandler {
	return decorator.ApplyCommandDecorators[CreateDeviceCommand, model.DeviceData](
		createDeviceCommandHandler{devicesService: svc},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h createDeviceCommandHandler) Handle(ctx context.Context, cmd CreateDeviceCommand) (model.DeviceData, error) {
	return h.devicesService.Create(ctx, cmd.Data)
}
