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
	// UpdateDeviceCommand carries a full replacement: the boundary
	// guarantees name, brand, and state are all present.
	UpdateDeviceCommand struct {
		ID   model.DeviceID
		Data model.DeviceData
	}

	UpdateDeviceCommandHandler = decorator.CommandHandler[UpdateDeviceCommand, model.DeviceData]

	updateDeviceCommandHandler struct {
		devicesService ports.DevicesService
	}
)

func NewUpdateDeviceCommandHandler(
	svc ports.DevicesService,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) UpdateDeviceCommandHandler {
	return decorator.ApplyCommandDecorators[UpdateDeviceCommand, model.DeviceData](
		updateDeviceCommandHandler{devicesService: svc},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h updateDeviceCommandHandler) Handle(ctx context.Context, cmd UpdateDeviceCommand) (model.DeviceData, error) {
	return h.devicesService.Update(ctx, cmd.ID, cmd.Data)
}
