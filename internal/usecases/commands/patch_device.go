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
	// PatchDeviceCommand carries a partial update: only the populated
	// fields of Data are applied, the rest fall back to the stored device.
	PatchDeviceCommand struct {
		ID   model.DeviceID
		Data model.DeviceData
	}

	PatchDeviceCommandHandler = decorator.CommandHandler[PatchDeviceCommand, model.DeviceData]

	patchDeviceCommandHandler struct {
		devicesService ports.DevicesService
	}
)

func NewPatchDeviceCommandHandler(
	svc ports.DevicesService,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) PatchDeviceCommandHandler {
	return decorator.ApplyCommandDecorators[PatchDeviceCommand, model.DeviceData](
		patchDeviceCommandHandler{devicesService: svc},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h patchDeviceCommandHandler) Handle(ctx context.Context, cmd PatchDeviceCommand) (model.DeviceData, error) {
	return h.devicesService.Update(ctx, cmd.ID, cmd.Data)
}
