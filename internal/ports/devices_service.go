//go:generate go tool github.com/maxbrunsfeld/counterfeiter/v6 -generate

package ports

//counterfeiter:generate -o ../mocks/devices_service.go . DevicesService

import (
	"context"

	"github.com/architeacher/device-tracker/internal/domain/model"
)

// DevicesService defines the business operations exposed to the inbound
// adapters. All inputs and outputs use the transfer representation.
type DevicesService interface {
	// Create persists a new device from the supplied data and returns it
	// with identifier and creation time populated.
	Create(ctx context.Context, data model.DeviceData) (model.DeviceData, error)

	// List returns one page of devices matching the populated fields of
	// the filter.
	List(ctx context.Context, page model.PageRequest, filter model.DeviceData) (model.DataPage, error)

	// ReadOne retrieves a device by its ID.
	ReadOne(ctx context.Context, id model.DeviceID) (model.DeviceData, error)

	// Update applies a full or partial update, enforcing the in-use guard.
	Update(ctx context.Context, id model.DeviceID, data model.DeviceData) (model.DeviceData, error)

	// Delete removes a device unless its state forbids it.
	Delete(ctx context.Context, id model.DeviceID) error
}
