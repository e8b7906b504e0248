package ports

import (
	"context"

	"github.com/architeacher/device-tracker/internal/domain/model"
)

type (
	Saver interface {
		// Save stores a device, inserting it or replacing its mutable
		// fields when the identifier already exists. The creation time of
		// an existing row is never modified.
		Save(ctx context.Context, device *model.Device) error
	}

	Fetcher interface {
		// FetchByID retrieves a device by its ID, returning
		// model.ErrDeviceNotFound when no such device exists.
		FetchByID(ctx context.Context, id model.DeviceID) (*model.Device, error)
	}

	Finder interface {
		// FindByExample retrieves one page of devices whose fields equal
		// the populated fields of the example; absent fields impose no
		// constraint. Ordering is stable across requests.
		FindByExample(ctx context.Context, example model.DeviceData, page model.PageRequest) (*model.DevicePage, error)
	}

	Deleter interface {
		// Delete removes a device by its ID, returning
		// model.ErrDeviceNotFound when no row was removed.
		Delete(ctx context.Context, id model.DeviceID) error
	}

	ExistenceChecker interface {
		// ExistsByID reports whether a device with the given ID exists.
		ExistsByID(ctx context.Context, id model.DeviceID) (bool, error)
	}

	// DeviceRepository defines the persistence contract the service
	// depends on.
	DeviceRepository interface {
		Saver
		Fetcher
		Finder
		Deleter
		ExistenceChecker
	}
)
