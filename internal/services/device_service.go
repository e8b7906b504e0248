package services

import (
	"context"

	"github.com/architeacher/device-tracker/internal/domain/model"
	"github.com/architeacher/device-tracker/internal/ports"
)

// DevicesService holds the business rules: the in-use guard and the
// merge-on-update semantics. Everything else is delegation.
type DevicesService struct {
	repo ports.DeviceRepository
}

func NewDevicesService(repo ports.DeviceRepository) *DevicesService {
	return &DevicesService{repo: repo}
}

// Create persists a new device. Identifier and creation time are assigned
// here when absent; duplicates on name or brand are permitted.
func (s *DevicesService) Create(ctx context.Context, data model.DeviceData) (model.DeviceData, error) {
	device := data.ToDevice()

	if err := s.repo.Save(ctx, device); err != nil {
		return model.DeviceData{}, err
	}

	return model.DeviceDataFromDevice(device), nil
}

// List pages through devices matching the populated fields of the filter.
func (s *DevicesService) List(ctx context.Context, page model.PageRequest, filter model.DeviceData) (model.DataPage, error) {
	result, err := s.repo.FindByExample(ctx, filter, page.Normalize())
	if err != nil {
		return model.DataPage{}, err
	}

	return model.NewDataPage(result), nil
}

func (s *DevicesService) ReadOne(ctx context.Context, id model.DeviceID) (model.DeviceData, error) {
	device, err := s.repo.FetchByID(ctx, id)
	if err != nil {
		return model.DeviceData{}, err
	}

	return model.DeviceDataFromDevice(device), nil
}

// Update applies a full or partial update. The existing device is loaded
// first (not-found wins over the guard); while it is in use, a payload
// carrying a name or brand is rejected outright, even if the values are
// unchanged. State transitions are always permitted. The merged result is
// persisted through the same path as Create.
func (s *DevicesService) Update(ctx context.Context, id model.DeviceID, data model.DeviceData) (model.DeviceData, error) {
	existing, err := s.repo.FetchByID(ctx, id)
	if err != nil {
		return model.DeviceData{}, err
	}

	if existing.IsInUse() && (data.Name != nil || data.Brand != nil) {
		return model.DeviceData{}, model.ErrCannotUpdateInUseDevice
	}

	merged := model.Merge(data, model.DeviceDataFromDevice(existing))

	return s.Create(ctx, merged)
}

// Delete removes a device. In-use devices cannot be removed.
func (s *DevicesService) Delete(ctx context.Context, id model.DeviceID) error {
	device, err := s.repo.FetchByID(ctx, id)
	if err != nil {
		return err
	}

	if device.IsInUse() {
		return model.ErrCannotDeleteInUseDevice
	}

	return s.repo.Delete(ctx, device.ID)
}
