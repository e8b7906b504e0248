package model

import "time"

// DeviceData is the wire-level projection of Device with explicit per-field
// presence: a nil field was not sent. The same shape serves as a partial
// input payload and as a match-by-example list filter. ID and CreatedAt are
// output-only; the boundary never populates them from client input.
type DeviceData struct {
	ID        *DeviceID
	Name      *string
	Brand     *string
	State     *State
	CreatedAt *time.Time
}

// DeviceDataFromDevice projects a stored entity into transfer form.
func DeviceDataFromDevice(device *Device) DeviceData {
	id := device.ID
	name := device.Name
	brand := device.Brand
	state := device.State
	createdAt := device.CreatedAt

	return DeviceData{
		ID:        &id,
		Name:      &name,
		Brand:     &brand,
		State:     &state,
		CreatedAt: &createdAt,
	}
}

// ToDevice materializes an entity from the populated fields. A missing
// identifier gets a freshly generated one and a missing creation time is
// stamped now; absent name, brand, and state become zero values.
func (d DeviceData) ToDevice() *Device {
	device := &Device{}

	if d.ID != nil {
		device.ID = *d.ID
	} else {
		device.ID = NewDeviceID()
	}

	if d.CreatedAt != nil {
		device.CreatedAt = *d.CreatedAt
	} else {
		device.CreatedAt = time.Now().UTC()
	}

	if d.Name != nil {
		device.Name = *d.Name
	}

	if d.Brand != nil {
		device.Brand = *d.Brand
	}

	if d.State != nil {
		device.State = *d.State
	}

	return device
}

// Merge combines a partial update with the stored device's data: the
// identifier and creation time always come from existing, and each mutable
// field comes from incoming when present there, else from existing. PUT
// supplies all mutable fields, making the fallback a no-op on that path.
func Merge(incoming, existing DeviceData) DeviceData {
	merged := DeviceData{
		ID:        existing.ID,
		CreatedAt: existing.CreatedAt,
		Name:      existing.Name,
		Brand:     existing.Brand,
		State:     existing.State,
	}

	if incoming.Name != nil {
		merged.Name = incoming.Name
	}

	if incoming.Brand != nil {
		merged.Brand = incoming.Brand
	}

	if incoming.State != nil {
		merged.State = incoming.State
	}

	return merged
}
