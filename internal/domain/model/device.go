package model

import (
	"time"

	"github.com/google/uuid"
)

// DeviceID is the opaque unique identifier of a device.
type DeviceID struct {
	uuid.UUID
}

// NewDeviceID generates a fresh time-ordered identifier.
func NewDeviceID() DeviceID {
	return DeviceID{UUID: uuid.Must(uuid.NewV7())}
}

func ParseDeviceID(s string) (DeviceID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return DeviceID{}, err
	}

	return DeviceID{UUID: id}, nil
}

func (d DeviceID) String() string {
	return d.UUID.String()
}

func (d DeviceID) IsZero() bool {
	return d.UUID == uuid.Nil
}

// Device is the stored entity. ID and CreatedAt are assigned once at
// creation and never change afterwards.
type Device struct {
	ID        DeviceID
	Name      string
	Brand     string
	State     State
	CreatedAt time.Time
}

func NewDevice(name, brand string, state State) *Device {
	return &Device{
		ID:        NewDeviceID(),
		Name:      name,
		Brand:     brand,
		State:     state,
		CreatedAt: time.Now().UTC(),
	}
}

// IsInUse reports whether the in-use guard applies: while true, name and
// brand are frozen and the device cannot be deleted.
func (d *Device) IsInUse() bool {
	return d.State == StateInUse
}
