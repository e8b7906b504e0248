package model_test

import (
	"testing"
	"time"

	"github.com/architeacher/device-tracker/internal/domain/model"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func statePtr(s model.State) *model.State {
	return &s
}

func TestDeviceData_ToDevice(t *testing.T) {
	t.Parallel()

	t.Run("generates identifier and creation time when absent", func(t *testing.T) {
		t.Parallel()

		data := model.DeviceData{
			Name:  strPtr("Router"),
			Brand: strPtr("Acme"),
			State: statePtr(model.StateAvailable),
		}

		device := data.ToDevice()

		require.False(t, device.ID.IsZero())
		require.False(t, device.CreatedAt.IsZero())
		require.Equal(t, "Router", device.Name)
		require.Equal(t, "Acme", device.Brand)
		require.Equal(t, model.StateAvailable, device.State)
	})

	t.Run("keeps identifier and creation time when present", func(t *testing.T) {
		t.Parallel()

		id := model.NewDeviceID()
		createdAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

		data := model.DeviceData{
			ID:        &id,
			CreatedAt: &createdAt,
			Name:      strPtr("Router"),
		}

		device := data.ToDevice()

		require.Equal(t, id, device.ID)
		require.Equal(t, createdAt, device.CreatedAt)
	})

	t.Run("distinct calls generate distinct identifiers", func(t *testing.T) {
		t.Parallel()

		data := model.DeviceData{Name: strPtr("Router")}

		first := data.ToDevice()
		second := data.ToDevice()

		require.NotEqual(t, first.ID, second.ID)
	})
}

func TestDeviceDataFromDevice(t *testing.T) {
	t.Parallel()

	device := model.NewDevice("Router", "Acme", model.StateInactive)
	data := model.DeviceDataFromDevice(device)

	require.NotNil(t, data.ID)
	require.Equal(t, device.ID, *data.ID)
	require.Equal(t, device.Name, *data.Name)
	require.Equal(t, device.Brand, *data.Brand)
	require.Equal(t, device.State, *data.State)
	require.Equal(t, device.CreatedAt, *data.CreatedAt)
}

func TestMerge(t *testing.T) {
	t.Parallel()

	existing := model.DeviceDataFromDevice(model.NewDevice("Old Name", "Old Brand", model.StateAvailable))

	cases := []struct {
		name          string
		incoming      model.DeviceData
		expectedName  string
		expectedBrand string
		expectedState model.State
	}{
		{
			name:          "empty payload keeps everything",
			incoming:      model.DeviceData{},
			expectedName:  "Old Name",
			expectedBrand: "Old Brand",
			expectedState: model.StateAvailable,
		},
		{
			name:          "name-only payload replaces only the name",
			incoming:      model.DeviceData{Name: strPtr("New Name")},
			expectedName:  "New Name",
			expectedBrand: "Old Brand",
			expectedState: model.StateAvailable,
		},
		{
			name:          "state-only payload replaces only the state",
			incoming:      model.DeviceData{State: statePtr(model.StateInUse)},
			expectedName:  "Old Name",
			expectedBrand: "Old Brand",
			expectedState: model.StateInUse,
		},
		{
			name: "full payload replaces every mutable field",
			incoming: model.DeviceData{
				Name:  strPtr("New Name"),
				Brand: strPtr("New Brand"),
				State: statePtr(model.StateInactive),
			},
			expectedName:  "New Name",
			expectedBrand: "New Brand",
			expectedState: model.StateInactive,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			merged := model.Merge(tc.incoming, existing)

			require.Equal(t, *existing.ID, *merged.ID)
			require.Equal(t, *existing.CreatedAt, *merged.CreatedAt)
			require.Equal(t, tc.expectedName, *merged.Name)
			require.Equal(t, tc.expectedBrand, *merged.Brand)
			require.Equal(t, tc.expectedState, *merged.State)
		})
	}
}

func TestMerge_IgnoresIncomingIdentity(t *testing.T) {
	t.Parallel()

	existing := model.DeviceDataFromDevice(model.NewDevice("Name", "Brand", model.StateAvailable))

	otherID := model.NewDeviceID()
	otherTime := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	merged := model.Merge(model.DeviceData{ID: &otherID, CreatedAt: &otherTime}, existing)

	require.Equal(t, *existing.ID, *merged.ID)
	require.Equal(t, *existing.CreatedAt, *merged.CreatedAt)
}
