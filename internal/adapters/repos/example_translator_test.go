package repos_test

import (
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/architeacher/device-tracker/internal/adapters/repos"
	"github.com/architeacher/device-tracker/internal/domain/model"
	"github.com/stretchr/testify/require"
)

func TestExampleTranslator_Conditions(t *testing.T) {
	t.Parallel()

	translator := repos.NewExampleTranslator()

	name := "Router"
	brand := "Acme"
	state := model.StateInUse
	id := model.NewDeviceID()

	cases := []struct {
		name     string
		example  model.DeviceData
		expected sq.Eq
	}{
		{
			name:     "empty example imposes no constraint",
			example:  model.DeviceData{},
			expected: sq.Eq{},
		},
		{
			name:     "single populated field",
			example:  model.DeviceData{Brand: &brand},
			expected: sq.Eq{"brand": brand},
		},
		{
			name: "all populated fields contribute predicates",
			example: model.DeviceData{
				ID:    &id,
				Name:  &name,
				Brand: &brand,
				State: &state,
			},
			expected: sq.Eq{
				"id":    id.String(),
				"name":  name,
				"brand": brand,
				"state": state.String(),
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.expected, translator.Conditions(tc.example))
		})
	}
}

func TestExampleTranslator_IgnoresCreatedAt(t *testing.T) {
	t.Parallel()

	data := model.DeviceDataFromDevice(model.NewDevice("Router", "Acme", model.StateAvailable))
	data.ID = nil

	conditions := repos.NewExampleTranslator().Conditions(data)
	require.NotContains(t, conditions, "created_at")
}
