package circuitbreaker_test

import (
	"errors"
	"testing"

	"github.com/architeacher/device-tracker/pkg/circuitbreaker"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func TestNew_DisabledReturnsNil(t *testing.T) {
	t.Parallel()

	cb := circuitbreaker.New[int](circuitbreaker.Config{Enabled: false})
	require.Nil(t, cb)
}

func TestExecute_NilBreakerPassesThrough(t *testing.T) {
	t.Parallel()

	result, err := circuitbreaker.Execute[string](nil, func() (string, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	require.Equal(t, "ok", result)

	_, err = circuitbreaker.Execute[string](nil, func() (string, error) {
		return "", errBoom
	})
	require.ErrorIs(t, err, errBoom)
}

func TestExecute_SuccessKeepsBreakerClosed(t *testing.T) {
	t.Parallel()

	cb := circuitbreaker.New[int](circuitbreaker.Config{
		Name:             "test",
		Enabled:          true,
		FailureThreshold: 2,
	})
	require.NotNil(t, cb)
	require.Equal(t, "test", cb.Name())

	for range 5 {
		result, err := circuitbreaker.Execute(cb, func() (int, error) {
			return 7, nil
		})
		require.NoError(t, err)
		require.Equal(t, 7, result)
	}
}

func TestExecute_TripsAfterConsecutiveFailures(t *testing.T) {
	t.Parallel()

	cb := circuitbreaker.New[int](circuitbreaker.Config{
		Name:             "test",
		Enabled:          true,
		FailureThreshold: 2,
	})

	fail := func() (int, error) { return 0, errBoom }

	for range 2 {
		_, err := circuitbreaker.Execute(cb, fail)
		require.ErrorIs(t, err, errBoom)
	}

	// Breaker is now open: calls are rejected without running fn.
	called := false
	_, err := circuitbreaker.Execute(cb, func() (int, error) {
		called = true

		return 0, nil
	})
	require.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
	require.False(t, called)
}
