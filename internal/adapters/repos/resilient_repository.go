package repos

import (
	"context"
	"errors"

	"github.com/architeacher/device-tracker/internal/domain/model"
	"github.com/architeacher/device-tracker/internal/ports"
	"github.com/architeacher/device-tracker/pkg/circuitbreaker"
	"github.com/cenkalti/backoff/v4"
)

// ResilientDeviceRepository wraps a DeviceRepository with a retry policy
// for transient storage failures and a circuit breaker that fails fast
// once the store keeps misbehaving. Business outcomes (not-found) pass
// through untouched and never count against the breaker.
type ResilientDeviceRepository struct {
	next    ports.DeviceRepository
	breaker *circuitbreaker.CircuitBreaker[any]
	retry   backoffSettings
}

type backoffSettings struct {
	maxRetries uint
	factory    func() backoff.BackOff
}

func NewResilientDeviceRepository(
	next ports.DeviceRepository,
	breakerCfg circuitbreaker.Config,
	maxRetries uint,
	newBackOff func() backoff.BackOff,
) *ResilientDeviceRepository {
	if breakerCfg.IsSuccessful == nil {
		breakerCfg.IsSuccessful = func(err error) bool {
			return err == nil || !isTransient(err)
		}
	}

	if newBackOff == nil {
		newBackOff = func() backoff.BackOff { return backoff.NewExponentialBackOff() }
	}

	return &ResilientDeviceRepository{
		next:    next,
		breaker: circuitbreaker.New[any](breakerCfg),
		retry:   backoffSettings{maxRetries: maxRetries, factory: newBackOff},
	}
}

func (r *ResilientDeviceRepository) Save(ctx context.Context, device *model.Device) error {
	_, err := r.execute(ctx, func() (any, error) {
		return nil, r.next.Save(ctx, device)
	})

	return err
}

func (r *ResilientDeviceRepository) FetchByID(ctx context.Context, id model.DeviceID) (*model.Device, error) {
	result, err := r.execute(ctx, func() (any, error) {
		return r.next.FetchByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	return result.(*model.Device), nil
}

func (r *ResilientDeviceRepository) FindByExample(
	ctx context.Context,
	example model.DeviceData,
	page model.PageRequest,
) (*model.DevicePage, error) {
	result, err := r.execute(ctx, func() (any, error) {
		return r.next.FindByExample(ctx, example, page)
	})
	if err != nil {
		return nil, err
	}

	return result.(*model.DevicePage), nil
}

func (r *ResilientDeviceRepository) ExistsByID(ctx context.Context, id model.DeviceID) (bool, error) {
	result, err := r.execute(ctx, func() (any, error) {
		return r.next.ExistsByID(ctx, id)
	})
	if err != nil {
		return false, err
	}

	return result.(bool), nil
}

func (r *ResilientDeviceRepository) Delete(ctx context.Context, id model.DeviceID) error {
	_, err := r.execute(ctx, func() (any, error) {
		return nil, r.next.Delete(ctx, id)
	})

	return err
}

func (r *ResilientDeviceRepository) Ping(ctx context.Context) error {
	type pinger interface {
		Ping(ctx context.Context) error
	}

	if p, ok := r.next.(pinger); ok {
		return p.Ping(ctx)
	}

	return nil
}

func (r *ResilientDeviceRepository) execute(ctx context.Context, op func() (any, error)) (any, error) {
	return circuitbreaker.Execute(r.breaker, func() (any, error) {
		return r.withRetry(ctx, op)
	})
}

func (r *ResilientDeviceRepository) withRetry(ctx context.Context, op func() (any, error)) (any, error) {
	if r.retry.maxRetries == 0 {
		return op()
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(r.retry.factory(), uint64(r.retry.maxRetries)),
		ctx,
	)

	var result any

	operation := func() error {
		var err error

		result, err = op()
		if err == nil {
			return nil
		}

		if isTransient(err) {
			return err
		}

		return backoff.Permanent(err)
	}

	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}

	return result, nil
}

// isTransient reports whether the failure came from the store itself
// rather than being a business outcome worth reporting to the caller.
func isTransient(err error) bool {
	return errors.Is(err, model.ErrDatabaseQuery)
}
