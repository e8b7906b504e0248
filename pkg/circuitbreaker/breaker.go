// Package circuitbreaker wraps gobreaker to guard calls to downstream
// dependencies, failing fast once consecutive failures pass a threshold.
package circuitbreaker

import (
	"errors"

	"github.com/sony/gobreaker/v2"
)

// Sentinel errors surfaced instead of gobreaker's internals.
var (
	// ErrCircuitOpen indicates the breaker is open and the call was
	// rejected without reaching the downstream dependency.
	ErrCircuitOpen = errors.New("circuit breaker is open")

	// ErrTooManyRequests indicates the breaker is half-open and its probe
	// budget is exhausted.
	ErrTooManyRequests = errors.New("too many requests in half-open state")
)

// CircuitBreaker provides type-safe execution through a gobreaker instance.
type CircuitBreaker[T any] struct {
	cb *gobreaker.CircuitBreaker[T]
}

// New creates a circuit breaker from cfg. A disabled configuration yields
// nil, which Execute treats as a direct pass-through.
func New[T any](cfg Config) *CircuitBreaker[T] {
	if !cfg.Enabled {
		return nil
	}

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: uint32(cfg.MaxRequests),
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(cfg.FailureThreshold)
		},
	}

	if cfg.IsSuccessful != nil {
		settings.IsSuccessful = cfg.IsSuccessful
	}

	return &CircuitBreaker[T]{cb: gobreaker.NewCircuitBreaker[T](settings)}
}

// Name returns the configured breaker name.
func (c *CircuitBreaker[T]) Name() string {
	return c.cb.Name()
}

// Execute runs fn through cb, translating gobreaker state errors into the
// package sentinels. A nil breaker executes fn directly.
func Execute[T any](cb *CircuitBreaker[T], fn func() (T, error)) (T, error) {
	if cb == nil {
		return fn()
	}

	result, err := cb.cb.Execute(fn)
	if err != nil {
		var zero T

		if errors.Is(err, gobreaker.ErrOpenState) {
			return zero, ErrCircuitOpen
		}

		if errors.Is(err, gobreaker.ErrTooManyRequests) {
			return zero, ErrTooManyRequests
		}

		return result, err
	}

	return result, nil
}
