package circuitbreaker

import "time"

// Config holds the configuration for a circuit breaker.
type Config struct {
	// Name identifies the circuit breaker in logs and metrics.
	Name string

	// Enabled determines whether the circuit breaker is active. When
	// false, New returns nil and Execute passes through directly.
	Enabled bool

	// MaxRequests caps the number of probe requests allowed while the
	// breaker is half-open. Zero means a single probe.
	MaxRequests uint

	// Interval is the cyclic period over which the closed-state counters
	// are cleared. Zero keeps counts for the lifetime of the closed state.
	Interval time.Duration

	// Timeout is how long the breaker stays open before transitioning to
	// half-open. Zero defaults to gobreaker's 60 seconds.
	Timeout time.Duration

	// FailureThreshold is the number of consecutive failures that trips
	// the breaker from closed to open.
	FailureThreshold uint

	// IsSuccessful classifies errors returned by the wrapped call. Errors
	// it reports as successful do not count towards FailureThreshold.
	// Nil means every non-nil error counts.
	IsSuccessful func(err error) bool
}
