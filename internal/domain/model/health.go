package model

const (
	HealthStatusOK   = "ok"
	HealthStatusDown = "down"
)

// HealthReport is the outcome of a liveness or readiness probe.
type HealthReport struct {
	Status string
}
