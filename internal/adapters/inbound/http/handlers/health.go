package handlers

import (
	"net/http"

	"github.com/architeacher/device-tracker/internal/usecases"
	"github.com/architeacher/device-tracker/internal/usecases/queries"
)

type HealthHandler struct {
	app *usecases.Application
}

func NewHealthHandler(app *usecases.Application) *HealthHandler {
	return &HealthHandler{app: app}
}

func (h *HealthHandler) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	result, err := h.app.Queries.FetchLiveness.Execute(r.Context(), queries.FetchLivenessQuery{})
	if err != nil {
		writeJSONResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "down"})

		return
	}

	writeJSONResponse(w, http.StatusOK, result)
}

func (h *HealthHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	result, err := h.app.Queries.FetchReadiness.Execute(r.Context(), queries.FetchReadinessQuery{})
	if err != nil || !result.Ready {
		status := "unavailable"
		if result != nil {
			status = result.Status
		}

		writeJSONResponse(w, http.StatusServiceUnavailable, map[string]string{"status": status})

		return
	}

	writeJSONResponse(w, http.StatusOK, result)
}
