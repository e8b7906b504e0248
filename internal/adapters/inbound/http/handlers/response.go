package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/architeacher/device-tracker/internal/domain/model"
	"github.com/architeacher/device-tracker/pkg/circuitbreaker"
)

const (
	contentTypeHeader = "Content-Type"
	applicationJSON   = "application/json"

	msgNotFound          = "Not Found"
	msgInternalError     = "Internal Server Error"
	msgUnavailable       = "Service Unavailable"
	msgInvalidDeviceID   = "Invalid device id"
	msgInvalidBody       = "Invalid request body"
	msgCannotUpdateInUse = "Name or brand cannot be changed while device is in use"
	msgCannotDeleteInUse = "In use device cannot be removed"
)

type errorBody struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Errors    []string  `json:"errors"`
}

func writeJSONResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set(contentTypeHeader, applicationJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeErrorResponse(w http.ResponseWriter, status int, messages ...string) {
	writeJSONResponse(w, status, errorBody{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Errors:    messages,
	})
}

// writeDomainError maps domain and infrastructure failures onto wire
// responses. Unrecognized errors surface as a plain 500 without leaking
// their message.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrDeviceNotFound):
		writeErrorResponse(w, http.StatusNotFound, msgNotFound)
	case errors.Is(err, model.ErrCannotUpdateInUseDevice):
		writeErrorResponse(w, http.StatusBadRequest, msgCannotUpdateInUse)
	case errors.Is(err, model.ErrCannotDeleteInUseDevice):
		writeErrorResponse(w, http.StatusBadRequest, msgCannotDeleteInUse)
	case errors.Is(err, circuitbreaker.ErrCircuitOpen),
		errors.Is(err, circuitbreaker.ErrTooManyRequests):
		writeErrorResponse(w, http.StatusServiceUnavailable, msgUnavailable)
	default:
		writeErrorResponse(w, http.StatusInternalServerError, msgInternalError)
	}
}
