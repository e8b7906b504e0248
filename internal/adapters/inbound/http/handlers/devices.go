package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/architeacher/device-tracker/internal/domain/model"
	"github.com/architeacher/device-tracker/internal/usecases"
	"github.com/architeacher/device-tracker/internal/usecases/commands"
	"github.com/architeacher/device-tracker/internal/usecases/queries"
	"github.com/go-chi/chi/v5"
)

const DeviceIDParam = "deviceId"

type (
	deviceRequest struct {
		Name  *string `json:"name"`
		Brand *string `json:"brand"`
		State *string `json:"state"`
	}

	devicePayload struct {
		ID           string    `json:"id"`
		Name         string    `json:"name"`
		Brand        string    `json:"brand"`
		State        string    `json:"state"`
		CreationTime time.Time `json:"creationTime"`
	}

	devicePagePayload struct {
		Content       []devicePayload `json:"content"`
		TotalElements uint            `json:"totalElements"`
		TotalPages    uint            `json:"totalPages"`
		Page          uint            `json:"page"`
		Size          uint            `json:"size"`
	}

	DeviceHandler struct {
		app *usecases.Application
	}
)

func NewDeviceHandler(app *usecases.Application) *DeviceHandler {
	return &DeviceHandler{app: app}
}

func (h *DeviceHandler) CreateDevice(w http.ResponseWriter, r *http.Request) {
	data, ok := decodeDeviceRequest(w, r)
	if !ok {
		return
	}

	result, err := h.app.Commands.CreateDevice.Handle(r.Context(), commands.CreateDeviceCommand{Data: data})
	if err != nil {
		writeDomainError(w, err)

		return
	}

	w.Header().Set("Location", fmt.Sprintf("/devices/%s", result.ID.String()))
	writeJSONResponse(w, http.StatusCreated, toDevicePayload(result))
}

func (h *DeviceHandler) GetDevice(w http.ResponseWriter, r *http.Request) {
	id, ok := parseDeviceID(w, r)
	if !ok {
		return
	}

	result, err := h.app.Queries.GetDevice.Execute(r.Context(), queries.GetDeviceQuery{ID: id})
	if err != nil {
		writeDomainError(w, err)

		return
	}

	writeJSONResponse(w, http.StatusOK, toDevicePayload(result))
}

func (h *DeviceHandler) ListDevices(w http.ResponseWriter, r *http.Request) {
	page := model.DefaultPageRequest()

	if raw := r.URL.Query().Get("page"); raw != "" {
		value, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("Invalid page parameter: %s", raw))

			return
		}
		page.Page = uint(value)
	}
	if raw := r.URL.Query().Get("size"); raw != "" {
		value, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("Invalid size parameter: %s", raw))

			return
		}
		page.Size = uint(value)
	}

	filter := model.DeviceData{}
	if name := r.URL.Query().Get("name"); name != "" {
		filter.Name = &name
	}
	if brand := r.URL.Query().Get("brand"); brand != "" {
		filter.Brand = &brand
	}
	if raw := r.URL.Query().Get("state"); raw != "" {
		state, ok := model.StateFromWire(raw)
		if !ok {
			writeErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("Unknown state: %s", raw))

			return
		}
		filter.State = &state
	}

	result, err := h.app.Queries.ListDevices.Execute(r.Context(), queries.ListDevicesQuery{
		Page:   page,
		Filter: filter,
	})
	if err != nil {
		writeDomainError(w, err)

		return
	}

	writeJSONResponse(w, http.StatusOK, toDevicePagePayload(result))
}

func (h *DeviceHandler) UpdateDevice(w http.ResponseWriter, r *http.Request) {
	id, ok := parseDeviceID(w, r)
	if !ok {
		return
	}

	data, ok := decodeDeviceRequest(w, r)
	if !ok {
		return
	}

	result, err := h.app.Commands.UpdateDevice.Handle(r.Context(), commands.UpdateDeviceCommand{
		ID:   id,
		Data: data,
	})
	if err != nil {
		writeDomainError(w, err)

		return
	}

	writeJSONResponse(w, http.StatusOK, toDevicePayload(result))
}

func (h *DeviceHandler) PatchDevice(w http.ResponseWriter, r *http.Request) {
	id, ok := parseDeviceID(w, r)
	if !ok {
		return
	}

	data, ok := decodeDeviceRequest(w, r)
	if !ok {
		return
	}

	result, err := h.app.Commands.PatchDevice.Handle(r.Context(), commands.PatchDeviceCommand{
		ID:   id,
		Data: data,
	})
	if err != nil {
		writeDomainError(w, err)

		return
	}

	writeJSONResponse(w, http.StatusOK, toDevicePayload(result))
}

func (h *DeviceHandler) DeleteDevice(w http.ResponseWriter, r *http.Request) {
	id, ok := parseDeviceID(w, r)
	if !ok {
		return
	}

	if _, err := h.app.Commands.DeleteDevice.Handle(r.Context(), commands.DeleteDeviceCommand{ID: id}); err != nil {
		writeDomainError(w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseDeviceID(w http.ResponseWriter, r *http.Request) (model.DeviceID, bool) {
	id, err := model.ParseDeviceID(chi.URLParam(r, DeviceIDParam))
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, msgInvalidDeviceID)

		return model.DeviceID{}, false
	}

	return id, true
}

func decodeDeviceRequest(w http.ResponseWriter, r *http.Request) (model.DeviceData, bool) {
	var req deviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, msgInvalidBody)

		return model.DeviceData{}, false
	}

	data := model.DeviceData{
		Name:  req.Name,
		Brand: req.Brand,
	}

	if req.State != nil {
		state, ok := model.StateFromWire(*req.State)
		if !ok {
			writeErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("Unknown state: %s", *req.State))

			return model.DeviceData{}, false
		}

		data.State = &state
	}

	return data, true
}

func toDevicePayload(data model.DeviceData) devicePayload {
	payload := devicePayload{}

	if data.ID != nil {
		payload.ID = data.ID.String()
	}
	if data.Name != nil {
		payload.Name = *data.Name
	}
	if data.Brand != nil {
		payload.Brand = *data.Brand
	}
	if data.State != nil {
		payload.State = data.State.String()
	}
	if data.CreatedAt != nil {
		payload.CreationTime = *data.CreatedAt
	}

	return payload
}

func toDevicePagePayload(page model.DataPage) devicePagePayload {
	content := make([]devicePayload, 0, len(page.Content))
	for _, data := range page.Content {
		content = append(content, toDevicePayload(data))
	}

	return devicePagePayload{
		Content:       content,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages,
		Page:          page.Page,
		Size:          page.Size,
	}
}
