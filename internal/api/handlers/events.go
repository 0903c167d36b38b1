package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/NihalNavath/Campus-Navigator/internal/api/problem"
	"github.com/NihalNavath/Campus-Navigator/internal/domain/events"
)

type EventsHandler struct {
	Service *events.Service
	Env     string
}

func NewEventsHandler(service *events.Service, env string) *EventsHandler {
	return &EventsHandler{Service: service, Env: env}
}

// List handles GET /api/events. Public, always a JSON array.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Service.List(r.Context()))
}

// Create handles POST /api/events.
func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	data, ok := h.decodeEvent(w, r)
	if !ok {
		return
	}

	if msgs := events.Validate(data); len(msgs) > 0 {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidationError, "Validation failed", nil, h.Env,
			problem.WithErrors(msgs))
		return
	}

	created, err := h.Service.Create(r.Context(), data)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Failed to create event", err, h.Env)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// Update handles PUT /api/events/{id}. The payload is shallow-merged over the
// stored record; id and createdAt survive whatever the caller sends.
func (h *EventsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	data, ok := h.decodeEvent(w, r)
	if !ok {
		return
	}

	if msgs := events.Validate(data); len(msgs) > 0 {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidationError, "Validation failed", nil, h.Env,
			problem.WithErrors(msgs))
		return
	}

	updated, err := h.Service.Update(r.Context(), id, data)
	if errors.Is(err, events.ErrNotFound) {
		problem.Write(w, r, http.StatusNotFound, problem.TypeNotFound, "Event not found", err, h.Env)
		return
	}
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Failed to update event", err, h.Env)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/events/{id}.
func (h *EventsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	err := h.Service.Delete(r.Context(), id)
	if errors.Is(err, events.ErrNotFound) {
		problem.Write(w, r, http.StatusNotFound, problem.TypeNotFound, "Event not found", err, h.Env)
		return
	}
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Failed to delete event", err, h.Env)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// decodeEvent reads the payload. A body that fails to parse is an unexpected
// failure (500); 400 is reserved for validation messages.
func (h *EventsHandler) decodeEvent(w http.ResponseWriter, r *http.Request) (events.Event, bool) {
	var data events.Event
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Failed to read request body", err, h.Env)
		return nil, false
	}
	return data, true
}
