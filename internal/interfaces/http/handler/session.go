package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"truemeter-client/internal/application/check"
	"truemeter-client/internal/application/dto"
	"truemeter-client/internal/domain/vehicle"
)

// SessionHandler exposes check sessions to the presentation shell
type SessionHandler struct {
	sessions *check.Sessions
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *check.Sessions) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Create handles POST /api/v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, o := h.sessions.Create()
	writeJSON(w, http.StatusCreated, dto.SessionResponse{ID: id, State: o.State()})
}

// Get handles GET /api/v1/sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, o, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, dto.SessionResponse{ID: id, State: o.State()})
}

// SetField handles PUT /api/v1/sessions/{id}/fields/{field}
func (h *SessionHandler) SetField(w http.ResponseWriter, r *http.Request) {
	id, o, ok := h.lookup(w, r)
	if !ok {
		return
	}

	field, err := vehicle.ParseField(r.PathValue("field"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req dto.SetFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Field value is required")
		return
	}

	if err := o.Update(field, *req.Value); err != nil {
		switch {
		case errors.Is(err, check.ErrResultsShown):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, vehicle.ErrUnknownField):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "Failed to update field: "+err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.SessionResponse{ID: id, State: o.State()})
}

// Submit handles POST /api/v1/sessions/{id}/submit
func (h *SessionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	id, o, ok := h.lookup(w, r)
	if !ok {
		return
	}

	// the scoring call outlives a dropped caller; the session keeps the result
	outcome, err := o.Submit(context.WithoutCancel(r.Context()))
	if err != nil {
		switch {
		case errors.Is(err, check.ErrBusy), errors.Is(err, check.ErrResultsShown):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, check.ErrNotSubmittable):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "Fraud check failed: "+err.Error())
		}
		return
	}

	status := http.StatusOK
	if !outcome.OK() {
		status = http.StatusBadGateway
	}
	writeJSON(w, status, dto.SessionResponse{ID: id, State: o.State()})
}

// Reset handles POST /api/v1/sessions/{id}/reset
func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	id, o, ok := h.lookup(w, r)
	if !ok {
		return
	}

	if err := o.Reset(); err != nil {
		if errors.Is(err, check.ErrNoResults) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to reset: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SessionResponse{ID: id, State: o.State()})
}

// Delete handles DELETE /api/v1/sessions/{id}
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseSessionID(w, r)
	if !ok {
		return
	}

	if err := h.sessions.Delete(id); err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) lookup(w http.ResponseWriter, r *http.Request) (uuid.UUID, *check.Orchestrator, bool) {
	id, ok := parseSessionID(w, r)
	if !ok {
		return uuid.Nil, nil, false
	}

	o, err := h.sessions.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return uuid.Nil, nil, false
	}
	return id, o, true
}

func parseSessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr := r.PathValue("id")
	if idStr == "" {
		writeError(w, http.StatusBadRequest, "Session ID is required")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid session ID")
		return uuid.Nil, false
	}
	return id, true
}
