package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"truemeter-client/internal/application/dto"
	"truemeter-client/internal/domain/fraud"
)

// HealthChecker reports the health of the scoring service
type HealthChecker interface {
	CheckHealth(ctx context.Context) (json.RawMessage, error)
}

// SessionCounter reports how many sessions are live
type SessionCounter interface {
	Len() int
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	scoring  HealthChecker
	sessions SessionCounter
	upstream string
	version  string
	now      func() time.Time
}

// NewHealthHandler creates a new health handler. upstream is the scoring
// service base URL, reported as-is.
func NewHealthHandler(scoring HealthChecker, sessions SessionCounter, upstream, version string) *HealthHandler {
	return &HealthHandler{
		scoring:  scoring,
		sessions: sessions,
		upstream: upstream,
		version:  version,
		now:      time.Now,
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response := dto.HealthResponse{
		Status:    "healthy",
		Version:   h.version,
		Timestamp: dto.NewTimestamp(h.now()),
	}
	if h.sessions != nil {
		response.Sessions = h.sessions.Len()
	}

	writeJSON(w, http.StatusOK, response)
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	response := dto.ReadyResponse{
		Version:   h.version,
		Timestamp: dto.NewTimestamp(h.now()),
		Upstream:  h.upstream,
	}

	body, err := h.scoring.CheckHealth(ctx)
	if err != nil {
		response.Status = "not ready"
		response.Error = err.Error()

		var failure *fraud.Failure
		if errors.As(err, &failure) {
			response.Error = failure.Message()
		}
		writeJSON(w, http.StatusServiceUnavailable, response)
		return
	}

	response.Status = "ready"
	response.Service = body
	writeJSON(w, http.StatusOK, response)
}

// Live handles GET /live
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}
