package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"truemeter-client/internal/application/check"
)

// SetFieldRequest carries the raw text typed into one form field
type SetFieldRequest struct {
	Value *string `json:"value" validate:"required"`
}

// SessionResponse represents a presentation session and what it shows
type SessionResponse struct {
	ID    uuid.UUID   `json:"id"`
	State check.State `json:"state"`
}

// HealthResponse represents the local health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
	Sessions  int    `json:"sessions"`
}

// ReadyResponse represents the readiness check, including whatever the
// scoring service reported about itself
type ReadyResponse struct {
	Status    string          `json:"status"`
	Version   string          `json:"version"`
	Timestamp string          `json:"timestamp"`
	Upstream  string          `json:"upstream"`
	Service   json.RawMessage `json:"service,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// NewTimestamp formats now the way every response in this API does
func NewTimestamp(now time.Time) string {
	return now.UTC().Format(time.RFC3339)
}
