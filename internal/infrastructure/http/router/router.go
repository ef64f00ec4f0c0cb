package router

import (
	"net/http"

	"truemeter-client/internal/interfaces/http/handler"
)

// Router holds all HTTP handlers
type Router struct {
	mux            *http.ServeMux
	sessionHandler *handler.SessionHandler
	healthHandler  *handler.HealthHandler
}

// NewRouter creates a new router with all routes configured.
// A nil metrics handler leaves the metrics path unrouted.
func NewRouter(
	sessionHandler *handler.SessionHandler,
	healthHandler *handler.HealthHandler,
	metricsPath string,
	metricsHandler http.Handler,
) *Router {
	r := &Router{
		mux:            http.NewServeMux(),
		sessionHandler: sessionHandler,
		healthHandler:  healthHandler,
	}
	r.setupRoutes()

	if metricsHandler != nil && metricsPath != "" {
		r.mux.Handle("GET "+metricsPath, metricsHandler)
	}
	return r
}

func (r *Router) setupRoutes() {
	// Health endpoints
	r.mux.HandleFunc("GET /health", r.healthHandler.Health)
	r.mux.HandleFunc("GET /ready", r.healthHandler.Ready)
	r.mux.HandleFunc("GET /live", r.healthHandler.Live)

	// Sessions
	r.mux.HandleFunc("POST /api/v1/sessions", r.sessionHandler.Create)
	r.mux.HandleFunc("GET /api/v1/sessions/{id}", r.sessionHandler.Get)
	r.mux.HandleFunc("DELETE /api/v1/sessions/{id}", r.sessionHandler.Delete)

	// Form and check flow
	r.mux.HandleFunc("PUT /api/v1/sessions/{id}/fields/{field}", r.sessionHandler.SetField)
	r.mux.HandleFunc("POST /api/v1/sessions/{id}/submit", r.sessionHandler.Submit)
	r.mux.HandleFunc("POST /api/v1/sessions/{id}/reset", r.sessionHandler.Reset)
}

// ServeHTTP implements http.Handler
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	// CORS for the mobile shell
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")

	if req.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	r.mux.ServeHTTP(w, req)
}

// Handler returns the http.Handler
func (r *Router) Handler() http.Handler {
	return r
}
