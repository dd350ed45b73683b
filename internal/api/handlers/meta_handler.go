package handlers

import (
	"net/http"
	"time"
)

// MetaHandler serves the service index and health check.
type MetaHandler struct{}

// NewMetaHandler creates a new MetaHandler.
func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

// Index describes the API for anyone poking at the root URL.
func (h *MetaHandler) Index(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "TypeTester API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"health":  "/api/health",
			"auth":    "/api/auth",
			"results": "/api/results",
		},
	})
}

// Health reports liveness.
func (h *MetaHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
