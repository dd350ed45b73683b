package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/isdelr/typetester-be/internal/auth"
	"github.com/isdelr/typetester-be/internal/models"
	"github.com/isdelr/typetester-be/internal/services"
)

// ResultHandler handles HTTP requests for typing-test results.
type ResultHandler struct {
	service services.ResultServiceProvider
}

// NewResultHandler creates a new ResultHandler.
func NewResultHandler(service services.ResultServiceProvider) *ResultHandler {
	return &ResultHandler{service: service}
}

// Submit stores a finished test. Runs behind optional auth: anonymous
// submissions are stored unowned, a valid session attributes the result.
func (h *ResultHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var payload services.ResultPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var userID *int64
	if id, ok := auth.UserID(r.Context()); ok {
		userID = &id
	}

	result, err := h.service.Submit(r.Context(), userID, payload)
	if err != nil {
		respondServiceError(w, err, "Failed to save result")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]models.TestResult{"result": result})
}

// ListMine returns the authenticated user's results. Query params: limit
// (default 50, capped at 100) and sort ("wpm" or anything else for newest
// first).
func (h *ResultHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "No token provided")
		return
	}

	// A non-numeric or missing limit falls back to the default downstream.
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	sort := r.URL.Query().Get("sort")

	results, err := h.service.ListByUser(r.Context(), userID, limit, sort)
	if err != nil {
		respondServiceError(w, err, "Failed to list results")
		return
	}

	respondJSON(w, http.StatusOK, map[string][]models.TestResult{"results": results})
}

// Stats returns the aggregate summary of the authenticated user's results.
func (h *ResultHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "No token provided")
		return
	}

	summary, err := h.service.Stats(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err, "Failed to compute stats")
		return
	}

	respondJSON(w, http.StatusOK, summary)
}
