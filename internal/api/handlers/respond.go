package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/isdelr/typetester-be/internal/services"
	"github.com/rs/zerolog/log"
)

// respondJSON writes v as the JSON response body.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondMessage writes the standard {"message": ...} error body.
func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

var errorStatuses = []struct {
	err    error
	status int
}{
	{services.ErrMissingFields, http.StatusBadRequest},
	{services.ErrUsernameLength, http.StatusBadRequest},
	{services.ErrUsernameCharset, http.StatusBadRequest},
	{services.ErrWeakPassword, http.StatusBadRequest},
	{services.ErrMissingCredentials, http.StatusBadRequest},
	{services.ErrMissingResultFields, http.StatusBadRequest},
	{services.ErrEmailTaken, http.StatusConflict},
	{services.ErrUsernameTaken, http.StatusConflict},
	{services.ErrInvalidCredentials, http.StatusUnauthorized},
	{services.ErrUserNotFound, http.StatusNotFound},
}

// respondServiceError maps a service error onto its HTTP status and
// client-visible message. Anything outside the known taxonomy is a storage or
// programming failure: it is logged with context for the operator and the
// client sees only a generic message.
func respondServiceError(w http.ResponseWriter, err error, logMsg string) {
	for _, m := range errorStatuses {
		if errors.Is(err, m.err) {
			respondMessage(w, m.status, m.err.Error())
			return
		}
	}
	log.Error().Err(err).Msg(logMsg)
	respondMessage(w, http.StatusInternalServerError, "Server error")
}
