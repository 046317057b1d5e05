package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// writeJSON serializes v as the response body with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response body")
	}
}

// writeDetail writes an error body in the {"detail": ...} wire shape used
// by every failure path. detail is either a string or a list of field
// errors for validation failures.
func writeDetail(w http.ResponseWriter, status int, detail any) {
	writeJSON(w, status, map[string]any{"detail": detail})
}

// writeInternalError logs the cause and hides it behind a generic body.
func writeInternalError(w http.ResponseWriter, err error, msg string) {
	log.Error().Err(err).Msg(msg)
	writeDetail(w, http.StatusInternalServerError, "Internal server error")
}
