package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"mortgage-sim/logging"
	"mortgage-sim/service"
)

// writeJSON codifica en buffer primero para no escribir el header si falla.
func writeJSON(w http.ResponseWriter, logger logging.Logger, v interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		logger.Error("error encoding response", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := buf.WriteTo(w); err != nil {
		logger.Error("error writing response", "error", err)
	}
}

func writeServiceError(w http.ResponseWriter, logger logging.Logger, err error) {
	if errors.Is(err, service.ErrInvalidInput) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	logger.Error("request failed", "error", err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
