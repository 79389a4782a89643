package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"mortgage-sim/domain"
	"mortgage-sim/logging"
	"mortgage-sim/service"
)

type SimulationHandler struct {
	service *service.SimulationService
	logger  logging.Logger
}

func NewSimulationHandler(service *service.SimulationService, logger logging.Logger) *SimulationHandler {
	return &SimulationHandler{service: service, logger: logger.WithField("handler", "simulation")}
}

// RunSimulation runs one sample path and returns both series plus a summary.
func (h *SimulationHandler) RunSimulation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Validar Content-Type
	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return
	}

	var req domain.SimulationRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		h.logger.Debug("error decoding request body", "error", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Run(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, resp)
}
