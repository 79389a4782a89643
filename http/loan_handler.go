package http

import (
	"encoding/json"
	"net/http"

	"mortgage-sim/domain"
	"mortgage-sim/logging"
	"mortgage-sim/service"
)

type LoanHandler struct {
	service *service.LoanService
	logger  logging.Logger
}

func NewLoanHandler(service *service.LoanService, logger logging.Logger) *LoanHandler {
	return &LoanHandler{service: service, logger: logger.WithField("handler", "loan")}
}

func (h *LoanHandler) CalculateLoan(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var input domain.LoanInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.CalculateLoan(input)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, result)
}
