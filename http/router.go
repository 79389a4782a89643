package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the API routes. Business routes are rate limited per
// client; health and metrics are not.
func NewRouter(
	loanHandler *LoanHandler,
	simulationHandler *SimulationHandler,
	limiter *RateLimiter,
) http.Handler {
	mux := http.NewServeMux()

	mux.Handle(
		"/simulation/run",
		MetricsMiddleware("/simulation/run",
			RateLimitMiddleware(
				limiter,
				http.HandlerFunc(simulationHandler.RunSimulation),
			),
		),
	)

	mux.Handle(
		"/loan/calculate",
		MetricsMiddleware("/loan/calculate",
			RateLimitMiddleware(
				limiter,
				http.HandlerFunc(loanHandler.CalculateLoan),
			),
		),
	)

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	return mux
}
