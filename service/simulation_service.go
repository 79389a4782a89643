package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"mortgage-sim/domain"
	"mortgage-sim/logging"
	"mortgage-sim/metrics"
	"mortgage-sim/repository"
	"mortgage-sim/simulation"
)

type SimulationService struct {
	cache     repository.CacheRepository
	cacheTTL  time.Duration
	logger    logging.Logger
	newSource func(seed int64) simulation.UniformSource
	newSeed   func() (int64, error)
}

// NewSimulationService creates a SimulationService. Seeded runs are memoized
// in cache for cacheTTL.
func NewSimulationService(
	cache repository.CacheRepository,
	cacheTTL time.Duration,
	logger logging.Logger,
) *SimulationService {
	return &SimulationService{
		cache:     cache,
		cacheTTL:  cacheTTL,
		logger:    logger.WithField("component", "simulation_service"),
		newSource: simulation.NewSeededSource,
		newSeed:   simulation.NewSeed,
	}
}

// Run validates the request, clamps the correlation into [-1, 1] and runs
// one sample path. Requests without a seed get a fresh one, which is echoed
// back so the path can be replayed.
func (s *SimulationService) Run(
	ctx context.Context,
	req domain.SimulationRequest,
) (domain.SimulationResponse, error) {

	params := req.SimulationParameters
	if err := validateParameters(params); err != nil {
		metrics.SimulationRunsTotal.WithLabelValues("invalid").Inc()
		return domain.SimulationResponse{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.SimulationResponse{}, err
	}

	runID := uuid.NewString()
	logger := s.logger.WithField("run_id", runID)

	if params.InitialLoanValue > params.InitialPropertyValue {
		logger.Warn("loan exceeds property value",
			"loan", params.InitialLoanValue, "property", params.InitialPropertyValue)
	}

	clamped := simulation.ClampCorrelation(params.Correlation)
	correlationClamped := clamped != params.Correlation
	params.Correlation = clamped

	var (
		seed int64
		key  string
	)
	if req.Seed != nil {
		seed = *req.Seed
		key = cacheKey(params, seed)
		if resp, ok := s.lookup(ctx, key, logger); ok {
			resp.RunID = runID
			resp.Cached = true
			resp.CorrelationClamped = correlationClamped
			metrics.SimulationCacheHitsTotal.Inc()
			metrics.SimulationRunsTotal.WithLabelValues("cached").Inc()
			logger.Debug("served simulation from cache", "seed", seed)
			return resp, nil
		}
	} else {
		var err error
		seed, err = s.newSeed()
		if err != nil {
			metrics.SimulationRunsTotal.WithLabelValues("error").Inc()
			return domain.SimulationResponse{}, fmt.Errorf("generar semilla: %w", err)
		}
	}

	start := time.Now()
	result := simulation.NewEngine(s.newSource(seed)).Run(params)
	metrics.SimulationDuration.Observe(time.Since(start).Seconds())

	if !finiteResult(result) {
		metrics.SimulationRunsTotal.WithLabelValues("invalid").Inc()
		logger.Warn("simulation produced non-numeric values", "seed", seed)
		return domain.SimulationResponse{}, fmt.Errorf("%w: los parámetros producen valores no numéricos", ErrInvalidInput)
	}

	resp := domain.SimulationResponse{
		RunID:              runID,
		Seed:               seed,
		CorrelationClamped: correlationClamped,
		Summary:            Summarize(result),
		Result:             result,
	}

	if key != "" {
		s.store(ctx, key, resp, logger)
	}

	metrics.SimulationRunsTotal.WithLabelValues("ok").Inc()
	logger.Info("simulation finished",
		"seed", seed,
		"months", len(result.HousePrices)-1,
		"final_house_value", resp.Summary.FinalHouseValue,
		"final_total_paid", resp.Summary.FinalTotalPaid,
		"net_gain", resp.Summary.NetGain,
	)
	return resp, nil
}

func (s *SimulationService) lookup(
	ctx context.Context,
	key string,
	logger logging.Logger,
) (domain.SimulationResponse, bool) {
	raw, ok := s.cache.Get(ctx, key)
	if !ok {
		return domain.SimulationResponse{}, false
	}

	var resp domain.SimulationResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		logger.Warn("discarding unreadable cache entry", "key", key, "error", err)
		return domain.SimulationResponse{}, false
	}
	return resp, true
}

// store es no crítico: un fallo solo se registra.
func (s *SimulationService) store(
	ctx context.Context,
	key string,
	resp domain.SimulationResponse,
	logger logging.Logger,
) {
	raw, err := json.Marshal(resp)
	if err != nil {
		logger.Warn("failed to encode simulation for cache", "error", err)
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), s.cacheTTL); err != nil {
		logger.Warn("failed to cache simulation", "key", key, "error", err)
	}
}

func cacheKey(p domain.SimulationParameters, seed int64) string {
	raw := fmt.Sprintf("%v|%v|%v|%d|%v|%v|%v|%d",
		p.InitialPropertyValue,
		p.InitialLoanValue,
		p.InitialInterestRatePercent,
		p.LoanTermYears,
		p.Correlation,
		p.HousePriceStdDev,
		p.InterestRateStdDev,
		seed,
	)
	return fmt.Sprintf("%s%016x", cacheKeyPrefix, xxhash.Sum64String(raw))
}

func validateParameters(p domain.SimulationParameters) error {
	if !finite(p.InitialPropertyValue) || p.InitialPropertyValue <= 0 {
		return fmt.Errorf("%w: valor de la propiedad inválido", ErrInvalidInput)
	}
	if p.InitialPropertyValue > MaxPropertyValue {
		return fmt.Errorf("%w: valor de la propiedad excede el máximo permitido de $%.2f", ErrInvalidInput, MaxPropertyValue)
	}
	if !finite(p.InitialLoanValue) || p.InitialLoanValue < 0 {
		return fmt.Errorf("%w: monto del préstamo inválido", ErrInvalidInput)
	}
	if p.InitialLoanValue > MaxLoanAmount {
		return fmt.Errorf("%w: monto excede el máximo permitido de $%.2f", ErrInvalidInput, MaxLoanAmount)
	}
	if !finite(p.InitialInterestRatePercent) || p.InitialInterestRatePercent < 0 {
		return fmt.Errorf("%w: tasa inválida", ErrInvalidInput)
	}
	if p.InitialInterestRatePercent > MaxInterestRate {
		return fmt.Errorf("%w: tasa de interés excede el máximo permitido de %.2f%%", ErrInvalidInput, MaxInterestRate)
	}
	if p.LoanTermYears < 0 || p.LoanTermYears > MaxTermYears {
		return fmt.Errorf("%w: plazo debe estar entre 0 y %d años", ErrInvalidInput, MaxTermYears)
	}
	if math.IsNaN(p.Correlation) {
		return fmt.Errorf("%w: correlación inválida", ErrInvalidInput)
	}
	if !finite(p.HousePriceStdDev) || p.HousePriceStdDev < 0 {
		return fmt.Errorf("%w: volatilidad del precio inválida", ErrInvalidInput)
	}
	if p.HousePriceStdDev > MaxHousePriceStdDev {
		return fmt.Errorf("%w: volatilidad del precio excede el máximo permitido de %.2f", ErrInvalidInput, MaxHousePriceStdDev)
	}
	if !finite(p.InterestRateStdDev) || p.InterestRateStdDev < 0 {
		return fmt.Errorf("%w: volatilidad de la tasa inválida", ErrInvalidInput)
	}
	if p.InterestRateStdDev > MaxInterestRateStdDev {
		return fmt.Errorf("%w: volatilidad de la tasa excede el máximo permitido de %.2f", ErrInvalidInput, MaxInterestRateStdDev)
	}
	return nil
}

func finiteResult(r domain.SimulationResult) bool {
	for _, series := range [][]float64{r.HousePrices, r.TotalPaidIntoLoan, r.LoanBalances} {
		for _, v := range series {
			if !finite(v) {
				return false
			}
		}
	}
	return true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
