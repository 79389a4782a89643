package domain

// SimulationParameters is the immutable input bundle for one simulation run.
// InitialInterestRatePercent is expressed as a percentage (4.75 means 4.75%).
type SimulationParameters struct {
	InitialPropertyValue       float64 `json:"initial_property_value"`
	InitialLoanValue           float64 `json:"initial_loan_value"`
	InitialInterestRatePercent float64 `json:"initial_interest_rate_percent"`
	LoanTermYears              int     `json:"loan_term_years"`
	Correlation                float64 `json:"correlation"`
	HousePriceStdDev           float64 `json:"house_price_std_dev"`
	InterestRateStdDev         float64 `json:"interest_rate_std_dev"`
}

// SimulationResult holds one sample path. All series are index-aligned to
// elapsed months; index 0 holds the starting values.
type SimulationResult struct {
	HousePrices       []float64 `json:"house_prices"`
	TotalPaidIntoLoan []float64 `json:"total_paid_into_loan"`
	LoanBalances      []float64 `json:"loan_balances"`
}

type SimulationSummary struct {
	FinalHouseValue  float64 `json:"final_house_value"`
	FinalTotalPaid   float64 `json:"final_total_paid"`
	NetGain          float64 `json:"net_gain"`
	PayoffMonth      int     `json:"payoff_month"` // -1 si el préstamo no se liquida
	PeakHouseValue   float64 `json:"peak_house_value"`
	TroughHouseValue float64 `json:"trough_house_value"`
}

type SimulationRequest struct {
	SimulationParameters
	Seed *int64 `json:"seed,omitempty"`
}

type SimulationResponse struct {
	RunID              string            `json:"run_id"`
	Seed               int64             `json:"seed"`
	CorrelationClamped bool              `json:"correlation_clamped"`
	Cached             bool              `json:"cached"`
	Summary            SimulationSummary `json:"summary"`
	Result             SimulationResult  `json:"result"`
}
