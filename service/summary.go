package service

import "mortgage-sim/domain"

// Summarize derives the headline figures of a run. Net gain is the final
// house value minus everything paid into the loan.
func Summarize(result domain.SimulationResult) domain.SimulationSummary {
	if len(result.HousePrices) == 0 {
		return domain.SimulationSummary{PayoffMonth: -1}
	}

	last := len(result.HousePrices) - 1
	finalHouse := result.HousePrices[last]
	finalPaid := result.TotalPaidIntoLoan[last]

	peak, trough := result.HousePrices[0], result.HousePrices[0]
	for _, p := range result.HousePrices[1:] {
		if p > peak {
			peak = p
		}
		if p < trough {
			trough = p
		}
	}

	payoff := -1
	for i, balance := range result.LoanBalances {
		if balance <= DebtBalanceTolerance {
			payoff = i
			break
		}
	}

	return domain.SimulationSummary{
		FinalHouseValue:  roundTo2Decimals(finalHouse),
		FinalTotalPaid:   roundTo2Decimals(finalPaid),
		NetGain:          roundTo2Decimals(finalHouse - finalPaid),
		PayoffMonth:      payoff,
		PeakHouseValue:   roundTo2Decimals(peak),
		TroughHouseValue: roundTo2Decimals(trough),
	}
}
