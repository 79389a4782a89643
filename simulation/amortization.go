package simulation

import "math"

// LevelPayment returns the payment that extinguishes balance over the given
// number of periods at a constant periodic rate. A zero rate falls back to
// straight-line repayment.
func LevelPayment(balance, periodicRate float64, periods int) float64 {
	if periods <= 0 {
		return 0
	}
	if periodicRate > 0 {
		return balance * periodicRate / (1 - math.Pow(1+periodicRate, -float64(periods)))
	}
	return balance / float64(periods)
}

// amortize posts one payment against balance. The principal portion is capped
// at the outstanding balance but the full payment is counted as paid. A
// balance that is already zero posts nothing.
func amortize(balance, periodicRate, payment float64) (newBalance, paid float64) {
	if balance <= 0 {
		return 0, 0
	}

	interest := balance * periodicRate
	principal := math.Min(balance, payment-interest)
	balance -= principal
	if balance <= 0 {
		balance = 0
	}
	return balance, payment
}
