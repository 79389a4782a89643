// Package simulation projects a property's value and the balance of the loan
// secured against it along one random monthly path.
//
// Each month draws a pair of correlated shocks. The house price compounds by
// the price shock, the annual rate moves by the rate shock and is held inside
// [MinAnnualRate, MaxAnnualRate], and the loan is re-amortized over the
// remaining term at the new rate.
//
// Both independent normal draws are scaled by their volatility before they
// are mixed, and each shock is scaled by its volatility a second time when it
// is applied to the price or the rate.
package simulation

import (
	"math"

	"mortgage-sim/domain"
)

const (
	MonthsPerYear = 12

	MinAnnualRate = 0.01
	MaxAnnualRate = 0.20
)

type Engine struct {
	src UniformSource
}

func NewEngine(src UniformSource) *Engine {
	return &Engine{src: src}
}

// ClampCorrelation maps rho into [-1, 1]. NaN is treated as uncorrelated.
func ClampCorrelation(rho float64) float64 {
	if math.IsNaN(rho) {
		return 0
	}
	return math.Max(-1, math.Min(1, rho))
}

// ClampRate holds an annual rate fraction inside [MinAnnualRate, MaxAnnualRate].
func ClampRate(rate float64) float64 {
	return math.Max(MinAnnualRate, math.Min(MaxAnnualRate, rate))
}

// standardNormal draws one N(0,1) sample with the Box-Muller transform.
func (e *Engine) standardNormal() float64 {
	u := 1 - e.src.Float64()
	v := e.src.Float64()
	if u <= 0 {
		u = math.SmallestNonzeroFloat64
	}
	return math.Sqrt(-2*math.Log(u)) * math.Cos(2*math.Pi*v)
}

// GenerateCorrelatedShock returns the house price shock and a rate shock
// correlated with it by rho. rho outside [-1, 1] is clamped first.
func (e *Engine) GenerateCorrelatedShock(rho, housePriceStdDev, interestRateStdDev float64) (float64, float64) {
	z1 := e.standardNormal() * housePriceStdDev
	z2 := e.standardNormal() * interestRateStdDev

	rho = ClampCorrelation(rho)
	return z1, rho*z1 + math.Sqrt(1-rho*rho)*z2
}

// Run advances one path for LoanTermYears*12 months. The parameters are
// copied on entry; the engine keeps no state between runs besides the
// position of its source.
func (e *Engine) Run(params domain.SimulationParameters) domain.SimulationResult {
	steps := params.LoanTermYears * MonthsPerYear
	if steps < 0 {
		steps = 0
	}

	housePrice := params.InitialPropertyValue
	loanAmount := params.InitialLoanValue
	interestRate := params.InitialInterestRatePercent / 100
	totalPaid := 0.0

	result := domain.SimulationResult{
		HousePrices:       make([]float64, 0, steps+1),
		TotalPaidIntoLoan: make([]float64, 0, steps+1),
		LoanBalances:      make([]float64, 0, steps+1),
	}
	result.HousePrices = append(result.HousePrices, housePrice)
	result.TotalPaidIntoLoan = append(result.TotalPaidIntoLoan, totalPaid)
	result.LoanBalances = append(result.LoanBalances, loanAmount)

	for t := 0; t < steps; t++ {
		houseShock, rateShock := e.GenerateCorrelatedShock(
			params.Correlation, params.HousePriceStdDev, params.InterestRateStdDev)

		annualReturn := params.HousePriceStdDev * houseShock
		housePrice += housePrice * (annualReturn / MonthsPerYear)

		interestRate = ClampRate(math.Max(0, interestRate+params.InterestRateStdDev*rateShock))

		monthlyRate := interestRate / MonthsPerYear
		payment := LevelPayment(loanAmount, monthlyRate, steps-t)

		var paid float64
		loanAmount, paid = amortize(loanAmount, monthlyRate, payment)
		totalPaid += paid

		result.HousePrices = append(result.HousePrices, housePrice)
		result.TotalPaidIntoLoan = append(result.TotalPaidIntoLoan, totalPaid)
		result.LoanBalances = append(result.LoanBalances, loanAmount)
	}

	return result
}
