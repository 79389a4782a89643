package simulation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mortgage-sim/domain"
)

// cycleSource replays a fixed list of uniform samples.
type cycleSource struct {
	values []float64
	next   int
}

func (c *cycleSource) Float64() float64 {
	v := c.values[c.next%len(c.values)]
	c.next++
	return v
}

func baseParams() domain.SimulationParameters {
	return domain.SimulationParameters{
		InitialPropertyValue:       300000,
		InitialLoanValue:           240000,
		InitialInterestRatePercent: 4.75,
		LoanTermYears:              30,
		Correlation:                0.3,
		HousePriceStdDev:           0.1,
		InterestRateStdDev:         0.01,
	}
}

func TestRun_SeriesLengthAndSeeds(t *testing.T) {
	for _, years := range []int{1, 5, 30} {
		params := baseParams()
		params.LoanTermYears = years

		result := NewEngine(NewSeededSource(7)).Run(params)

		want := years*MonthsPerYear + 1
		assert.Len(t, result.HousePrices, want)
		assert.Len(t, result.TotalPaidIntoLoan, want)
		assert.Len(t, result.LoanBalances, want)
		assert.Equal(t, params.InitialPropertyValue, result.HousePrices[0])
		assert.Equal(t, 0.0, result.TotalPaidIntoLoan[0])
		assert.Equal(t, params.InitialLoanValue, result.LoanBalances[0])
	}
}

func TestRun_TotalPaidNonDecreasing(t *testing.T) {
	params := baseParams()
	params.HousePriceStdDev = 0.4
	params.InterestRateStdDev = 0.05
	params.Correlation = -0.8

	result := NewEngine(NewSeededSource(99)).Run(params)

	for i := 1; i < len(result.TotalPaidIntoLoan); i++ {
		require.GreaterOrEqual(t, result.TotalPaidIntoLoan[i], result.TotalPaidIntoLoan[i-1], "month %d", i)
		require.GreaterOrEqual(t, result.LoanBalances[i], 0.0, "month %d", i)
	}
}

func TestRun_ZeroVolatilityMatchesClosedForm(t *testing.T) {
	params := domain.SimulationParameters{
		InitialPropertyValue:       250000,
		InitialLoanValue:           100000,
		InitialInterestRatePercent: 6,
		LoanTermYears:              1,
		Correlation:                0.5,
	}

	result := NewEngine(NewSeededSource(1)).Run(params)

	for i, price := range result.HousePrices {
		assert.Equal(t, params.InitialPropertyValue, price, "month %d", i)
	}

	r := 0.06 / 12
	payment := 100000 * r / (1 - math.Pow(1+r, -12))
	assert.InDelta(t, 12*payment, result.TotalPaidIntoLoan[12], 1e-6)
	assert.InDelta(t, 103279.72, result.TotalPaidIntoLoan[12], 0.01)
	assert.InDelta(t, 0, result.LoanBalances[12], 1e-6)

	for i := 1; i <= 12; i++ {
		assert.InDelta(t, payment, result.TotalPaidIntoLoan[i]-result.TotalPaidIntoLoan[i-1], 1e-6)
	}
}

func TestRun_ZeroTerm(t *testing.T) {
	params := baseParams()
	params.LoanTermYears = 0

	result := NewEngine(NewSeededSource(3)).Run(params)

	assert.Equal(t, []float64{params.InitialPropertyValue}, result.HousePrices)
	assert.Equal(t, []float64{0}, result.TotalPaidIntoLoan)
	assert.Equal(t, []float64{params.InitialLoanValue}, result.LoanBalances)
}

func TestRun_NegativeTermTreatedAsZero(t *testing.T) {
	params := baseParams()
	params.LoanTermYears = -2

	result := NewEngine(NewSeededSource(3)).Run(params)

	assert.Len(t, result.HousePrices, 1)
	assert.Len(t, result.TotalPaidIntoLoan, 1)
}

func TestRun_NoLoanPostsNoPayments(t *testing.T) {
	params := baseParams()
	params.InitialLoanValue = 0

	result := NewEngine(NewSeededSource(11)).Run(params)

	for i, paid := range result.TotalPaidIntoLoan {
		assert.Equal(t, 0.0, paid, "month %d", i)
	}
	for i, balance := range result.LoanBalances {
		assert.Equal(t, 0.0, balance, "month %d", i)
	}
}

func TestRun_Deterministic(t *testing.T) {
	params := baseParams()

	first := NewEngine(&cycleSource{values: []float64{0.12, 0.87, 0.45, 0.33, 0.71}}).Run(params)
	second := NewEngine(&cycleSource{values: []float64{0.12, 0.87, 0.45, 0.33, 0.71}}).Run(params)
	assert.Equal(t, first, second)

	seededA := NewEngine(NewSeededSource(2024)).Run(params)
	seededB := NewEngine(NewSeededSource(2024)).Run(params)
	assert.Equal(t, seededA, seededB)
}

func TestRun_RateClampedAtCeiling(t *testing.T) {
	params := domain.SimulationParameters{
		InitialPropertyValue:       200000,
		InitialLoanValue:           100000,
		InitialInterestRatePercent: 5,
		LoanTermYears:              1,
		InterestRateStdDev:         1,
	}
	// u = 1e-6, v = 0 gives a large positive normal draw every time.
	src := &cycleSource{values: []float64{1 - 1e-6, 0}}

	result := NewEngine(src).Run(params)

	want := LevelPayment(100000, MaxAnnualRate/12, 12)
	assert.InDelta(t, want, result.TotalPaidIntoLoan[1], 1e-9)
}

func TestRun_RateClampedAtFloor(t *testing.T) {
	params := domain.SimulationParameters{
		InitialPropertyValue:       200000,
		InitialLoanValue:           100000,
		InitialInterestRatePercent: 5,
		LoanTermYears:              1,
		InterestRateStdDev:         1,
	}
	// v = 0.5 turns the same draw negative.
	src := &cycleSource{values: []float64{1 - 1e-6, 0.5}}

	result := NewEngine(src).Run(params)

	want := LevelPayment(100000, MinAnnualRate/12, 12)
	assert.InDelta(t, want, result.TotalPaidIntoLoan[1], 1e-9)
}

func TestRun_HousePriceCompounds(t *testing.T) {
	params := domain.SimulationParameters{
		InitialPropertyValue: 100000,
		LoanTermYears:        1,
		HousePriceStdDev:     0.5,
	}
	src := &cycleSource{values: []float64{0.3, 0}}
	n := math.Sqrt(-2 * math.Log(0.7))

	result := NewEngine(src).Run(params)

	monthly := 0.5 * (n * 0.5) / 12
	assert.InDelta(t, 100000*(1+monthly), result.HousePrices[1], 1e-6)
	assert.InDelta(t, 100000*math.Pow(1+monthly, 12), result.HousePrices[12], 1e-6)
}

func TestGenerateCorrelatedShock(t *testing.T) {
	n := math.Sqrt(-2 * math.Log(0.7))

	tests := []struct {
		name   string
		rho    float64
		wantHP float64
		wantIR float64
	}{
		{name: "independent", rho: 0, wantHP: 0.1 * n, wantIR: 0.2 * n},
		{name: "partial", rho: 0.6, wantHP: 0.1 * n, wantIR: 0.6*0.1*n + 0.8*0.2*n},
		{name: "perfect", rho: 1, wantHP: 0.1 * n, wantIR: 0.1 * n},
		{name: "above range clamps", rho: 3, wantHP: 0.1 * n, wantIR: 0.1 * n},
		{name: "below range clamps", rho: -7, wantHP: 0.1 * n, wantIR: -0.1 * n},
		{name: "nan is uncorrelated", rho: math.NaN(), wantHP: 0.1 * n, wantIR: 0.2 * n},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(&cycleSource{values: []float64{0.3, 0}})

			hp, ir := e.GenerateCorrelatedShock(tt.rho, 0.1, 0.2)

			assert.InDelta(t, tt.wantHP, hp, 1e-12)
			assert.InDelta(t, tt.wantIR, ir, 1e-12)
		})
	}
}

func TestStandardNormal_ZeroUniformStaysFinite(t *testing.T) {
	e := NewEngine(&cycleSource{values: []float64{1, 0}})

	z := e.standardNormal()

	assert.False(t, math.IsInf(z, 0))
	assert.False(t, math.IsNaN(z))
}

func TestClampRate(t *testing.T) {
	assert.Equal(t, MinAnnualRate, ClampRate(0))
	assert.Equal(t, MinAnnualRate, ClampRate(-0.5))
	assert.Equal(t, 0.05, ClampRate(0.05))
	assert.Equal(t, MaxAnnualRate, ClampRate(0.9))
}

func TestRun_BalanceReachesZeroOnlyAtTermEnd(t *testing.T) {
	params := domain.SimulationParameters{
		InitialPropertyValue:       200000,
		InitialLoanValue:           50000,
		InitialInterestRatePercent: 7,
		LoanTermYears:              2,
		InterestRateStdDev:         0.3,
	}

	result := NewEngine(NewSeededSource(5)).Run(params)

	last := len(result.LoanBalances) - 1
	for i := 1; i < last; i++ {
		assert.Greater(t, result.LoanBalances[i], 0.0, "month %d", i)
		assert.Greater(t, result.TotalPaidIntoLoan[i], result.TotalPaidIntoLoan[i-1], "month %d", i)
	}
	assert.InDelta(t, 0, result.LoanBalances[last], 1e-6)
	assert.GreaterOrEqual(t, result.LoanBalances[last], 0.0)
}

func TestRun_PaidOffLoanPostsNothingMore(t *testing.T) {
	params := domain.SimulationParameters{
		InitialPropertyValue:       200000,
		InitialLoanValue:           -1,
		InitialInterestRatePercent: 5,
		LoanTermYears:              1,
	}

	result := NewEngine(NewSeededSource(5)).Run(params)

	// a non-positive balance is treated as repaid from the first month
	for i := 1; i < len(result.TotalPaidIntoLoan); i++ {
		assert.Equal(t, 0.0, result.TotalPaidIntoLoan[i], "month %d", i)
		assert.Equal(t, 0.0, result.LoanBalances[i], "month %d", i)
	}
}
