package service

const (
	MaxLoanAmount        = 1_000_000_000.0 // 1 billón
	MaxPropertyValue     = 10_000_000_000.0
	MaxInterestRate      = 1000.0 // 1000% anual
	MaxTermMonths        = 600    // 50 años
	MinTermMonths        = 1
	MaxTermYears         = MaxTermMonths / 12
	DebtBalanceTolerance = 0.01 // tolerancia para considerar deuda pagada

	// Con volatilidad <= 1 el retorno mensual del precio no baja de -1.
	MaxHousePriceStdDev   = 1.0
	MaxInterestRateStdDev = 1.0

	cacheKeyPrefix = "sim:"
)
