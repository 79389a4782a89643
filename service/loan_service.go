package service

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"mortgage-sim/domain"
	"mortgage-sim/logging"
	"mortgage-sim/repository"
	"mortgage-sim/simulation"
)

// roundTo2Decimals redondea un float64 a 2 decimales
func roundTo2Decimals(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}
	return decimal.NewFromFloat(value).Round(2).InexactFloat64()
}

type LoanService struct {
	repo   repository.LoanRepository
	logger logging.Logger
}

// NewLoanService creates a new LoanService with the given repository.
func NewLoanService(repo repository.LoanRepository, logger logging.Logger) *LoanService {
	return &LoanService{repo: repo, logger: logger.WithField("component", "loan_service")}
}

// CalculateLoan calculates the fixed-rate level payment for the input.
func (s *LoanService) CalculateLoan(
	input domain.LoanInput,
) (domain.LoanResult, error) {

	// Validar entrada
	if input.Amount <= 0 {
		return domain.LoanResult{}, fmt.Errorf("%w: monto inválido", ErrInvalidInput)
	}
	if input.Amount > MaxLoanAmount {
		return domain.LoanResult{}, fmt.Errorf("%w: monto excede el máximo permitido de $%.2f", ErrInvalidInput, MaxLoanAmount)
	}
	if input.InterestRate < 0 {
		return domain.LoanResult{}, fmt.Errorf("%w: tasa inválida", ErrInvalidInput)
	}
	if input.InterestRate > MaxInterestRate {
		return domain.LoanResult{}, fmt.Errorf("%w: tasa de interés excede el máximo permitido de %.2f%%", ErrInvalidInput, MaxInterestRate)
	}
	if input.TermMonths < MinTermMonths {
		return domain.LoanResult{}, fmt.Errorf("%w: plazo inválido", ErrInvalidInput)
	}
	if input.TermMonths > MaxTermMonths {
		return domain.LoanResult{}, fmt.Errorf("%w: plazo excede el máximo permitido de %d meses", ErrInvalidInput, MaxTermMonths)
	}

	tasaMensual := (input.InterestRate / 100) / 12
	cuota := simulation.LevelPayment(input.Amount, tasaMensual, input.TermMonths)

	total := cuota * float64(input.TermMonths)
	intereses := total - input.Amount

	result := domain.LoanResult{
		MonthlyPayment: roundTo2Decimals(cuota),
		TotalPayment:   roundTo2Decimals(total),
		TotalInterest:  roundTo2Decimals(intereses),
	}

	// Guardar el resultado (no crítico si falla)
	if err := s.repo.Save(input, result); err != nil {
		s.logger.Warn("failed to save loan calculation", "error", err)
	}

	return result, nil
}
