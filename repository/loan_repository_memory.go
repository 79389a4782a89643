package repository

import (
	"sync"

	"mortgage-sim/domain"
)

// maxStoredLoanResults bounds the in-memory history; the oldest results are dropped first.
const maxStoredLoanResults = 1000

// LoanRepositoryMemory is an in-memory implementation of LoanRepository.
type LoanRepositoryMemory struct {
	mu   sync.Mutex
	data []domain.LoanResult
}

// NewLoanRepositoryMemory creates a new in-memory loan repository.
func NewLoanRepositoryMemory() *LoanRepositoryMemory {
	return &LoanRepositoryMemory{
		data: []domain.LoanResult{},
	}
}

// Save stores the loan result in memory.
func (r *LoanRepositoryMemory) Save(
	input domain.LoanInput,
	result domain.LoanResult,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.data) >= maxStoredLoanResults {
		r.data = append(r.data[:0], r.data[1:]...)
	}
	r.data = append(r.data, result)
	return nil
}

// Count returns how many calculations have been stored.
func (r *LoanRepositoryMemory) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.data)
}

