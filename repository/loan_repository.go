package repository

import "mortgage-sim/domain"

type LoanRepository interface {
	Save(input domain.LoanInput, result domain.LoanResult) error
}
