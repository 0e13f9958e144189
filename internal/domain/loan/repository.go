package loan

import "context"

type Repository interface {
	// Create persists the loan together with its intervals.
	Create(ctx context.Context, l *Loan) error
	Save(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)

	// Seed-addressed lookups back the loan tracker.
	GetBySeed(ctx context.Context, ledgerRef uint64, seed string) (*Loan, error)
	ExistsBySeed(ctx context.Context, ledgerRef uint64, seed string) (bool, error)

	SaveIntervals(ctx context.Context, intervals []PaymentInterval) error

	// Retire soft-deletes the loan; the seed becomes reusable.
	Retire(ctx context.Context, l *Loan, deletedBy string) error
}
