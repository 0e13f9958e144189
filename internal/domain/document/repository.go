package document

import "context"

type Repository interface {
	Add(ctx context.Context, d *Document) error
	ListByLoan(ctx context.Context, loanRef uint64) ([]Document, error)
	CountByLoan(ctx context.Context, loanRef uint64) (int64, error)

	CreateRiskScore(ctx context.Context, r *RiskScore) error
	GetRiskScore(ctx context.Context, loanRef uint64) (*RiskScore, error)

	// DeleteAllForLoan hard-deletes the document collection and risk score.
	// Called exactly once, in the retirement transaction.
	DeleteAllForLoan(ctx context.Context, loanRef uint64) error
}
