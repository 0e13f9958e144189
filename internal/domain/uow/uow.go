package uow

import (
	"context"

	"loanbook/internal/domain/balance"
	"loanbook/internal/domain/document"
	"loanbook/internal/domain/ledger"
	"loanbook/internal/domain/loan"
)

// Repos bundles every repository bound to one transaction.
type Repos struct {
	Ledgers   ledger.Repository
	Loans     loan.Repository
	Documents document.Repository
	Balances  balance.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock loan first, then pass it in
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
