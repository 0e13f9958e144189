package repayment

import (
	"context"
	"time"

	ledgerDomain "loanbook/internal/domain/ledger"
	domain "loanbook/internal/domain/loan"
	"loanbook/internal/domain/uow"
	"loanbook/internal/usecase/funding"
	ledgerUC "loanbook/internal/usecase/ledger"
)

type Usecase struct {
	ledgers ledgerDomain.Repository
	loans   domain.Repository
	uow     uow.UnitOfWork
}

func NewUsecase(ledgers ledgerDomain.Repository, loans domain.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{ledgers: ledgers, loans: loans, uow: tx}
}

// Repay applies a borrower payment against the schedule, clamped to the
// remaining debt. A payment that clears the debt retires the loan and
// destroys its auxiliary resources in the same transaction.
func (u *Usecase) Repay(ctx context.Context, in RepayInput) (*RepaymentDTO, error) {
	return u.repay(ctx, in.LoanID, in.CallerID, in.Amount, time.Now().UTC(), "")
}

// RepayBySeed resolves the loan through the ledger's tracker first.
func (u *Usecase) RepayBySeed(ctx context.Context, in RepayBySeedInput) (*RepaymentDTO, error) {
	loanID, err := u.resolveLoanID(ctx, in.LedgerID, in.Seed)
	if err != nil {
		return nil, err
	}
	return u.repay(ctx, loanID, in.CallerID, in.Amount, time.Now().UTC(), "")
}

// RepayHistorical backfills an off-ledger payment at an arbitrary point in
// time. Requires the borrower plus an admin co-signer.
func (u *Usecase) RepayHistorical(ctx context.Context, in HistoricalInput) (*RepaymentDTO, error) {
	return u.repay(ctx, in.LoanID, in.CallerID, in.Amount, time.Unix(in.AsOf, 0).UTC(), in.AdminID)
}

// RepayHistoricalBySeed is the tracker-addressed historical variant.
func (u *Usecase) RepayHistoricalBySeed(ctx context.Context, ledgerID, seed string, in HistoricalInput) (*RepaymentDTO, error) {
	loanID, err := u.resolveLoanID(ctx, ledgerID, seed)
	if err != nil {
		return nil, err
	}
	return u.repay(ctx, loanID, in.CallerID, in.Amount, time.Unix(in.AsOf, 0).UTC(), in.AdminID)
}

func (u *Usecase) resolveLoanID(ctx context.Context, ledgerID, seed string) (string, error) {
	cfg, err := u.ledgers.GetByLedgerID(ctx, ledgerID)
	if err != nil {
		return "", err
	}
	if !cfg.TrackerEnabled {
		return "", domain.ErrTrackerNotFound
	}
	l, err := u.loans.GetBySeed(ctx, cfg.ID, seed)
	if err != nil {
		return "", err
	}
	return l.LoanID, nil
}

func (u *Usecase) repay(ctx context.Context, loanID, caller string, requested uint64, at time.Time, adminID string) (*RepaymentDTO, error) {
	var dto *RepaymentDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		if caller != l.BorrowerID {
			return domain.ErrNotBorrower
		}
		if adminID != "" {
			cfg, err := r.Ledgers.GetByRef(ctx, l.LedgerRef)
			if err != nil {
				return err
			}
			if err := ledgerUC.Authorize(ctx, r.Ledgers, cfg, adminID); err != nil {
				return err
			}
		}

		debt := l.RemainingDebt()
		applied := min(requested, debt)

		if applied > 0 {
			// Bridging assets top the borrower up by minting, mirroring the
			// origination gateway.
			if err := funding.Ensure(ctx, r.Balances, l.BorrowerID, l.SettlementAsset, applied); err != nil {
				return err
			}
			if err := r.Balances.Withdraw(ctx, l.BorrowerID, l.SettlementAsset, applied); err != nil {
				return err
			}
			if err := r.Balances.Deposit(ctx, l.OwnerID, l.SettlementAsset, applied); err != nil {
				return err
			}
		}

		res := domain.ApplyPayment(l.Intervals, l.PaymentOrder, applied, at)
		if err := r.Loans.SaveIntervals(ctx, l.Intervals); err != nil {
			return err
		}

		if res.Retired {
			if err := u.retire(ctx, r, l, caller); err != nil {
				return err
			}
			l.State = domain.StateRetired
		} else if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		dto = &RepaymentDTO{
			LoanID:           l.LoanID,
			Requested:        requested,
			Applied:          res.Applied,
			PrincipalApplied: res.PrincipalApplied,
			RemainingDebt:    l.RemainingDebt(),
			Retired:          res.Retired,
			PaidAt:           at,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// retire releases the escrow to the current owner and destroys the loan's
// auxiliary resources. Runs inside the repayment transaction.
func (u *Usecase) retire(ctx context.Context, r uow.Repos, l *domain.Loan, caller string) error {
	escrowed, err := r.Balances.GetBalance(ctx, l.EscrowAccountID, l.SettlementAsset)
	if err != nil {
		return err
	}
	if escrowed > 0 {
		if err := r.Balances.Withdraw(ctx, l.EscrowAccountID, l.SettlementAsset, escrowed); err != nil {
			return err
		}
		if err := r.Balances.Deposit(ctx, l.OwnerID, l.SettlementAsset, escrowed); err != nil {
			return err
		}
	}
	if err := r.Documents.DeleteAllForLoan(ctx, l.ID); err != nil {
		return err
	}
	return r.Loans.Retire(ctx, l, caller)
}
