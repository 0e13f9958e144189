// Package funding resolves where origination capital and repayment money
// comes from. A bridging settlement asset may mint the shortfall under the
// ledger's administrative capability; any other asset fails hard.
package funding

import (
	"context"

	"loanbook/internal/domain/balance"
	"loanbook/internal/domain/ledger"
	"loanbook/internal/domain/uow"
)

// Acquire moves the exact funding amount into the escrow account, drawing
// from the account selected by the ledger's funding-source policy.
func Acquire(ctx context.Context, r uow.Repos, cfg *ledger.LedgerConfig, caller, assetCode, escrowAccount string, amount uint64) error {
	var funder string
	switch cfg.FundingSource {
	case ledger.FundingOriginator:
		funder = caller
	case ledger.FundingLedgerEscrow:
		funder = cfg.EscrowAccountID
	default:
		return ledger.ErrInvalidFundingSource
	}

	if err := Ensure(ctx, r.Balances, funder, assetCode, amount); err != nil {
		return err
	}
	if err := r.Balances.Withdraw(ctx, funder, assetCode, amount); err != nil {
		return err
	}
	return r.Balances.Deposit(ctx, escrowAccount, assetCode, amount)
}

// Ensure tops the account up to amount. Bridging assets mint the shortfall
// inside a scoped unlock; non-bridging assets fail with
// ErrInsufficientBalance when short.
func Ensure(ctx context.Context, balances balance.Repository, accountID, assetCode string, amount uint64) error {
	a, err := balances.GetAsset(ctx, assetCode)
	if err != nil {
		return err
	}
	if !a.Bridging {
		bal, err := balances.GetBalance(ctx, accountID, assetCode)
		if err != nil {
			return err
		}
		if bal < amount {
			return balance.ErrInsufficientBalance
		}
		return nil
	}
	// Balance checks against a bridging asset run with the transfer lock
	// lifted; the lock is restored even when the check fails.
	return balance.WithUnlocked(ctx, balances, assetCode, func() error {
		bal, err := balances.GetBalance(ctx, accountID, assetCode)
		if err != nil {
			return err
		}
		if bal >= amount {
			return nil
		}
		return balances.Mint(ctx, accountID, assetCode, amount-bal)
	})
}
