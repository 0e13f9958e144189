package ledger

import "context"

type Repository interface {
	Create(ctx context.Context, c *LedgerConfig) error
	GetByLedgerID(ctx context.Context, ledgerID string) (*LedgerConfig, error)
	GetByRef(ctx context.Context, ref uint64) (*LedgerConfig, error)
	Save(ctx context.Context, c *LedgerConfig) error

	AddAdmin(ctx context.Context, a *Admin) error
	HasAdmin(ctx context.Context, ledgerRef uint64, adminID string) (bool, error)

	// Grant is idempotent; repeated grants for the same account are no-ops.
	Grant(ctx context.Context, ledgerRef uint64, accountID string) error
}
