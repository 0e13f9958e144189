package balance

import "context"

type Repository interface {
	CreateAsset(ctx context.Context, a *Asset) error
	GetAsset(ctx context.Context, code string) (*Asset, error)
	SaveAsset(ctx context.Context, a *Asset) error

	// GetBalance returns 0 for accounts with no row.
	GetBalance(ctx context.Context, accountID, assetCode string) (uint64, error)
	Deposit(ctx context.Context, accountID, assetCode string, amount uint64) error
	// Withdraw fails with ErrInsufficientBalance on shortfall.
	Withdraw(ctx context.Context, accountID, assetCode string, amount uint64) error
	// Mint issues new units of a bridging asset into an account.
	Mint(ctx context.Context, accountID, assetCode string, amount uint64) error
}
