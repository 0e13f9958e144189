package balancemock

import (
	"context"
	"fmt"

	domain "loanbook/internal/domain/balance"
)

var _ domain.Repository = (*Store)(nil)

// Store is an in-memory balance.Repository. Funding and repayment tests
// assert on actual money movement, so a stateful fake beats function stubs.
type Store struct {
	Assets   map[string]*domain.Asset
	Balances map[string]uint64 // accountID|assetCode → amount
	Minted   uint64            // total units minted, for assertions
}

func New() *Store {
	return &Store{
		Assets:   map[string]*domain.Asset{},
		Balances: map[string]uint64{},
	}
}

func key(accountID, assetCode string) string { return accountID + "|" + assetCode }

func (s *Store) AddAsset(code string, bridging bool) *Store {
	s.Assets[code] = &domain.Asset{Code: code, Bridging: bridging, Locked: bridging}
	return s
}

func (s *Store) Set(accountID, assetCode string, amount uint64) *Store {
	s.Balances[key(accountID, assetCode)] = amount
	return s
}

func (s *Store) CreateAsset(ctx context.Context, a *domain.Asset) error {
	if _, ok := s.Assets[a.Code]; ok {
		return fmt.Errorf("balancemock: asset %s already exists", a.Code)
	}
	cp := *a
	s.Assets[a.Code] = &cp
	return nil
}

func (s *Store) GetAsset(ctx context.Context, code string) (*domain.Asset, error) {
	a, ok := s.Assets[code]
	if !ok {
		return nil, domain.ErrAssetNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *Store) SaveAsset(ctx context.Context, a *domain.Asset) error {
	cp := *a
	s.Assets[a.Code] = &cp
	return nil
}

func (s *Store) GetBalance(ctx context.Context, accountID, assetCode string) (uint64, error) {
	return s.Balances[key(accountID, assetCode)], nil
}

func (s *Store) Deposit(ctx context.Context, accountID, assetCode string, amount uint64) error {
	s.Balances[key(accountID, assetCode)] += amount
	return nil
}

func (s *Store) Withdraw(ctx context.Context, accountID, assetCode string, amount uint64) error {
	k := key(accountID, assetCode)
	if s.Balances[k] < amount {
		return domain.ErrInsufficientBalance
	}
	s.Balances[k] -= amount
	return nil
}

func (s *Store) Mint(ctx context.Context, accountID, assetCode string, amount uint64) error {
	a, ok := s.Assets[assetCode]
	if !ok {
		return domain.ErrAssetNotFound
	}
	if !a.Bridging {
		return domain.ErrNotBridging
	}
	s.Minted += amount
	return s.Deposit(ctx, accountID, assetCode, amount)
}
