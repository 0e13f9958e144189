package ledgermock

import (
	"context"
	"errors"

	domain "loanbook/internal/domain/ledger"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("ledgermock: method not implemented")

// Repo is a function-backed mock that satisfies ledger.Repository.
// Fill in the function fields a test needs; the rest fail loudly.
type Repo struct {
	CreateFn        func(ctx context.Context, c *domain.LedgerConfig) error
	GetByLedgerIDFn func(ctx context.Context, ledgerID string) (*domain.LedgerConfig, error)
	GetByRefFn      func(ctx context.Context, ref uint64) (*domain.LedgerConfig, error)
	SaveFn          func(ctx context.Context, c *domain.LedgerConfig) error
	AddAdminFn      func(ctx context.Context, a *domain.Admin) error
	HasAdminFn      func(ctx context.Context, ledgerRef uint64, adminID string) (bool, error)
	GrantFn         func(ctx context.Context, ledgerRef uint64, accountID string) error
}

func (m *Repo) Create(ctx context.Context, c *domain.LedgerConfig) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *Repo) GetByLedgerID(ctx context.Context, ledgerID string) (*domain.LedgerConfig, error) {
	if m.GetByLedgerIDFn != nil {
		return m.GetByLedgerIDFn(ctx, ledgerID)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByRef(ctx context.Context, ref uint64) (*domain.LedgerConfig, error) {
	if m.GetByRefFn != nil {
		return m.GetByRefFn(ctx, ref)
	}
	return nil, errUnimplemented
}

func (m *Repo) Save(ctx context.Context, c *domain.LedgerConfig) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, c)
	}
	return nil
}

func (m *Repo) AddAdmin(ctx context.Context, a *domain.Admin) error {
	if m.AddAdminFn != nil {
		return m.AddAdminFn(ctx, a)
	}
	return nil
}

func (m *Repo) HasAdmin(ctx context.Context, ledgerRef uint64, adminID string) (bool, error) {
	if m.HasAdminFn != nil {
		return m.HasAdminFn(ctx, ledgerRef, adminID)
	}
	return false, nil
}

func (m *Repo) Grant(ctx context.Context, ledgerRef uint64, accountID string) error {
	if m.GrantFn != nil {
		return m.GrantFn(ctx, ledgerRef, accountID)
	}
	return nil
}
