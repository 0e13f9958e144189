package loanmock

import (
	"context"
	"errors"

	domain "loanbook/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("loanmock: method not implemented")

// Repo is a function-backed mock that satisfies loan.Repository.
type Repo struct {
	CreateFn               func(ctx context.Context, l *domain.Loan) error
	SaveFn                 func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn          func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByLoanIDForUpdateFn func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetBySeedFn            func(ctx context.Context, ledgerRef uint64, seed string) (*domain.Loan, error)
	ExistsBySeedFn         func(ctx context.Context, ledgerRef uint64, seed string) (bool, error)
	SaveIntervalsFn        func(ctx context.Context, intervals []domain.PaymentInterval) error
	RetireFn               func(ctx context.Context, l *domain.Loan, deletedBy string) error
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, loanID)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetBySeed(ctx context.Context, ledgerRef uint64, seed string) (*domain.Loan, error) {
	if m.GetBySeedFn != nil {
		return m.GetBySeedFn(ctx, ledgerRef, seed)
	}
	return nil, errUnimplemented
}

func (m *Repo) ExistsBySeed(ctx context.Context, ledgerRef uint64, seed string) (bool, error) {
	if m.ExistsBySeedFn != nil {
		return m.ExistsBySeedFn(ctx, ledgerRef, seed)
	}
	return false, nil
}

func (m *Repo) SaveIntervals(ctx context.Context, intervals []domain.PaymentInterval) error {
	if m.SaveIntervalsFn != nil {
		return m.SaveIntervalsFn(ctx, intervals)
	}
	return nil
}

func (m *Repo) Retire(ctx context.Context, l *domain.Loan, deletedBy string) error {
	if m.RetireFn != nil {
		return m.RetireFn(ctx, l, deletedBy)
	}
	return nil
}
