package docmock

import (
	"context"
	"errors"

	domain "loanbook/internal/domain/document"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("docmock: method not implemented")

// Repo is a function-backed mock that satisfies document.Repository.
type Repo struct {
	AddFn              func(ctx context.Context, d *domain.Document) error
	ListByLoanFn       func(ctx context.Context, loanRef uint64) ([]domain.Document, error)
	CountByLoanFn      func(ctx context.Context, loanRef uint64) (int64, error)
	CreateRiskScoreFn  func(ctx context.Context, r *domain.RiskScore) error
	GetRiskScoreFn     func(ctx context.Context, loanRef uint64) (*domain.RiskScore, error)
	DeleteAllForLoanFn func(ctx context.Context, loanRef uint64) error
}

func (m *Repo) Add(ctx context.Context, d *domain.Document) error {
	if m.AddFn != nil {
		return m.AddFn(ctx, d)
	}
	return nil
}

func (m *Repo) ListByLoan(ctx context.Context, loanRef uint64) ([]domain.Document, error) {
	if m.ListByLoanFn != nil {
		return m.ListByLoanFn(ctx, loanRef)
	}
	return nil, nil
}

func (m *Repo) CountByLoan(ctx context.Context, loanRef uint64) (int64, error) {
	if m.CountByLoanFn != nil {
		return m.CountByLoanFn(ctx, loanRef)
	}
	return 0, nil
}

func (m *Repo) CreateRiskScore(ctx context.Context, r *domain.RiskScore) error {
	if m.CreateRiskScoreFn != nil {
		return m.CreateRiskScoreFn(ctx, r)
	}
	return nil
}

func (m *Repo) GetRiskScore(ctx context.Context, loanRef uint64) (*domain.RiskScore, error) {
	if m.GetRiskScoreFn != nil {
		return m.GetRiskScoreFn(ctx, loanRef)
	}
	return nil, errUnimplemented
}

func (m *Repo) DeleteAllForLoan(ctx context.Context, loanRef uint64) error {
	if m.DeleteAllForLoanFn != nil {
		return m.DeleteAllForLoanFn(ctx, loanRef)
	}
	return nil
}
