package mysql

import (
	"context"

	loanDomain "loanbook/internal/domain/loan"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func intervalsInOrder(db *gorm.DB) *gorm.DB { return db.Order("sequence ASC") }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	// Intervals ride along through the association.
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Omit("Intervals").Save(l).Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Preload("Intervals", intervalsInOrder).
		Where("loan_id = ?", loanID).
		First(&out)
	return &out, res.Error
}

func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Intervals", intervalsInOrder).
		Where("loan_id = ?", loanID).
		First(&out)
	return &out, res.Error
}

func (r *LoanRepository) GetBySeed(ctx context.Context, ledgerRef uint64, seed string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Preload("Intervals", intervalsInOrder).
		Where("ledger_ref = ? AND seed = ?", ledgerRef, seed).
		First(&out)
	return &out, res.Error
}

func (r *LoanRepository) ExistsBySeed(ctx context.Context, ledgerRef uint64, seed string) (bool, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).
		Where("ledger_ref = ? AND seed = ?", ledgerRef, seed).
		Count(&n)
	return n > 0, res.Error
}

func (r *LoanRepository) SaveIntervals(ctx context.Context, intervals []loanDomain.PaymentInterval) error {
	for i := range intervals {
		if err := r.db.WithContext(ctx).Save(&intervals[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *LoanRepository) Retire(ctx context.Context, l *loanDomain.Loan, deletedBy string) error {
	updates := map[string]any{"state": loanDomain.StateRetired, "deleted_by": deletedBy}
	if err := r.db.WithContext(ctx).Model(l).Updates(updates).Error; err != nil {
		return err
	}
	// Soft delete drops the loan out of every seed/id lookup.
	return r.db.WithContext(ctx).Delete(l).Error
}
