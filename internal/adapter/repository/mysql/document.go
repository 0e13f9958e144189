package mysql

import (
	"context"

	documentDomain "loanbook/internal/domain/document"

	"gorm.io/gorm"
)

type DocumentRepository struct{ db *gorm.DB }

func NewDocumentRepository(db *gorm.DB) *DocumentRepository { return &DocumentRepository{db: db} }

func (r *DocumentRepository) Add(ctx context.Context, d *documentDomain.Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DocumentRepository) ListByLoan(ctx context.Context, loanRef uint64) ([]documentDomain.Document, error) {
	var out []documentDomain.Document
	res := r.db.WithContext(ctx).
		Where("loan_ref = ?", loanRef).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

func (r *DocumentRepository) CountByLoan(ctx context.Context, loanRef uint64) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&documentDomain.Document{}).
		Where("loan_ref = ?", loanRef).
		Count(&n)
	return n, res.Error
}

func (r *DocumentRepository) CreateRiskScore(ctx context.Context, s *documentDomain.RiskScore) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *DocumentRepository) GetRiskScore(ctx context.Context, loanRef uint64) (*documentDomain.RiskScore, error) {
	var out documentDomain.RiskScore
	res := r.db.WithContext(ctx).Where("loan_ref = ?", loanRef).First(&out)
	return &out, res.Error
}

func (r *DocumentRepository) DeleteAllForLoan(ctx context.Context, loanRef uint64) error {
	if err := r.db.WithContext(ctx).
		Where("loan_ref = ?", loanRef).
		Delete(&documentDomain.Document{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("loan_ref = ?", loanRef).
		Delete(&documentDomain.RiskScore{}).Error
}
