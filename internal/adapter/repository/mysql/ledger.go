package mysql

import (
	"context"
	"errors"

	ledgerDomain "loanbook/internal/domain/ledger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LedgerRepository struct{ db *gorm.DB }

func NewLedgerRepository(db *gorm.DB) *LedgerRepository { return &LedgerRepository{db: db} }

func (r *LedgerRepository) Create(ctx context.Context, c *ledgerDomain.LedgerConfig) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *LedgerRepository) Save(ctx context.Context, c *ledgerDomain.LedgerConfig) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *LedgerRepository) GetByLedgerID(ctx context.Context, ledgerID string) (*ledgerDomain.LedgerConfig, error) {
	var out ledgerDomain.LedgerConfig
	res := r.db.WithContext(ctx).Where("ledger_id = ?", ledgerID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, ledgerDomain.ErrConfigNotFound
	}
	return &out, res.Error
}

func (r *LedgerRepository) GetByRef(ctx context.Context, ref uint64) (*ledgerDomain.LedgerConfig, error) {
	var out ledgerDomain.LedgerConfig
	res := r.db.WithContext(ctx).Where("id = ?", ref).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, ledgerDomain.ErrConfigNotFound
	}
	return &out, res.Error
}

func (r *LedgerRepository) AddAdmin(ctx context.Context, a *ledgerDomain.Admin) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *LedgerRepository) HasAdmin(ctx context.Context, ledgerRef uint64, adminID string) (bool, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&ledgerDomain.Admin{}).
		Where("ledger_ref = ? AND admin_id = ?", ledgerRef, adminID).
		Count(&n)
	return n > 0, res.Error
}

func (r *LedgerRepository) Grant(ctx context.Context, ledgerRef uint64, accountID string) error {
	g := ledgerDomain.TransferGrant{LedgerRef: ledgerRef, AccountID: accountID}
	// DoNothing keeps repeated grants idempotent under the unique index.
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&g).Error
}
