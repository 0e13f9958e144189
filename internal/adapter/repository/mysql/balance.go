package mysql

import (
	"context"
	"errors"

	balanceDomain "loanbook/internal/domain/balance"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BalanceRepository struct{ db *gorm.DB }

func NewBalanceRepository(db *gorm.DB) *BalanceRepository { return &BalanceRepository{db: db} }

func (r *BalanceRepository) CreateAsset(ctx context.Context, a *balanceDomain.Asset) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *BalanceRepository) GetAsset(ctx context.Context, code string) (*balanceDomain.Asset, error) {
	var out balanceDomain.Asset
	res := r.db.WithContext(ctx).Where("code = ?", code).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, balanceDomain.ErrAssetNotFound
	}
	return &out, res.Error
}

func (r *BalanceRepository) SaveAsset(ctx context.Context, a *balanceDomain.Asset) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *BalanceRepository) GetBalance(ctx context.Context, accountID, assetCode string) (uint64, error) {
	var out balanceDomain.Balance
	res := r.db.WithContext(ctx).
		Where("account_id = ? AND asset_code = ?", accountID, assetCode).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	return out.Amount, res.Error
}

// row locks the account/asset balance, creating the row when absent.
func (r *BalanceRepository) row(ctx context.Context, accountID, assetCode string) (*balanceDomain.Balance, error) {
	var out balanceDomain.Balance
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("account_id = ? AND asset_code = ?", accountID, assetCode).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		out = balanceDomain.Balance{AccountID: accountID, AssetCode: assetCode}
		if err := r.db.WithContext(ctx).Create(&out).Error; err != nil {
			return nil, err
		}
		return &out, nil
	}
	return &out, res.Error
}

func (r *BalanceRepository) Deposit(ctx context.Context, accountID, assetCode string, amount uint64) error {
	b, err := r.row(ctx, accountID, assetCode)
	if err != nil {
		return err
	}
	b.Amount += amount
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BalanceRepository) Withdraw(ctx context.Context, accountID, assetCode string, amount uint64) error {
	b, err := r.row(ctx, accountID, assetCode)
	if err != nil {
		return err
	}
	if b.Amount < amount {
		return balanceDomain.ErrInsufficientBalance
	}
	b.Amount -= amount
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BalanceRepository) Mint(ctx context.Context, accountID, assetCode string, amount uint64) error {
	a, err := r.GetAsset(ctx, assetCode)
	if err != nil {
		return err
	}
	if !a.Bridging {
		return balanceDomain.ErrNotBridging
	}
	return r.Deposit(ctx, accountID, assetCode, amount)
}
