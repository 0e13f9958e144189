package balance

import (
	"errors"
	"time"
)

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrAssetNotFound       = errors.New("asset not found")
	ErrNotBridging         = errors.New("asset does not support elastic issuance")
)

// Asset describes one settlement asset. Bridging assets support controlled
// elastic issuance and are transfer-locked outside scoped unlock windows.
type Asset struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"-"`
	Code      string    `gorm:"size:32;not null;uniqueIndex" json:"code"`
	Bridging  bool      `json:"bridging"`
	Locked    bool      `json:"locked"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (Asset) TableName() string { return "assets" }

// Balance is one account's holding of one asset, in integer minor units.
type Balance struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"-"`
	AccountID string    `gorm:"size:32;not null;uniqueIndex:ux_balances_account_asset" json:"account_id"`
	AssetCode string    `gorm:"size:32;not null;uniqueIndex:ux_balances_account_asset" json:"asset_code"`
	Amount    uint64    `json:"amount"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (Balance) TableName() string { return "balances" }
