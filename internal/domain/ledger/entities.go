package ledger

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotAdmin             = errors.New("caller is not an admin of this ledger")
	ErrConfigNotFound       = errors.New("ledger config not found")
	ErrInvalidFundingSource = errors.New("invalid funding source")
)

// FundingSource selects whose balance capital is drawn from at origination.
type FundingSource string

const (
	// FundingOriginator draws from the acting caller's own balance.
	FundingOriginator FundingSource = "originator"
	// FundingLedgerEscrow draws from the ledger's own escrow account.
	FundingLedgerEscrow FundingSource = "ledger_escrow"
)

func (f FundingSource) Valid() bool {
	switch f {
	case FundingOriginator, FundingLedgerEscrow:
		return true
	}
	return false
}

type LedgerConfig struct {
	ID       uint64 `gorm:"primaryKey;column:id" json:"-"`
	LedgerID string `gorm:"size:32;uniqueIndex:ux_ledgers_ledger_id_active" json:"ledger_id"`
	Name     string `gorm:"size:128" json:"name"`
	// OwnerID is always an admin; additional admins live in ledger_admins.
	OwnerID         string        `gorm:"size:32;index" json:"owner_id"`
	SettlementAsset string        `gorm:"size:32" json:"settlement_asset"`
	FundingSource   FundingSource `gorm:"size:16" json:"funding_source"`
	// EscrowAccountID holds the ledger's own capital when funding from escrow.
	EscrowAccountID    string         `gorm:"size:32" json:"escrow_account_id"`
	TrackerEnabled     bool           `json:"tracker_enabled"`
	AutoPledgeEnabled  bool           `json:"auto_pledge_enabled"`
	AutoPledgeFacility string         `gorm:"size:32" json:"auto_pledge_facility,omitempty"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index;uniqueIndex:ux_ledgers_ledger_id_active" json:"-"`
}

func (LedgerConfig) TableName() string { return "ledger_configs" }

type Admin struct {
	ID        uint64    `gorm:"primaryKey;column:id"`
	LedgerRef uint64    `gorm:"column:ledger_ref;not null;uniqueIndex:ux_ledger_admins"`
	AdminID   string    `gorm:"size:32;not null;uniqueIndex:ux_ledger_admins"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Admin) TableName() string { return "ledger_admins" }

// TransferGrant whitelists an account for transfers of the ledger's
// settlement asset and loan instruments. Grants are idempotent.
type TransferGrant struct {
	ID        uint64    `gorm:"primaryKey;column:id"`
	LedgerRef uint64    `gorm:"column:ledger_ref;not null;uniqueIndex:ux_ledger_grants"`
	AccountID string    `gorm:"size:32;not null;uniqueIndex:ux_ledger_grants"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (TransferGrant) TableName() string { return "ledger_transfer_grants" }
