package loan

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrLoanAlreadyExists    = errors.New("a live loan already uses this seed")
	ErrVectorLengthMismatch = errors.New("schedule arrays differ in length")
	ErrVectorEmpty          = errors.New("schedule arrays are empty")
	ErrNotBorrower          = errors.New("caller is not the loan's borrower")
	ErrTrackerNotFound      = errors.New("ledger has no enabled loan tracker")
	ErrInvalidPaymentOrder  = errors.New("payment order mask outside the 3-bit range")
	ErrDeprecated           = errors.New("entry point is deprecated, use the ledger-scoped originate")
)

type State string

const (
	StateActive  State = "active"
	StateRetired State = "retired"
)

// PaymentOrder is the 3-bit mask controlling which components a payment may
// book to. Lower bit = higher priority within the active interval.
type PaymentOrder uint8

const (
	PayPrincipal PaymentOrder = 1 << iota
	PayInterest
	PayFee

	PaymentOrderAll = PayPrincipal | PayInterest | PayFee
)

func (p PaymentOrder) Valid() bool {
	return p != 0 && p&^PaymentOrderAll == 0
}

type Component uint8

const (
	ComponentPrincipal Component = iota
	ComponentInterest
	ComponentFee
)

// Components decodes the mask into the ordered list of payable components.
func (p PaymentOrder) Components() []Component {
	out := make([]Component, 0, 3)
	if p&PayPrincipal != 0 {
		out = append(out, ComponentPrincipal)
	}
	if p&PayInterest != 0 {
		out = append(out, ComponentInterest)
	}
	if p&PayFee != 0 {
		out = append(out, ComponentFee)
	}
	return out
}

type IntervalStatus string

const (
	IntervalPending IntervalStatus = "pending"
	IntervalPaid    IntervalStatus = "paid"
)

// PaymentInterval is one scheduled installment. Amounts are integer minor
// units of the loan's settlement asset.
type PaymentInterval struct {
	ID            uint64         `gorm:"primaryKey;column:id" json:"-"`
	LoanRef       uint64         `gorm:"column:loan_ref;not null;index" json:"-"`
	Sequence      int            `gorm:"not null" json:"sequence"`
	DueAt         time.Time      `json:"due_at"`
	Principal     uint64         `json:"principal"`
	Interest      uint64         `json:"interest"`
	Fee           uint64         `json:"fee"`
	PrincipalPaid uint64         `json:"principal_paid"`
	InterestPaid  uint64         `json:"interest_paid"`
	FeePaid       uint64         `json:"fee_paid"`
	Status        IntervalStatus `gorm:"size:16;default:'pending'" json:"status"`
	PaidAt        *time.Time     `json:"paid_at,omitempty"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"-"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"-"`
}

func (PaymentInterval) TableName() string { return "payment_intervals" }

func (i *PaymentInterval) Outstanding(c Component) uint64 {
	switch c {
	case ComponentPrincipal:
		return i.Principal - i.PrincipalPaid
	case ComponentInterest:
		return i.Interest - i.InterestPaid
	case ComponentFee:
		return i.Fee - i.FeePaid
	}
	return 0
}

func (i *PaymentInterval) pay(c Component, amount uint64) {
	switch c {
	case ComponentPrincipal:
		i.PrincipalPaid += amount
	case ComponentInterest:
		i.InterestPaid += amount
	case ComponentFee:
		i.FeePaid += amount
	}
}

type Loan struct {
	ID     uint64 `gorm:"primaryKey;column:id" json:"-"`
	LoanID string `gorm:"size:32;uniqueIndex:ux_loans_loan_id_active" json:"loan_id"`
	// Seed is the caller-chosen idempotency key, unique among live loans of
	// one ledger. Stored hex-encoded.
	Seed      string `gorm:"size:64;uniqueIndex:ux_loans_ledger_seed_active" json:"seed"`
	LedgerRef uint64 `gorm:"column:ledger_ref;not null;index;uniqueIndex:ux_loans_ledger_seed_active" json:"-"`

	BorrowerID string `gorm:"size:32;index" json:"borrower_id"`
	// OwnerID starts as the originating caller and moves to the facility on
	// auto-pledge. Repayments are deposited to the owner.
	OwnerID         string       `gorm:"size:32;index" json:"owner_id"`
	SettlementAsset string       `gorm:"size:32" json:"settlement_asset"`
	EscrowAccountID string       `gorm:"size:32" json:"escrow_account_id"`
	PaymentOrder    PaymentOrder `gorm:"column:payment_order" json:"payment_order"`
	State           State        `gorm:"size:16;default:'active'" json:"state"`
	StartTime       *time.Time   `json:"start_time,omitempty"`

	Intervals []PaymentInterval `gorm:"foreignKey:LoanRef" json:"intervals,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index;uniqueIndex:ux_loans_loan_id_active;uniqueIndex:ux_loans_ledger_seed_active" json:"-"`
	DeletedBy string         `gorm:"size:32" json:"-"`
}

func (Loan) TableName() string { return "loans" }

// RemainingDebt is the unpaid principal across all intervals. It is
// monotonically non-increasing and the loan retires when it reaches zero.
func (l *Loan) RemainingDebt() uint64 {
	var debt uint64
	for i := range l.Intervals {
		debt += l.Intervals[i].Outstanding(ComponentPrincipal)
	}
	return debt
}

// TotalPrincipal is the funding amount required at origination.
func (l *Loan) TotalPrincipal() uint64 {
	var sum uint64
	for i := range l.Intervals {
		sum += l.Intervals[i].Principal
	}
	return sum
}
