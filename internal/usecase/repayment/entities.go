package repayment

import "time"

type RepayInput struct {
	CallerID string
	LoanID   string
	Amount   uint64
}

type RepayBySeedInput struct {
	CallerID string
	LedgerID string
	Seed     string
	Amount   uint64
}

type HistoricalInput struct {
	CallerID string
	AdminID  string
	LoanID   string
	Amount   uint64
	// AsOf is the off-ledger payment time being backfilled, unix seconds.
	AsOf int64
}

type RepaymentDTO struct {
	LoanID           string    `json:"loan_id"`
	Requested        uint64    `json:"requested"`
	Applied          uint64    `json:"applied"`
	PrincipalApplied uint64    `json:"principal_applied"`
	RemainingDebt    uint64    `json:"remaining_debt"`
	Retired          bool      `json:"retired"`
	PaidAt           time.Time `json:"paid_at"`
}
