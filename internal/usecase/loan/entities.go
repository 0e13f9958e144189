package loan

import "time"

type OriginateInput struct {
	LedgerID   string
	CallerID   string
	Seed       string // hex-encoded caller-chosen bytes
	BorrowerID string

	// Four parallel schedule arrays; due times are unix seconds.
	DueAt     []int64
	Principal []uint64
	Interest  []uint64
	Fee       []uint64

	PaymentOrder uint8

	// Optional overrides.
	Asset     *string
	StartTime *int64
	RiskScore *uint64
}

type IntervalDTO struct {
	Sequence      int       `json:"sequence"`
	DueAt         time.Time `json:"due_at"`
	Principal     uint64    `json:"principal"`
	Interest      uint64    `json:"interest"`
	Fee           uint64    `json:"fee"`
	PrincipalPaid uint64    `json:"principal_paid"`
	InterestPaid  uint64    `json:"interest_paid"`
	FeePaid       uint64    `json:"fee_paid"`
	Status        string    `json:"status"`
}

type LoanDTO struct {
	LoanID          string        `json:"loan_id"`
	LedgerID        string        `json:"ledger_id"`
	Seed            string        `json:"seed"`
	BorrowerID      string        `json:"borrower_id"`
	OwnerID         string        `json:"owner_id"`
	SettlementAsset string        `json:"settlement_asset"`
	PaymentOrder    uint8         `json:"payment_order"`
	State           string        `json:"state"`
	RemainingDebt   uint64        `json:"remaining_debt"`
	RiskScore       uint64        `json:"risk_score,omitempty"`
	DocumentCount   int64         `json:"document_count"`
	StartTime       *time.Time    `json:"start_time,omitempty"`
	Intervals       []IntervalDTO `json:"intervals,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
}

type UpdateIntervalInput struct {
	CallerID  string
	LoanID    string
	Index     int
	DueAt     *int64
	Principal *uint64
	Interest  *uint64
	Fee       *uint64
}

type AddDocumentInput struct {
	CallerID    string
	LoanID      string
	Name        string
	Description string
	Hash        []byte
}
