package document

import "time"

// DefaultRiskScore is attached at origination when the caller supplies none.
const DefaultRiskScore uint64 = 1000

// Document is one per-loan metadata record. The collection starts empty at
// origination and is hard-deleted with the loan at retirement.
type Document struct {
	ID          uint64    `gorm:"primaryKey;column:id" json:"-"`
	LoanRef     uint64    `gorm:"column:loan_ref;not null;index" json:"-"`
	Name        string    `gorm:"size:128;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Hash        []byte    `gorm:"type:varbinary(64)" json:"hash"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (Document) TableName() string { return "loan_documents" }

// RiskScore holds the single numeric score attached to a loan.
type RiskScore struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"-"`
	LoanRef   uint64    `gorm:"column:loan_ref;not null;uniqueIndex" json:"-"`
	Score     uint64    `gorm:"not null" json:"score"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (RiskScore) TableName() string { return "loan_risk_scores" }
