package mysql

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domain "loanbook/internal/domain/loan"
	infra "loanbook/internal/infrastructure/db"
)

const (
	owner    = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	borrower = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	admin    = "cccccccccccccccccccccccccccccccc"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := infra.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testLoan(ledgerRef uint64, loanID, seed string) *domain.Loan {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := &domain.Loan{
		LoanID:          loanID,
		Seed:            seed,
		LedgerRef:       ledgerRef,
		BorrowerID:      borrower,
		OwnerID:         owner,
		SettlementAsset: "idr",
		EscrowAccountID: "44444444444444444444444444444444",
		PaymentOrder:    domain.PaymentOrderAll,
		State:           domain.StateActive,
	}
	// inserted out of order on purpose, reads must sort by sequence
	for _, seq := range []int{2, 0, 1} {
		l.Intervals = append(l.Intervals, domain.PaymentInterval{
			Sequence:  seq,
			DueAt:     base.AddDate(0, seq+1, 0),
			Principal: 100_000,
			Status:    domain.IntervalPending,
		})
	}
	return l
}
