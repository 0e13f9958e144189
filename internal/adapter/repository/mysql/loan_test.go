package mysql

import (
	"context"
	"errors"
	"testing"

	domain "loanbook/internal/domain/loan"

	"gorm.io/gorm"
)

const (
	loanID = "33333333333333333333333333333333"
	seed   = "c0ffee"
)

func TestLoanRepository_CreatePersistsIntervalsInOrder(t *testing.T) {
	repo := NewLoanRepository(testDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, testLoan(9, loanID, seed)); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByLoanID(ctx, loanID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if len(got.Intervals) != 3 {
		t.Fatalf("intervals = %d", len(got.Intervals))
	}
	for i, iv := range got.Intervals {
		if iv.Sequence != i {
			t.Errorf("interval %d has sequence %d", i, iv.Sequence)
		}
	}
	if got.RemainingDebt() != 300_000 {
		t.Fatalf("remaining debt = %d", got.RemainingDebt())
	}
}

func TestLoanRepository_SeedLookups(t *testing.T) {
	repo := NewLoanRepository(testDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, testLoan(9, loanID, seed)); err != nil {
		t.Fatalf("Create: %v", err)
	}

	ok, err := repo.ExistsBySeed(ctx, 9, seed)
	if err != nil || !ok {
		t.Fatalf("ExistsBySeed = %v, %v", ok, err)
	}
	// same seed under another ledger is a different tracker slot
	ok, err = repo.ExistsBySeed(ctx, 10, seed)
	if err != nil || ok {
		t.Fatalf("ExistsBySeed(other ledger) = %v, %v", ok, err)
	}

	got, err := repo.GetBySeed(ctx, 9, seed)
	if err != nil {
		t.Fatalf("GetBySeed: %v", err)
	}
	if got.LoanID != loanID {
		t.Fatalf("resolved %s", got.LoanID)
	}
}

func TestLoanRepository_RetireFreesTheSeed(t *testing.T) {
	db := testDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	l := testLoan(9, loanID, seed)
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Retire(ctx, l, borrower); err != nil {
		t.Fatalf("Retire: %v", err)
	}

	if _, err := repo.GetByLoanID(ctx, loanID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("retired loan still resolvable: %v", err)
	}
	ok, err := repo.ExistsBySeed(ctx, 9, seed)
	if err != nil || ok {
		t.Fatalf("retired loan still holds the seed: %v, %v", ok, err)
	}

	// the row survives soft-deleted for audit
	var kept domain.Loan
	if err := db.Unscoped().Where("loan_id = ?", loanID).First(&kept).Error; err != nil {
		t.Fatalf("unscoped lookup: %v", err)
	}
	if kept.State != domain.StateRetired || kept.DeletedBy != borrower {
		t.Fatalf("retired row: state=%s deleted_by=%s", kept.State, kept.DeletedBy)
	}

	// and the seed is reusable by a fresh loan
	if err := repo.Create(ctx, testLoan(9, "55555555555555555555555555555555", seed)); err != nil {
		t.Fatalf("seed not reusable after retirement: %v", err)
	}
}

func TestLoanRepository_SaveIntervalsPersistsProgress(t *testing.T) {
	repo := NewLoanRepository(testDB(t))
	ctx := context.Background()

	l := testLoan(9, loanID, seed)
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByLoanIDForUpdate(ctx, loanID)
	if err != nil {
		t.Fatalf("GetByLoanIDForUpdate: %v", err)
	}
	got.Intervals[0].PrincipalPaid = 100_000
	got.Intervals[0].Status = domain.IntervalPaid
	if err := repo.SaveIntervals(ctx, got.Intervals[:1]); err != nil {
		t.Fatalf("SaveIntervals: %v", err)
	}

	again, err := repo.GetByLoanID(ctx, loanID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if again.Intervals[0].Status != domain.IntervalPaid || again.RemainingDebt() != 200_000 {
		t.Fatalf("progress lost: %+v", again.Intervals[0])
	}
}
