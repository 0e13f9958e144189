package repayment

import (
	"context"
	"errors"
	"testing"
	"time"

	ledgerDomain "loanbook/internal/domain/ledger"
	domain "loanbook/internal/domain/loan"
	"loanbook/internal/domain/uow"
	"loanbook/internal/testutil/balancemock"
	"loanbook/internal/testutil/docmock"
	"loanbook/internal/testutil/ledgermock"
	"loanbook/internal/testutil/loanmock"
	"loanbook/internal/testutil/uowmock"
)

const (
	owner    = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	borrower = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	stranger = "dddddddddddddddddddddddddddddddd"
	ledgerID = "11111111111111111111111111111111"
	loanID   = "33333333333333333333333333333333"
	escrow   = "44444444444444444444444444444444"
	seed     = "c0ffee"
)

type fixture struct {
	cfg     *ledgerDomain.LedgerConfig
	loan    *domain.Loan
	ledgers *ledgermock.Repo
	loans   *loanmock.Repo
	docs    *docmock.Repo
	store   *balancemock.Store
	retired bool
	uc      *Usecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	f := &fixture{
		cfg: &ledgerDomain.LedgerConfig{
			ID:             9,
			LedgerID:       ledgerID,
			OwnerID:        owner,
			TrackerEnabled: true,
		},
		docs:  &docmock.Repo{},
		store: balancemock.New().AddAsset("idr", false),
	}
	f.loan = &domain.Loan{
		ID:              42,
		LoanID:          loanID,
		Seed:            seed,
		LedgerRef:       9,
		BorrowerID:      borrower,
		OwnerID:         owner,
		SettlementAsset: "idr",
		EscrowAccountID: escrow,
		PaymentOrder:    domain.PaymentOrderAll,
		State:           domain.StateActive,
	}
	for i := 0; i < 3; i++ {
		f.loan.Intervals = append(f.loan.Intervals, domain.PaymentInterval{
			Sequence:  i,
			DueAt:     base.AddDate(0, i+1, 0),
			Principal: 100_000,
			Status:    domain.IntervalPending,
		})
	}
	f.ledgers = &ledgermock.Repo{
		GetByLedgerIDFn: func(ctx context.Context, id string) (*ledgerDomain.LedgerConfig, error) {
			return f.cfg, nil
		},
		GetByRefFn: func(ctx context.Context, ref uint64) (*ledgerDomain.LedgerConfig, error) {
			return f.cfg, nil
		},
	}
	f.loans = &loanmock.Repo{
		GetByLoanIDForUpdateFn: func(ctx context.Context, id string) (*domain.Loan, error) {
			if id != loanID {
				return nil, domain.ErrTrackerNotFound
			}
			return f.loan, nil
		},
		GetBySeedFn: func(ctx context.Context, ref uint64, s string) (*domain.Loan, error) {
			return f.loan, nil
		},
		RetireFn: func(ctx context.Context, l *domain.Loan, deletedBy string) error {
			f.retired = true
			return nil
		},
	}
	f.uc = NewUsecase(f.ledgers, f.loans, uowmock.Pass(uow.Repos{
		Ledgers:   f.ledgers,
		Loans:     f.loans,
		Documents: f.docs,
		Balances:  f.store,
	}))
	return f
}

func TestRepay_PartialMovesFundsToOwner(t *testing.T) {
	f := newFixture(t)
	f.store.Set(borrower, "idr", 200_000)

	dto, err := f.uc.Repay(context.Background(), RepayInput{
		CallerID: borrower, LoanID: loanID, Amount: 150_000,
	})
	if err != nil {
		t.Fatalf("Repay: %v", err)
	}
	if dto.Applied != 150_000 || dto.RemainingDebt != 150_000 || dto.Retired {
		t.Fatalf("dto: %+v", dto)
	}

	ctx := context.Background()
	got, _ := f.store.GetBalance(ctx, borrower, "idr")
	if got != 50_000 {
		t.Fatalf("borrower balance = %d", got)
	}
	got, _ = f.store.GetBalance(ctx, owner, "idr")
	if got != 150_000 {
		t.Fatalf("owner balance = %d", got)
	}
	if f.retired {
		t.Fatal("loan retired at half debt")
	}
}

func TestRepay_ClampsToRemainingDebt(t *testing.T) {
	f := newFixture(t)
	f.store.Set(borrower, "idr", 1_000_000)

	dto, err := f.uc.Repay(context.Background(), RepayInput{
		CallerID: borrower, LoanID: loanID, Amount: 1_000_000,
	})
	if err != nil {
		t.Fatalf("Repay: %v", err)
	}
	if dto.Requested != 1_000_000 || dto.Applied != 300_000 {
		t.Fatalf("dto: %+v", dto)
	}
	got, _ := f.store.GetBalance(context.Background(), borrower, "idr")
	if got != 700_000 {
		t.Fatalf("borrower charged %d over the debt", 1_000_000-got)
	}
}

func TestRepay_FullRetiresAndReleasesEscrow(t *testing.T) {
	f := newFixture(t)
	f.store.Set(borrower, "idr", 300_000)
	f.store.Set(escrow, "idr", 300_000)

	var docsDropped bool
	f.docs.DeleteAllForLoanFn = func(ctx context.Context, ref uint64) error {
		if ref != 42 {
			t.Fatalf("dropping docs for loan %d", ref)
		}
		docsDropped = true
		return nil
	}

	dto, err := f.uc.Repay(context.Background(), RepayInput{
		CallerID: borrower, LoanID: loanID, Amount: 300_000,
	})
	if err != nil {
		t.Fatalf("Repay: %v", err)
	}
	if !dto.Retired || dto.RemainingDebt != 0 {
		t.Fatalf("dto: %+v", dto)
	}
	if !f.retired || !docsDropped {
		t.Fatal("retirement must drop docs and soft-delete the loan")
	}

	ctx := context.Background()
	got, _ := f.store.GetBalance(ctx, escrow, "idr")
	if got != 0 {
		t.Fatalf("escrow balance = %d after retirement", got)
	}
	// repayment plus the released escrow
	got, _ = f.store.GetBalance(ctx, owner, "idr")
	if got != 600_000 {
		t.Fatalf("owner balance = %d", got)
	}
}

func TestRepay_RejectsNonBorrower(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Repay(context.Background(), RepayInput{
		CallerID: stranger, LoanID: loanID, Amount: 1,
	})
	if !errors.Is(err, domain.ErrNotBorrower) {
		t.Fatalf("want ErrNotBorrower, got %v", err)
	}
}

func TestRepay_BridgingTopsUpBorrower(t *testing.T) {
	f := newFixture(t)
	f.store.AddAsset("musd", true)
	f.loan.SettlementAsset = "musd"
	f.store.Set(borrower, "musd", 100_000)

	dto, err := f.uc.Repay(context.Background(), RepayInput{
		CallerID: borrower, LoanID: loanID, Amount: 150_000,
	})
	if err != nil {
		t.Fatalf("Repay: %v", err)
	}
	if dto.Applied != 150_000 {
		t.Fatalf("applied = %d", dto.Applied)
	}
	if f.store.Minted != 50_000 {
		t.Fatalf("minted = %d, want the shortfall", f.store.Minted)
	}
}

func TestRepayHistorical_RequiresAdminCosigner(t *testing.T) {
	f := newFixture(t)
	f.store.Set(borrower, "idr", 200_000)
	asOf := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err := f.uc.RepayHistorical(context.Background(), HistoricalInput{
		CallerID: borrower, AdminID: stranger, LoanID: loanID,
		Amount: 100_000, AsOf: asOf.Unix(),
	})
	if !errors.Is(err, ledgerDomain.ErrNotAdmin) {
		t.Fatalf("want ErrNotAdmin, got %v", err)
	}

	dto, err := f.uc.RepayHistorical(context.Background(), HistoricalInput{
		CallerID: borrower, AdminID: owner, LoanID: loanID,
		Amount: 100_000, AsOf: asOf.Unix(),
	})
	if err != nil {
		t.Fatalf("RepayHistorical: %v", err)
	}
	if !dto.PaidAt.Equal(asOf) {
		t.Fatalf("paid at %v, want the backfilled time", dto.PaidAt)
	}
	if f.loan.Intervals[0].PaidAt == nil || !f.loan.Intervals[0].PaidAt.Equal(asOf) {
		t.Fatalf("interval paid at %v", f.loan.Intervals[0].PaidAt)
	}
}

func TestRepayBySeed_TrackerGate(t *testing.T) {
	f := newFixture(t)
	f.cfg.TrackerEnabled = false

	_, err := f.uc.RepayBySeed(context.Background(), RepayBySeedInput{
		CallerID: borrower, LedgerID: ledgerID, Seed: seed, Amount: 1,
	})
	if !errors.Is(err, domain.ErrTrackerNotFound) {
		t.Fatalf("want ErrTrackerNotFound, got %v", err)
	}

	f.cfg.TrackerEnabled = true
	f.store.Set(borrower, "idr", 100_000)
	dto, err := f.uc.RepayBySeed(context.Background(), RepayBySeedInput{
		CallerID: borrower, LedgerID: ledgerID, Seed: seed, Amount: 100_000,
	})
	if err != nil {
		t.Fatalf("RepayBySeed: %v", err)
	}
	if dto.LoanID != loanID {
		t.Fatalf("resolved loan %s", dto.LoanID)
	}
}

func TestRepay_ZeroOnRetiredScheduleIsNoop(t *testing.T) {
	f := newFixture(t)
	f.store.Set(borrower, "idr", 300_000)
	if _, err := f.uc.Repay(context.Background(), RepayInput{CallerID: borrower, LoanID: loanID, Amount: 300_000}); err != nil {
		t.Fatalf("setup repay: %v", err)
	}

	dto, err := f.uc.Repay(context.Background(), RepayInput{CallerID: borrower, LoanID: loanID, Amount: 50_000})
	if err != nil {
		t.Fatalf("Repay: %v", err)
	}
	if dto.Applied != 0 {
		t.Fatalf("applied = %d against zero debt", dto.Applied)
	}
	got, _ := f.store.GetBalance(context.Background(), borrower, "idr")
	if got != 0 {
		t.Fatalf("borrower balance moved: %d", got)
	}
}
