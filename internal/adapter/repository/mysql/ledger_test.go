package mysql

import (
	"context"
	"errors"
	"testing"

	domain "loanbook/internal/domain/ledger"
)

func testConfig() *domain.LedgerConfig {
	return &domain.LedgerConfig{
		LedgerID:        "11111111111111111111111111111111",
		Name:            "book-a",
		OwnerID:         owner,
		SettlementAsset: "idr",
		FundingSource:   domain.FundingOriginator,
		EscrowAccountID: "22222222222222222222222222222222",
	}
}

func TestLedgerRepository_CreateAndGet(t *testing.T) {
	repo := NewLedgerRepository(testDB(t))
	ctx := context.Background()

	cfg := testConfig()
	if err := repo.Create(ctx, cfg); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if cfg.ID == 0 {
		t.Fatal("ref not assigned")
	}

	got, err := repo.GetByLedgerID(ctx, cfg.LedgerID)
	if err != nil {
		t.Fatalf("GetByLedgerID: %v", err)
	}
	if got.ID != cfg.ID || got.FundingSource != domain.FundingOriginator {
		t.Fatalf("got %+v", got)
	}

	byRef, err := repo.GetByRef(ctx, cfg.ID)
	if err != nil {
		t.Fatalf("GetByRef: %v", err)
	}
	if byRef.LedgerID != cfg.LedgerID {
		t.Fatalf("got %+v", byRef)
	}
}

func TestLedgerRepository_MissMapsToConfigNotFound(t *testing.T) {
	repo := NewLedgerRepository(testDB(t))
	ctx := context.Background()

	if _, err := repo.GetByLedgerID(ctx, "00000000000000000000000000000000"); !errors.Is(err, domain.ErrConfigNotFound) {
		t.Fatalf("want ErrConfigNotFound, got %v", err)
	}
	if _, err := repo.GetByRef(ctx, 12345); !errors.Is(err, domain.ErrConfigNotFound) {
		t.Fatalf("want ErrConfigNotFound, got %v", err)
	}
}

func TestLedgerRepository_Admins(t *testing.T) {
	repo := NewLedgerRepository(testDB(t))
	ctx := context.Background()

	cfg := testConfig()
	if err := repo.Create(ctx, cfg); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.AddAdmin(ctx, &domain.Admin{LedgerRef: cfg.ID, AdminID: admin}); err != nil {
		t.Fatalf("AddAdmin: %v", err)
	}

	ok, err := repo.HasAdmin(ctx, cfg.ID, admin)
	if err != nil || !ok {
		t.Fatalf("HasAdmin = %v, %v", ok, err)
	}
	ok, err = repo.HasAdmin(ctx, cfg.ID, borrower)
	if err != nil || ok {
		t.Fatalf("HasAdmin(non-admin) = %v, %v", ok, err)
	}
}

func TestLedgerRepository_GrantIsIdempotent(t *testing.T) {
	db := testDB(t)
	repo := NewLedgerRepository(db)
	ctx := context.Background()

	cfg := testConfig()
	if err := repo.Create(ctx, cfg); err != nil {
		t.Fatalf("Create: %v", err)
	}
	const facility = "ffffffffffffffffffffffffffffffff"
	if err := repo.Grant(ctx, cfg.ID, facility); err != nil {
		t.Fatalf("Grant: %v", err)
	}
	if err := repo.Grant(ctx, cfg.ID, facility); err != nil {
		t.Fatalf("repeated Grant: %v", err)
	}

	var n int64
	if err := db.Model(&domain.TransferGrant{}).
		Where("ledger_ref = ? AND account_id = ?", cfg.ID, facility).
		Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("grants = %d", n)
	}
}
