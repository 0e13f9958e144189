package ledger

import (
	"context"
	"errors"

	domain "loanbook/internal/domain/ledger"
	"loanbook/internal/domain/uow"
	"loanbook/pkg/id"

	balanceDomain "loanbook/internal/domain/balance"
)

type Usecase struct {
	ledgers domain.Repository
	uow     uow.UnitOfWork
}

func NewUsecase(ledgers domain.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{ledgers: ledgers, uow: tx}
}

func toDTO(c *domain.LedgerConfig) *LedgerDTO {
	return &LedgerDTO{
		LedgerID:           c.LedgerID,
		Name:               c.Name,
		OwnerID:            c.OwnerID,
		SettlementAsset:    c.SettlementAsset,
		FundingSource:      string(c.FundingSource),
		EscrowAccountID:    c.EscrowAccountID,
		TrackerEnabled:     c.TrackerEnabled,
		AutoPledgeEnabled:  c.AutoPledgeEnabled,
		AutoPledgeFacility: c.AutoPledgeFacility,
		CreatedAt:          c.CreatedAt,
	}
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*LedgerDTO, error) {
	if in.OwnerID == "" || len(in.OwnerID) != 32 || in.Name == "" || in.SettlementAsset == "" {
		return nil, errors.New("invalid input")
	}
	src := domain.FundingSource(in.FundingSource)
	if !src.Valid() {
		return nil, domain.ErrInvalidFundingSource
	}

	cfg := &domain.LedgerConfig{
		LedgerID:        id.NewID32(),
		Name:            in.Name,
		OwnerID:         in.OwnerID,
		SettlementAsset: in.SettlementAsset,
		FundingSource:   src,
		EscrowAccountID: id.NewID32(),
	}

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Ledgers.Create(ctx, cfg); err != nil {
			return err
		}
		for _, a := range in.Admins {
			if err := r.Ledgers.AddAdmin(ctx, &domain.Admin{LedgerRef: cfg.ID, AdminID: a}); err != nil {
				return err
			}
		}
		// Register the settlement asset on first sight. Bridging assets
		// start transfer-locked.
		if _, err := r.Balances.GetAsset(ctx, in.SettlementAsset); err != nil {
			if !errors.Is(err, balanceDomain.ErrAssetNotFound) {
				return err
			}
			asset := &balanceDomain.Asset{
				Code:     in.SettlementAsset,
				Bridging: in.Bridging,
				Locked:   in.Bridging,
			}
			if err := r.Balances.CreateAsset(ctx, asset); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toDTO(cfg), nil
}

func (u *Usecase) Get(ctx context.Context, ledgerID string) (*LedgerDTO, error) {
	cfg, err := u.ledgers.GetByLedgerID(ctx, ledgerID)
	if err != nil {
		return nil, err
	}
	return toDTO(cfg), nil
}

// IsAdmin is true for the ledger owner and any member of the admin set.
func (u *Usecase) IsAdmin(ctx context.Context, ledgerID, caller string) (bool, error) {
	cfg, err := u.ledgers.GetByLedgerID(ctx, ledgerID)
	if err != nil {
		return false, err
	}
	return isAdmin(ctx, u.ledgers, cfg, caller)
}

func isAdmin(ctx context.Context, ledgers domain.Repository, cfg *domain.LedgerConfig, caller string) (bool, error) {
	if caller == cfg.OwnerID {
		return true, nil
	}
	return ledgers.HasAdmin(ctx, cfg.ID, caller)
}

// Authorize is the single admin gate used by every mutating operation.
func Authorize(ctx context.Context, ledgers domain.Repository, cfg *domain.LedgerConfig, caller string) error {
	ok, err := isAdmin(ctx, ledgers, cfg, caller)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotAdmin
	}
	return nil
}

// SetAutoPledge enables/disables facility routing for new loans. It is
// idempotent and also grants the facility transfer rights over the ledger's
// asset and instruments.
func (u *Usecase) SetAutoPledge(ctx context.Context, caller, ledgerID string, enabled bool, facility string) (*LedgerDTO, error) {
	var dto *LedgerDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		cfg, err := r.Ledgers.GetByLedgerID(ctx, ledgerID)
		if err != nil {
			return err
		}
		if err := Authorize(ctx, r.Ledgers, cfg, caller); err != nil {
			return err
		}
		cfg.AutoPledgeEnabled = enabled
		cfg.AutoPledgeFacility = facility
		if err := r.Ledgers.Save(ctx, cfg); err != nil {
			return err
		}
		if enabled && facility != "" {
			if err := r.Ledgers.Grant(ctx, cfg.ID, facility); err != nil {
				return err
			}
		}
		dto = toDTO(cfg)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// EnableTracker switches on seed-addressed lookups for the ledger.
func (u *Usecase) EnableTracker(ctx context.Context, caller, ledgerID string) (*LedgerDTO, error) {
	var dto *LedgerDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		cfg, err := r.Ledgers.GetByLedgerID(ctx, ledgerID)
		if err != nil {
			return err
		}
		if err := Authorize(ctx, r.Ledgers, cfg, caller); err != nil {
			return err
		}
		cfg.TrackerEnabled = true
		if err := r.Ledgers.Save(ctx, cfg); err != nil {
			return err
		}
		dto = toDTO(cfg)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// AutoPledgeAddress returns the configured facility, empty when disabled.
func (u *Usecase) AutoPledgeAddress(ctx context.Context, ledgerID string) (string, error) {
	cfg, err := u.ledgers.GetByLedgerID(ctx, ledgerID)
	if err != nil {
		return "", err
	}
	if !cfg.AutoPledgeEnabled {
		return "", nil
	}
	return cfg.AutoPledgeFacility, nil
}
