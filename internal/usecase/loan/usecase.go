package loan

import (
	"context"
	"encoding/hex"
	"errors"
	"time"

	documentDomain "loanbook/internal/domain/document"
	ledgerDomain "loanbook/internal/domain/ledger"
	domain "loanbook/internal/domain/loan"
	"loanbook/internal/domain/uow"
	"loanbook/internal/usecase/funding"
	ledgerUC "loanbook/internal/usecase/ledger"
	"loanbook/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct {
	ledgers   ledgerDomain.Repository
	loans     domain.Repository
	documents documentDomain.Repository
	uow       uow.UnitOfWork
}

func NewUsecase(ledgers ledgerDomain.Repository, loans domain.Repository, documents documentDomain.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{ledgers: ledgers, loans: loans, documents: documents, uow: tx}
}

func toDTO(l *domain.Loan, ledgerID string, riskScore uint64, docCount int64) *LoanDTO {
	dto := &LoanDTO{
		LoanID:          l.LoanID,
		LedgerID:        ledgerID,
		Seed:            l.Seed,
		BorrowerID:      l.BorrowerID,
		OwnerID:         l.OwnerID,
		SettlementAsset: l.SettlementAsset,
		PaymentOrder:    uint8(l.PaymentOrder),
		State:           string(l.State),
		RemainingDebt:   l.RemainingDebt(),
		RiskScore:       riskScore,
		DocumentCount:   docCount,
		StartTime:       l.StartTime,
		CreatedAt:       l.CreatedAt,
	}
	for i := range l.Intervals {
		iv := &l.Intervals[i]
		dto.Intervals = append(dto.Intervals, IntervalDTO{
			Sequence:      iv.Sequence,
			DueAt:         iv.DueAt,
			Principal:     iv.Principal,
			Interest:      iv.Interest,
			Fee:           iv.Fee,
			PrincipalPaid: iv.PrincipalPaid,
			InterestPaid:  iv.InterestPaid,
			FeePaid:       iv.FeePaid,
			Status:        string(iv.Status),
		})
	}
	return dto
}

// Originate creates, funds and activates a loan as one transaction. Any
// failure leaves no loan, no fund movement and no tracker entry behind.
func (u *Usecase) Originate(ctx context.Context, in OriginateInput) (*LoanDTO, error) {
	if in.CallerID == "" || len(in.CallerID) != 32 ||
		in.BorrowerID == "" || len(in.BorrowerID) != 32 {
		return nil, errors.New("invalid input")
	}
	if in.Seed == "" || len(in.Seed) > 64 {
		return nil, errors.New("invalid seed")
	}
	if _, err := hex.DecodeString(in.Seed); err != nil {
		return nil, errors.New("seed must be hex-encoded")
	}
	order := domain.PaymentOrder(in.PaymentOrder)
	if !order.Valid() {
		return nil, domain.ErrInvalidPaymentOrder
	}

	var dto *LoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		cfg, err := r.Ledgers.GetByLedgerID(ctx, in.LedgerID)
		if err != nil {
			return err
		}

		// A seed may only map to one live loan.
		exists, err := r.Loans.ExistsBySeed(ctx, cfg.ID, in.Seed)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrLoanAlreadyExists
		}

		intervals, err := domain.BuildSchedule(in.DueAt, in.Principal, in.Interest, in.Fee)
		if err != nil {
			return err
		}

		if err := ledgerUC.Authorize(ctx, r.Ledgers, cfg, in.CallerID); err != nil {
			return err
		}

		asset := cfg.SettlementAsset
		if in.Asset != nil && *in.Asset != "" {
			asset = *in.Asset
		}

		l := &domain.Loan{
			LoanID:          id.NewID32(),
			Seed:            in.Seed,
			LedgerRef:       cfg.ID,
			BorrowerID:      in.BorrowerID,
			OwnerID:         in.CallerID,
			SettlementAsset: asset,
			EscrowAccountID: id.NewID32(),
			PaymentOrder:    order,
			State:           domain.StateActive,
			Intervals:       intervals,
		}
		if in.StartTime != nil {
			t := time.Unix(*in.StartTime, 0).UTC()
			l.StartTime = &t
		}

		// Escrow the full scheduled principal before activation.
		required := l.TotalPrincipal()
		if err := funding.Acquire(ctx, r, cfg, in.CallerID, asset, l.EscrowAccountID, required); err != nil {
			return err
		}

		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}

		score := documentDomain.DefaultRiskScore
		if in.RiskScore != nil {
			score = *in.RiskScore
		}
		if err := r.Documents.CreateRiskScore(ctx, &documentDomain.RiskScore{LoanRef: l.ID, Score: score}); err != nil {
			return err
		}

		// The tracker entry is the (ledger, seed) row itself; it became
		// resolvable with the insert above when the tracker is enabled.

		if cfg.AutoPledgeEnabled {
			// Guard against the policy changing mid-transaction: transfer
			// only while the acting party still owns the loan.
			if l.OwnerID != in.CallerID {
				return ledgerDomain.ErrNotAdmin
			}
			l.OwnerID = cfg.AutoPledgeFacility
			if err := r.Loans.Save(ctx, l); err != nil {
				return err
			}
		}

		dto = toDTO(l, cfg.LedgerID, score, 0)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// OriginateSimple originates with the ledger's defaults: settlement asset,
// no start override, default risk score.
func (u *Usecase) OriginateSimple(ctx context.Context, in OriginateInput) (*LoanDTO, error) {
	in.Asset = nil
	in.StartTime = nil
	in.RiskScore = nil
	return u.Originate(ctx, in)
}

// Get returns the loan with its schedule and auxiliary metadata.
func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	return u.describe(ctx, l)
}

func (u *Usecase) describe(ctx context.Context, l *domain.Loan) (*LoanDTO, error) {
	cfg, err := u.ledgers.GetByRef(ctx, l.LedgerRef)
	if err != nil {
		return nil, err
	}
	var score uint64
	if rs, err := u.documents.GetRiskScore(ctx, l.ID); err == nil {
		score = rs.Score
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	count, err := u.documents.CountByLoan(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	return toDTO(l, cfg.LedgerID, score, count), nil
}

// Resolve maps a seed to its live loan via the ledger's tracker.
func (u *Usecase) Resolve(ctx context.Context, ledgerID, seed string) (*LoanDTO, error) {
	l, err := u.lookupBySeed(ctx, ledgerID, seed)
	if err != nil {
		return nil, err
	}
	return u.describe(ctx, l)
}

// Exists reports whether the seed maps to a live loan. Callers use this to
// avoid the lookup miss on Resolve.
func (u *Usecase) Exists(ctx context.Context, ledgerID, seed string) (bool, error) {
	_, err := u.lookupBySeed(ctx, ledgerID, seed)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (u *Usecase) lookupBySeed(ctx context.Context, ledgerID, seed string) (*domain.Loan, error) {
	cfg, err := u.ledgers.GetByLedgerID(ctx, ledgerID)
	if err != nil {
		return nil, err
	}
	if !cfg.TrackerEnabled {
		return nil, domain.ErrTrackerNotFound
	}
	return u.loans.GetBySeed(ctx, cfg.ID, seed)
}

// ResolveLoanID is the seed→loan-id hop used by the seed-addressed variants.
func (u *Usecase) ResolveLoanID(ctx context.Context, ledgerID, seed string) (string, error) {
	l, err := u.lookupBySeed(ctx, ledgerID, seed)
	if err != nil {
		return "", err
	}
	return l.LoanID, nil
}

// UpdateScheduleByIndex replaces fields of one interval. Admin-gated.
func (u *Usecase) UpdateScheduleByIndex(ctx context.Context, in UpdateIntervalInput) error {
	return u.editInterval(ctx, in, func(iv *domain.PaymentInterval) {
		if in.DueAt != nil {
			iv.DueAt = time.Unix(*in.DueAt, 0).UTC()
		}
		if in.Principal != nil {
			iv.Principal = *in.Principal
		}
		if in.Interest != nil {
			iv.Interest = *in.Interest
		}
		if in.Fee != nil {
			iv.Fee = *in.Fee
		}
	})
}

// UpdateFee replaces one interval's fee.
func (u *Usecase) UpdateFee(ctx context.Context, caller, loanID string, index int, fee uint64) error {
	return u.editInterval(ctx, UpdateIntervalInput{CallerID: caller, LoanID: loanID, Index: index},
		func(iv *domain.PaymentInterval) { iv.Fee = fee })
}

// AddFeeInterest adds on top of one interval's fee and interest.
func (u *Usecase) AddFeeInterest(ctx context.Context, caller, loanID string, index int, fee, interest uint64) error {
	return u.editInterval(ctx, UpdateIntervalInput{CallerID: caller, LoanID: loanID, Index: index},
		func(iv *domain.PaymentInterval) {
			iv.Fee += fee
			iv.Interest += interest
		})
}

// UpdateScheduleBySeed resolves the tracker first, then edits.
func (u *Usecase) UpdateScheduleBySeed(ctx context.Context, ledgerID, seed string, in UpdateIntervalInput) error {
	loanID, err := u.ResolveLoanID(ctx, ledgerID, seed)
	if err != nil {
		return err
	}
	in.LoanID = loanID
	return u.UpdateScheduleByIndex(ctx, in)
}

func (u *Usecase) editInterval(ctx context.Context, in UpdateIntervalInput, edit func(iv *domain.PaymentInterval)) error {
	return u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domain.Loan) error {
		cfg, err := r.Ledgers.GetByRef(ctx, l.LedgerRef)
		if err != nil {
			return err
		}
		if err := ledgerUC.Authorize(ctx, r.Ledgers, cfg, in.CallerID); err != nil {
			return err
		}
		for i := range l.Intervals {
			if l.Intervals[i].Sequence != in.Index {
				continue
			}
			edit(&l.Intervals[i])
			return r.Loans.SaveIntervals(ctx, l.Intervals[i:i+1])
		}
		return gorm.ErrRecordNotFound
	})
}

// AddDocument appends to the loan's document collection. Admin-gated.
func (u *Usecase) AddDocument(ctx context.Context, in AddDocumentInput) error {
	if in.Name == "" {
		return errors.New("document name is required")
	}
	return u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domain.Loan) error {
		cfg, err := r.Ledgers.GetByRef(ctx, l.LedgerRef)
		if err != nil {
			return err
		}
		if err := ledgerUC.Authorize(ctx, r.Ledgers, cfg, in.CallerID); err != nil {
			return err
		}
		return r.Documents.Add(ctx, &documentDomain.Document{
			LoanRef:     l.ID,
			Name:        in.Name,
			Description: in.Description,
			Hash:        in.Hash,
		})
	})
}
