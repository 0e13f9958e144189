package ledger

import "time"

type CreateInput struct {
	OwnerID         string   `json:"owner_id"`
	Name            string   `json:"name"`
	SettlementAsset string   `json:"settlement_asset"`
	Bridging        bool     `json:"bridging"`
	FundingSource   string   `json:"funding_source"`
	Admins          []string `json:"admins"`
}

type LedgerDTO struct {
	LedgerID           string    `json:"ledger_id"`
	Name               string    `json:"name"`
	OwnerID            string    `json:"owner_id"`
	SettlementAsset    string    `json:"settlement_asset"`
	FundingSource      string    `json:"funding_source"`
	EscrowAccountID    string    `json:"escrow_account_id"`
	TrackerEnabled     bool      `json:"tracker_enabled"`
	AutoPledgeEnabled  bool      `json:"auto_pledge_enabled"`
	AutoPledgeFacility string    `json:"auto_pledge_facility,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}
