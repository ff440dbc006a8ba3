package dto

import (
	"time"

	"github.com/google/uuid"
)

// BalanceRead is the balance of one currency within one fund.
type BalanceRead struct {
	CurrencyID uuid.UUID `json:"currencyId"`
	Currency   string    `json:"currency"`
	Amount     float64   `json:"amount"`
}

// FundRead is a read-optimized DTO for fund queries and API responses.
type FundRead struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	LocationURL string        `json:"locationUrl,omitempty"`
	Address     string        `json:"address,omitempty"`
	Details     string        `json:"details,omitempty"`
	Owner       *UserRead     `json:"user,omitempty"`
	Balances    []BalanceRead `json:"currencies"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// FundCreate carries the fields for a new fund.
type FundCreate struct {
	Name        string
	LocationURL string
	Address     string
	Details     string
}

// FundUpdate carries the mutable fund fields.
type FundUpdate struct {
	Name        string
	LocationURL string
	Address     string
	Details     string
}

// Fund list ordering options.
const (
	FundOrderByName    = "funds"
	FundOrderByOwner   = "usernames"
	FundOrderByCreated = "create_at"
)

// FundFilter narrows and orders a paginated fund listing. Name and username
// entries match as substrings, OR-combined.
type FundFilter struct {
	Names      []string
	Usernames  []string
	Currencies []uuid.UUID
	OrderBy    string
	Desc       bool
}

// TransactionInput is a deposit or withdrawal request against one fund.
type TransactionInput struct {
	FundID     uuid.UUID
	CurrencyID uuid.UUID
	Amount     float64
	Details    string
}

// TransferInput moves an amount of one currency between two funds.
type TransferInput struct {
	SourceID      uuid.UUID
	DestinationID uuid.UUID
	CurrencyID    uuid.UUID
	Amount        float64
	Details       string
}

// FundBalance is one (fund, amount) pair affected by a currency deletion.
type FundBalance struct {
	FundID uuid.UUID
	Amount float64
}
