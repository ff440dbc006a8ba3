package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/yosvanyperez/fondos/pkg/domain"
)

// ActivityAppend is one audit row queued on the transaction that performs the
// ledger mutation it records.
type ActivityAppend struct {
	Activity        domain.FundActivity
	FundID          uuid.UUID
	UserID          uuid.UUID
	CurrencyID      *uuid.UUID
	TransactionType *domain.TransactionType
	Amount          *float64
	Details         string
}

// Validate enforces that money-moving activities carry an amount. A missing
// amount on a deposit/withdrawal/transfer leg is a caller bug, not a default.
func (a ActivityAppend) Validate() error {
	if a.Activity.RequiresAmount() && a.Amount == nil {
		return domain.ErrActivityAmountRequired
	}
	return nil
}

// ActivityLogRead resolves foreign keys to display names at read time.
type ActivityLogRead struct {
	ID              uuid.UUID `json:"id"`
	Username        string    `json:"user"`
	FundName        string    `json:"fund"`
	Currency        string    `json:"currency,omitempty"`
	Activity        string    `json:"activity"`
	TransactionType string    `json:"transactionType,omitempty"`
	Amount          float64   `json:"amount"`
	Details         string    `json:"details,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ActivityFilter narrows and orders an activity-log query. Fund and user
// entries match as substrings, OR-combined; activity and transaction-type
// entries match the stored display labels.
type ActivityFilter struct {
	Since            *time.Time
	Until            *time.Time
	AmountMin        *float64
	AmountMax        *float64
	Activities       []string
	TransactionTypes []string
	Currencies       []uuid.UUID
	Funds            []string
	Users            []string
	OrderByAmount    bool
	Desc             bool
}
