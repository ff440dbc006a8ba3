package activitylog

import (
	"time"

	"github.com/google/uuid"
	"github.com/yosvanyperez/fondos/infra/repository/currency"
	"github.com/yosvanyperez/fondos/infra/repository/fund"
	"github.com/yosvanyperez/fondos/infra/repository/user"
)

// ActivityLog is one append-only audit row. Rows are only ever inserted, by
// the same transaction that performs the ledger mutation they record.
type ActivityLog struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID `gorm:"type:uuid;index;not null"`
	User            user.User
	FundID          uuid.UUID `gorm:"type:uuid;index;not null"`
	Fund            fund.Fund
	CurrencyID      *uuid.UUID `gorm:"type:uuid;index"`
	Currency        *currency.Currency
	Activity        string  `gorm:"size:50;not null"`
	TransactionType *string `gorm:"size:50"`
	Amount          float64
	Details         string `gorm:"size:255"`
	CreatedAt       time.Time
}

// TableName specifies the table name for the ActivityLog model.
func (ActivityLog) TableName() string {
	return "activity_logs"
}
