package fund

import (
	"time"

	"github.com/google/uuid"
	"github.com/yosvanyperez/fondos/infra/repository/currency"
	"github.com/yosvanyperez/fondos/infra/repository/user"
)

// Fund is a fund record in the database. Soft deletion flips Active and sets
// DeletedAt; the name column is never mutated.
type Fund struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID         *uuid.UUID `gorm:"type:uuid;index"`
	User           *user.User
	Active         bool   `gorm:"not null;default:true"`
	Name           string `gorm:"size:255;not null"`
	Address        string `gorm:"size:255"`
	Details        string `gorm:"size:255"`
	LocationURL    string `gorm:"size:255"`
	CreatedAt      time.Time
	DeletedAt      *time.Time
	FundCurrencies []FundCurrency
}

// TableName specifies the table name for the Fund model.
func (Fund) TableName() string {
	return "funds"
}

// FundCurrency is the balance of one currency within one fund. Rows exist
// only for strictly positive amounts; a balance reaching zero is pruned.
type FundCurrency struct {
	FundID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	CurrencyID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Currency   currency.Currency
	Amount     float64 `gorm:"not null"`
}

// TableName specifies the table name for the FundCurrency model.
func (FundCurrency) TableName() string {
	return "fund_currencies"
}
