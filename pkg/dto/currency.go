package dto

import "github.com/google/uuid"

// CurrencyRead is the outward representation of a registered currency.
// TotalBalance and Funds are populated only when the listing asks for them.
type CurrencyRead struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"currency"`
	TotalBalance *float64   `json:"totalBalance,omitempty"`
	Funds        []FundRead `json:"funds,omitempty"`
}

// CurrencyCreate registers or renames a currency.
type CurrencyCreate struct {
	Name string
}
