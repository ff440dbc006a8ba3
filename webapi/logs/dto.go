package logs

import "time"

// QueryRequest narrows and orders an activity-log query. Fund and user
// entries match as substrings; activity and transaction-type entries match
// the stored display labels.
type QueryRequest struct {
	Since            *time.Time `json:"since"`
	Until            *time.Time `json:"until"`
	AmountMin        *float64   `json:"amountMin" validate:"omitempty,gte=0"`
	AmountMax        *float64   `json:"amountMax" validate:"omitempty,gte=0"`
	Activities       []string   `json:"activities"`
	TransactionTypes []string   `json:"transactionTypes"`
	Currencies       []string   `json:"currencies" validate:"omitempty,dive,uuid4"`
	Funds            []string   `json:"funds"`
	Users            []string   `json:"users"`
	OrderByAmount    bool       `json:"orderByAmount"`
	Desc             bool       `json:"desc"`
}
