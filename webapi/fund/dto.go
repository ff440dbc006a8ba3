package fund

// CreateFundRequest opens a fund.
type CreateFundRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	LocationURL string `json:"locationUrl" validate:"omitempty,url"`
	Address     string `json:"address" validate:"omitempty,max=200"`
	Details     string `json:"details" validate:"omitempty,max=500"`
}

// UpdateFundRequest changes the descriptive fields of a fund.
type UpdateFundRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	LocationURL string `json:"locationUrl" validate:"omitempty,url"`
	Address     string `json:"address" validate:"omitempty,max=200"`
	Details     string `json:"details" validate:"omitempty,max=500"`
}

// TransactionRequest deposits into or withdraws from one fund.
type TransactionRequest struct {
	FundID     string  `json:"fundId" validate:"required,uuid4"`
	CurrencyID string  `json:"currencyId" validate:"required,uuid4"`
	Amount     float64 `json:"amount" validate:"required,gt=0"`
	Details    string  `json:"details" validate:"omitempty,max=500"`
}

// TransferRequest moves an amount between two funds.
type TransferRequest struct {
	SourceID      string  `json:"sourceId" validate:"required,uuid4"`
	DestinationID string  `json:"destinationId" validate:"required,uuid4"`
	CurrencyID    string  `json:"currencyId" validate:"required,uuid4"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	Details       string  `json:"details" validate:"omitempty,max=500"`
}
