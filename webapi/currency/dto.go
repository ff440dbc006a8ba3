package currency

// CurrencyRequest registers or renames a currency.
type CurrencyRequest struct {
	Currency string `json:"currency" validate:"required,min=1,max=50"`
}
