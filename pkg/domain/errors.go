package domain

import "errors"

var (
	// ErrFundNotFound is returned when a fund does not exist or is inactive.
	ErrFundNotFound = errors.New("fund not found")
	// ErrUserNotFound is returned when a user does not exist or is inactive.
	ErrUserNotFound = errors.New("user not found")
	// ErrRoleNotFound is returned when a role id has no matching row.
	ErrRoleNotFound = errors.New("role not found")
	// ErrCurrencyNotFound is returned when a currency id is not registered.
	ErrCurrencyNotFound = errors.New("currency not found")
	// ErrCurrencyExists is returned when registering a currency name that is
	// already active.
	ErrCurrencyExists = errors.New("currency already exists")
	// ErrCurrencyNotRegistered is returned when a deposit names a currency
	// outside the registry. A caller mistake, not a missing resource.
	ErrCurrencyNotRegistered = errors.New("this currency doesn't exist")
	// ErrInsufficientBalance is returned when a withdrawal or transfer asks
	// for more than the fund holds in that currency.
	ErrInsufficientBalance = errors.New(
		"fund has not enough of this currency to make this operation")
	// ErrSameFund is returned when a transfer names the same fund as source
	// and destination.
	ErrSameFund = errors.New("destination is the same as source")
	// ErrAmountNotPositive is returned for zero or negative amounts.
	ErrAmountNotPositive = errors.New("amount must be positive")
	// ErrActivityAmountRequired is returned when a money-moving activity is
	// logged without an amount.
	ErrActivityAmountRequired = errors.New("activity amount is required")
	// ErrUserUnauthorized covers bad credentials, bad tokens and missing roles.
	ErrUserUnauthorized = errors.New("user unauthorized")
	// ErrInvalidToken is returned when a refresh or access token fails
	// validation against the session registry.
	ErrInvalidToken = errors.New("invalid token")
	// ErrUserProtected is returned when deleting the seed admin account.
	ErrUserProtected = errors.New("user cannot be deleted")
)
