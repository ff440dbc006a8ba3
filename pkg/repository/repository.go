// Package repository defines the persistence contracts consumed by the
// services. Implementations live in infra/repository; tests use the in-memory
// fakes from internal/fixtures/memrepo.
package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yosvanyperez/fondos/pkg/dto"
)

// FundRepository owns Fund and FundCurrency rows. Balance mutations go
// through BalanceForUpdate/SetBalance so the service layer controls the
// read-modify-write under the surrounding transaction's row lock.
type FundRepository interface {
	Create(ctx context.Context, create dto.FundCreate) (*dto.FundRead, error)
	// Get returns an active fund with owner and balances resolved, or
	// domain.ErrFundNotFound.
	Get(ctx context.Context, id uuid.UUID) (*dto.FundRead, error)
	List(
		ctx context.Context,
		page, size int,
		filter *dto.FundFilter,
	) (*dto.Page[dto.FundRead], error)
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]dto.FundRead, error)
	Update(ctx context.Context, id uuid.UUID, update dto.FundUpdate) error
	// SetOwner attaches a fund to a user, or detaches it when userID is nil.
	SetOwner(ctx context.Context, fundID uuid.UUID, userID *uuid.UUID) error
	// DetachOwner clears the owner reference on every fund the user owns.
	DetachOwner(ctx context.Context, userID uuid.UUID) error
	// SoftDelete marks the fund inactive and removes its balance rows.
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// BalanceForUpdate returns the balance row locked for the rest of the
	// transaction, or nil when the fund holds none of the currency.
	BalanceForUpdate(
		ctx context.Context,
		fundID, currencyID uuid.UUID,
	) (*dto.BalanceRead, error)
	// SetBalance upserts the balance row; an amount of exactly zero prunes it.
	SetBalance(
		ctx context.Context,
		fundID, currencyID uuid.UUID,
		amount float64,
	) error
	// RemoveBalancesByCurrency deletes every balance row of one currency and
	// returns the (fund, amount) pairs that were zeroed.
	RemoveBalancesByCurrency(
		ctx context.Context,
		currencyID uuid.UUID,
	) ([]dto.FundBalance, error)
}

// CurrencyRepository owns the currency registry.
type CurrencyRepository interface {
	// Get returns an active currency or domain.ErrCurrencyNotFound.
	Get(ctx context.Context, id uuid.UUID) (*dto.CurrencyRead, error)
	// GetByName looks a currency up regardless of its active flag.
	GetByName(ctx context.Context, name string) (*dto.CurrencyRead, bool, error)
	List(ctx context.Context) ([]dto.CurrencyRead, error)
	Create(ctx context.Context, create dto.CurrencyCreate) (*dto.CurrencyRead, error)
	Rename(ctx context.Context, id uuid.UUID, name string) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	TotalBalance(ctx context.Context, id uuid.UUID) (float64, error)
}

// UserRepository owns user rows and their password material.
type UserRepository interface {
	Create(ctx context.Context, create dto.UserCreate) (*dto.UserRead, error)
	// Get returns an active user or domain.ErrUserNotFound.
	Get(ctx context.Context, id uuid.UUID) (*dto.UserRead, error)
	GetByUsername(ctx context.Context, username string) (*dto.UserRead, error)
	GetByEmail(ctx context.Context, email string) (*dto.UserRead, error)
	GetCredentials(ctx context.Context, id uuid.UUID) (*dto.Credentials, error)
	List(
		ctx context.Context,
		page, size int,
		keywords []string,
		withRole bool,
	) (*dto.Page[dto.UserRead], error)
	Update(ctx context.Context, id uuid.UUID, update dto.UserUpdate) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hash, salt []byte) error
	// SoftDelete marks the user inactive; the username stays intact.
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// RoleRepository reads the fixed role set.
type RoleRepository interface {
	List(ctx context.Context) ([]dto.RoleRead, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.RoleRead, error)
}

// ActivityLogRepository appends and queries the audit trail. Append is only
// ever called inside the transaction performing the ledger mutation.
type ActivityLogRepository interface {
	Append(ctx context.Context, entry dto.ActivityAppend) error
	// Query applies the filter; a non-nil fundScope additionally restricts
	// rows to the given funds (assessor scoping).
	Query(
		ctx context.Context,
		page, size int,
		filter *dto.ActivityFilter,
		fundScope []uuid.UUID,
	) (*dto.Page[dto.ActivityLogRead], error)
}

// SessionRepository is the persisted refresh-token registry.
type SessionRepository interface {
	Create(ctx context.Context, create dto.SessionCreate) error
	GetByRefreshHash(ctx context.Context, hash string) (*dto.SessionRead, error)
	Revoke(ctx context.Context, id uuid.UUID) error
}
