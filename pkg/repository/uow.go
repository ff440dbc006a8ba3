package repository

import "context"

// UnitOfWork is the transaction boundary shared by a ledger mutation and its
// audit rows. Do runs fn inside one database transaction; repositories
// obtained from the UnitOfWork passed to fn are bound to that transaction, so
// the mutation and its activity-log inserts commit or roll back together.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	FundRepository() (FundRepository, error)
	CurrencyRepository() (CurrencyRepository, error)
	UserRepository() (UserRepository, error)
	RoleRepository() (RoleRepository, error)
	ActivityLogRepository() (ActivityLogRepository, error)
	SessionRepository() (SessionRepository, error)
}
