// Package repository provides the GORM-backed implementations of the
// persistence contracts in pkg/repository.
package repository

import (
	"context"

	"github.com/yosvanyperez/fondos/infra/repository/activitylog"
	"github.com/yosvanyperez/fondos/infra/repository/currency"
	"github.com/yosvanyperez/fondos/infra/repository/fund"
	"github.com/yosvanyperez/fondos/infra/repository/role"
	"github.com/yosvanyperez/fondos/infra/repository/session"
	"github.com/yosvanyperez/fondos/infra/repository/user"
	"github.com/yosvanyperez/fondos/pkg/repository"
	"gorm.io/gorm"
)

// UoW provides transaction boundary and repository access in one abstraction.
// All repositories obtained inside Do share the transaction session, so a
// ledger mutation and its activity-log rows commit or roll back together.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs the given function in a transaction boundary, providing a UoW whose
// repositories are bound to the transaction.
func (u *UoW) Do(
	ctx context.Context,
	fn func(uow repository.UnitOfWork) error,
) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

// session returns the transaction when inside Do, the base connection
// otherwise.
func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UoW) FundRepository() (repository.FundRepository, error) {
	return fund.New(u.session()), nil
}

func (u *UoW) CurrencyRepository() (repository.CurrencyRepository, error) {
	return currency.New(u.session()), nil
}

func (u *UoW) UserRepository() (repository.UserRepository, error) {
	return user.New(u.session()), nil
}

func (u *UoW) RoleRepository() (repository.RoleRepository, error) {
	return role.New(u.session()), nil
}

func (u *UoW) ActivityLogRepository() (repository.ActivityLogRepository, error) {
	return activitylog.New(u.session()), nil
}

func (u *UoW) SessionRepository() (repository.SessionRepository, error) {
	return session.New(u.session()), nil
}
