// Package app wires the services together from their shared dependencies.
package app

import (
	"log/slog"

	"github.com/yosvanyperez/fondos/pkg/config"
	"github.com/yosvanyperez/fondos/pkg/repository"
	activitysvc "github.com/yosvanyperez/fondos/pkg/service/activity"
	authsvc "github.com/yosvanyperez/fondos/pkg/service/auth"
	currencysvc "github.com/yosvanyperez/fondos/pkg/service/currency"
	fundsvc "github.com/yosvanyperez/fondos/pkg/service/fund"
	rolesvc "github.com/yosvanyperez/fondos/pkg/service/role"
	usersvc "github.com/yosvanyperez/fondos/pkg/service/user"
)

// Deps contains the dependencies shared by every service.
type Deps struct {
	Uow    repository.UnitOfWork
	Logger *slog.Logger
}

// App holds the configured services.
type App struct {
	Deps            *Deps
	Config          *config.App
	AuthService     *authsvc.Service
	UserService     *usersvc.Service
	RoleService     *rolesvc.Service
	FundService     *fundsvc.Service
	CurrencyService *currencysvc.Service
	ActivityService *activitysvc.Service
}

// New builds the application from its dependencies.
func New(deps *Deps, cfg *config.App) *App {
	return &App{
		Deps:            deps,
		Config:          cfg,
		AuthService:     authsvc.New(deps.Uow, cfg.Jwt, deps.Logger),
		UserService:     usersvc.New(deps.Uow, deps.Logger),
		RoleService:     rolesvc.New(deps.Uow),
		FundService:     fundsvc.New(deps.Uow, deps.Logger),
		CurrencyService: currencysvc.New(deps.Uow, deps.Logger),
		ActivityService: activitysvc.New(deps.Uow, deps.Logger),
	}
}
