package main

import (
	"fmt"
	"log/slog"

	log "github.com/charmbracelet/log"
	"github.com/yosvanyperez/fondos/infra"
	infrarepo "github.com/yosvanyperez/fondos/infra/repository"
	"github.com/yosvanyperez/fondos/pkg/app"
	"github.com/yosvanyperez/fondos/pkg/config"
	"github.com/yosvanyperez/fondos/webapi"
)

// @title Fondos API
// @version 1.0.0
// @description Multi-tenant fund bookkeeping API
// @host localhost:3000
// @BasePath /
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description "Enter your Bearer token in the format: `Bearer {token}`"
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	logger := slog.Default()
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := infrarepo.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	if err := infrarepo.SeedAdmin(db, cfg.Admin); err != nil {
		return fmt.Errorf("failed to seed administrator: %w", err)
	}

	a := app.New(&app.Deps{
		Uow:    infrarepo.NewUoW(db),
		Logger: logger,
	}, cfg)
	fiberApp := webapi.SetupApp(a)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting server",
		"env", cfg.Env,
		"address", addr,
		"scheme", cfg.Server.Scheme,
	)
	return fiberApp.Listen(addr)
}
