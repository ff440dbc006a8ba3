// Package currency manages the registry of currencies funds can hold.
package currency

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/yosvanyperez/fondos/pkg/domain"
	"github.com/yosvanyperez/fondos/pkg/dto"
	"github.com/yosvanyperez/fondos/pkg/repository"
)

// Service is the currency registry service.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a currency Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// List returns the active currencies with their system-wide balance. When
// withFunds is set, each currency also carries the funds holding it.
func (s *Service) List(
	ctx context.Context,
	withFunds bool,
) ([]dto.CurrencyRead, error) {
	currencies, err := s.uow.CurrencyRepository()
	if err != nil {
		return nil, err
	}
	reads, err := currencies.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range reads {
		total, err := currencies.TotalBalance(ctx, reads[i].ID)
		if err != nil {
			return nil, err
		}
		reads[i].TotalBalance = &total
	}
	if !withFunds {
		return reads, nil
	}

	funds, err := s.uow.FundRepository()
	if err != nil {
		return nil, err
	}
	for i := range reads {
		page, err := funds.List(ctx, 0, -1, &dto.FundFilter{
			Currencies: []uuid.UUID{reads[i].ID},
		})
		if err != nil {
			return nil, err
		}
		reads[i].Funds = page.Items
	}
	return reads, nil
}

// Add registers a currency. A name whose row was soft-deleted is reactivated;
// an active duplicate is rejected.
func (s *Service) Add(
	ctx context.Context,
	create dto.CurrencyCreate,
) (added *dto.CurrencyRead, err error) {
	log := s.logger.With("context", "AddCurrency", "name", create.Name)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		currencies, err := uow.CurrencyRepository()
		if err != nil {
			return err
		}
		existing, active, err := currencies.GetByName(ctx, create.Name)
		if err != nil {
			return err
		}
		switch {
		case existing != nil && active:
			return domain.ErrCurrencyExists
		case existing != nil:
			if err := currencies.SetActive(ctx, existing.ID, true); err != nil {
				return err
			}
			added = existing
			return nil
		default:
			added, err = currencies.Create(ctx, create)
			return err
		}
	})
	if err != nil {
		log.Error("Add failed", "error", err)
		return nil, err
	}
	log.Info("Add successful", "currencyID", added.ID)
	return added, nil
}

// Update renames a currency.
func (s *Service) Update(
	ctx context.Context,
	id uuid.UUID,
	create dto.CurrencyCreate,
) (updated *dto.CurrencyRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		currencies, err := uow.CurrencyRepository()
		if err != nil {
			return err
		}
		if err := currencies.Rename(ctx, id, create.Name); err != nil {
			return err
		}
		updated, err = currencies.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete soft-deletes a currency: its balance rows are removed from every
// fund and one withdrawal activity row per zeroed balance records the loss.
func (s *Service) Delete(
	ctx context.Context,
	actorID, id uuid.UUID,
) (deleted *dto.CurrencyRead, err error) {
	log := s.logger.With("context", "DeleteCurrency", "currencyID", id)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		currencies, err := uow.CurrencyRepository()
		if err != nil {
			return err
		}
		funds, err := uow.FundRepository()
		if err != nil {
			return err
		}
		logs, err := uow.ActivityLogRepository()
		if err != nil {
			return err
		}
		deleted, err = currencies.Get(ctx, id)
		if err != nil {
			return err
		}
		affected, err := funds.RemoveBalancesByCurrency(ctx, id)
		if err != nil {
			return err
		}
		if err := currencies.SetActive(ctx, id, false); err != nil {
			return err
		}
		withdrawal := domain.TransactionWithdrawal
		for _, balance := range affected {
			amount := balance.Amount
			err = logs.Append(ctx, dto.ActivityAppend{
				Activity:        domain.ActivityWithdrawal,
				FundID:          balance.FundID,
				UserID:          actorID,
				CurrencyID:      &id,
				TransactionType: &withdrawal,
				Amount:          &amount,
				Details:         "Currency " + deleted.Name + " deleted",
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error("Delete failed", "error", err)
		return nil, err
	}
	log.Info("Delete successful")
	return deleted, nil
}
