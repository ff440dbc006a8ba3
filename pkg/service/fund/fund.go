// Package fund implements the fund ledger: deposits, withdrawals, transfers
// and fund lifecycle. Every mutation runs inside one UnitOfWork transaction
// together with the activity-log rows that record it.
package fund

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/yosvanyperez/fondos/pkg/domain"
	"github.com/yosvanyperez/fondos/pkg/dto"
	"github.com/yosvanyperez/fondos/pkg/repository"
)

// Service is the fund ledger service.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a fund Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Create opens a fund with no balances and records a CreateFund activity row.
func (s *Service) Create(
	ctx context.Context,
	actorID uuid.UUID,
	create dto.FundCreate,
) (created *dto.FundRead, err error) {
	log := s.logger.With("context", "CreateFund", "actor", actorID)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		funds, err := uow.FundRepository()
		if err != nil {
			return err
		}
		logs, err := uow.ActivityLogRepository()
		if err != nil {
			return err
		}
		created, err = funds.Create(ctx, create)
		if err != nil {
			return err
		}
		return logs.Append(ctx, dto.ActivityAppend{
			Activity: domain.ActivityCreateFund,
			FundID:   created.ID,
			UserID:   actorID,
			Details:  create.Details,
		})
	})
	if err != nil {
		log.Error("Create failed", "error", err)
		return nil, err
	}
	log.Info("Create successful", "fundID", created.ID)
	return created, nil
}

// Get returns one active fund with owner and balances resolved.
func (s *Service) Get(
	ctx context.Context,
	id uuid.UUID,
) (*dto.FundRead, error) {
	funds, err := s.uow.FundRepository()
	if err != nil {
		return nil, err
	}
	return funds.Get(ctx, id)
}

// List returns a filtered, ordered page of active funds.
func (s *Service) List(
	ctx context.Context,
	page, size int,
	filter *dto.FundFilter,
) (*dto.Page[dto.FundRead], error) {
	funds, err := s.uow.FundRepository()
	if err != nil {
		return nil, err
	}
	return funds.List(ctx, page, size, filter)
}

// ListByOwner returns the active funds owned by one user.
func (s *Service) ListByOwner(
	ctx context.Context,
	userID uuid.UUID,
) ([]dto.FundRead, error) {
	funds, err := s.uow.FundRepository()
	if err != nil {
		return nil, err
	}
	return funds.ListByOwner(ctx, userID)
}

// Update changes the descriptive fields of a fund.
func (s *Service) Update(
	ctx context.Context,
	id uuid.UUID,
	update dto.FundUpdate,
) (updated *dto.FundRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		funds, err := uow.FundRepository()
		if err != nil {
			return err
		}
		if err := funds.Update(ctx, id, update); err != nil {
			return err
		}
		updated, err = funds.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Deposit adds an amount of a registered currency to a fund, creating the
// balance row when none exists.
func (s *Service) Deposit(
	ctx context.Context,
	actorID uuid.UUID,
	in dto.TransactionInput,
) (fund *dto.FundRead, err error) {
	log := s.logger.With(
		"context", "Deposit", "fundID", in.FundID, "currencyID", in.CurrencyID)
	if in.Amount <= 0 {
		return nil, domain.ErrAmountNotPositive
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		funds, err := uow.FundRepository()
		if err != nil {
			return err
		}
		currencies, err := uow.CurrencyRepository()
		if err != nil {
			return err
		}
		logs, err := uow.ActivityLogRepository()
		if err != nil {
			return err
		}
		if _, err := funds.Get(ctx, in.FundID); err != nil {
			return err
		}
		if _, err := currencies.Get(ctx, in.CurrencyID); err != nil {
			if errors.Is(err, domain.ErrCurrencyNotFound) {
				return domain.ErrCurrencyNotRegistered
			}
			return err
		}
		balance, err := funds.BalanceForUpdate(ctx, in.FundID, in.CurrencyID)
		if err != nil {
			return err
		}
		amount := in.Amount
		if balance != nil {
			amount += balance.Amount
		}
		err = funds.SetBalance(ctx, in.FundID, in.CurrencyID, amount)
		if err != nil {
			return err
		}
		err = logs.Append(ctx, transactionEntry(actorID, in, domain.ActivityDeposit))
		if err != nil {
			return err
		}
		fund, err = funds.Get(ctx, in.FundID)
		return err
	})
	if err != nil {
		log.Error("Deposit failed", "error", err)
		return nil, err
	}
	log.Info("Deposit successful", "amount", in.Amount)
	return fund, nil
}

// Withdraw removes an amount of a currency from a fund. The balance row is
// pruned when it reaches exactly zero.
func (s *Service) Withdraw(
	ctx context.Context,
	actorID uuid.UUID,
	in dto.TransactionInput,
) (fund *dto.FundRead, err error) {
	log := s.logger.With(
		"context", "Withdraw", "fundID", in.FundID, "currencyID", in.CurrencyID)
	if in.Amount <= 0 {
		return nil, domain.ErrAmountNotPositive
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		funds, err := uow.FundRepository()
		if err != nil {
			return err
		}
		logs, err := uow.ActivityLogRepository()
		if err != nil {
			return err
		}
		if _, err := funds.Get(ctx, in.FundID); err != nil {
			return err
		}
		balance, err := funds.BalanceForUpdate(ctx, in.FundID, in.CurrencyID)
		if err != nil {
			return err
		}
		if balance == nil || balance.Amount < in.Amount {
			return domain.ErrInsufficientBalance
		}
		err = funds.SetBalance(
			ctx, in.FundID, in.CurrencyID, balance.Amount-in.Amount)
		if err != nil {
			return err
		}
		err = logs.Append(
			ctx, transactionEntry(actorID, in, domain.ActivityWithdrawal))
		if err != nil {
			return err
		}
		fund, err = funds.Get(ctx, in.FundID)
		return err
	})
	if err != nil {
		log.Error("Withdraw failed", "error", err)
		return nil, err
	}
	log.Info("Withdraw successful", "amount", in.Amount)
	return fund, nil
}

// Transfer moves an amount of one currency between two funds. It records two
// activity rows: a withdrawal leg on the source and a deposit leg on the
// destination.
func (s *Service) Transfer(
	ctx context.Context,
	actorID uuid.UUID,
	in dto.TransferInput,
) (source, destination *dto.FundRead, err error) {
	log := s.logger.With(
		"context", "Transfer",
		"sourceID", in.SourceID,
		"destinationID", in.DestinationID,
	)
	if in.Amount <= 0 {
		return nil, nil, domain.ErrAmountNotPositive
	}
	if in.SourceID == in.DestinationID {
		return nil, nil, domain.ErrSameFund
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		funds, err := uow.FundRepository()
		if err != nil {
			return err
		}
		logs, err := uow.ActivityLogRepository()
		if err != nil {
			return err
		}
		if _, err := funds.Get(ctx, in.SourceID); err != nil {
			return err
		}
		if _, err := funds.Get(ctx, in.DestinationID); err != nil {
			return err
		}

		fromBalance, err := funds.BalanceForUpdate(
			ctx, in.SourceID, in.CurrencyID)
		if err != nil {
			return err
		}
		if fromBalance == nil || fromBalance.Amount < in.Amount {
			return domain.ErrInsufficientBalance
		}
		toBalance, err := funds.BalanceForUpdate(
			ctx, in.DestinationID, in.CurrencyID)
		if err != nil {
			return err
		}

		err = funds.SetBalance(
			ctx, in.SourceID, in.CurrencyID, fromBalance.Amount-in.Amount)
		if err != nil {
			return err
		}
		toAmount := in.Amount
		if toBalance != nil {
			toAmount += toBalance.Amount
		}
		err = funds.SetBalance(ctx, in.DestinationID, in.CurrencyID, toAmount)
		if err != nil {
			return err
		}

		for _, leg := range transferLegs(actorID, in) {
			if err := logs.Append(ctx, leg); err != nil {
				return err
			}
		}

		if source, err = funds.Get(ctx, in.SourceID); err != nil {
			return err
		}
		destination, err = funds.Get(ctx, in.DestinationID)
		return err
	})
	if err != nil {
		log.Error("Transfer failed", "error", err)
		return nil, nil, err
	}
	log.Info("Transfer successful", "amount", in.Amount)
	return source, destination, nil
}

// AttachOwner sets the owning user of a fund; uuid.Nil clears it.
func (s *Service) AttachOwner(
	ctx context.Context,
	fundID, userID uuid.UUID,
) (fund *dto.FundRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		funds, err := uow.FundRepository()
		if err != nil {
			return err
		}
		var owner *uuid.UUID
		if userID != uuid.Nil {
			users, err := uow.UserRepository()
			if err != nil {
				return err
			}
			if _, err := users.Get(ctx, userID); err != nil {
				return err
			}
			owner = &userID
		}
		if err := funds.SetOwner(ctx, fundID, owner); err != nil {
			return err
		}
		fund, err = funds.Get(ctx, fundID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return fund, nil
}

// Delete soft-deletes a fund, removes its balances and records a DeleteFund
// activity row.
func (s *Service) Delete(
	ctx context.Context,
	actorID, fundID uuid.UUID,
) (deleted *dto.FundRead, err error) {
	log := s.logger.With("context", "DeleteFund", "fundID", fundID)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		funds, err := uow.FundRepository()
		if err != nil {
			return err
		}
		logs, err := uow.ActivityLogRepository()
		if err != nil {
			return err
		}
		deleted, err = funds.Get(ctx, fundID)
		if err != nil {
			return err
		}
		if err := funds.SoftDelete(ctx, fundID); err != nil {
			return err
		}
		return logs.Append(ctx, dto.ActivityAppend{
			Activity: domain.ActivityDeleteFund,
			FundID:   fundID,
			UserID:   actorID,
		})
	})
	if err != nil {
		log.Error("Delete failed", "error", err)
		return nil, err
	}
	log.Info("Delete successful")
	return deleted, nil
}

func transactionEntry(
	actorID uuid.UUID,
	in dto.TransactionInput,
	activity domain.FundActivity,
) dto.ActivityAppend {
	amount := in.Amount
	transaction := domain.TransactionDeposit
	if activity == domain.ActivityWithdrawal {
		transaction = domain.TransactionWithdrawal
	}
	return dto.ActivityAppend{
		Activity:        activity,
		FundID:          in.FundID,
		UserID:          actorID,
		CurrencyID:      &in.CurrencyID,
		TransactionType: &transaction,
		Amount:          &amount,
		Details:         in.Details,
	}
}

func transferLegs(actorID uuid.UUID, in dto.TransferInput) []dto.ActivityAppend {
	amount := in.Amount
	withdrawal := domain.TransactionWithdrawal
	deposit := domain.TransactionDeposit
	return []dto.ActivityAppend{
		{
			Activity:        domain.ActivityTransfer,
			FundID:          in.SourceID,
			UserID:          actorID,
			CurrencyID:      &in.CurrencyID,
			TransactionType: &withdrawal,
			Amount:          &amount,
			Details:         in.Details,
		},
		{
			Activity:        domain.ActivityTransfer,
			FundID:          in.DestinationID,
			UserID:          actorID,
			CurrencyID:      &in.CurrencyID,
			TransactionType: &deposit,
			Amount:          &amount,
			Details:         in.Details,
		},
	}
}
