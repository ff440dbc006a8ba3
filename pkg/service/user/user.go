// Package user manages the user directory. Registration lives in the auth
// service; this service covers lookup, listing, updates and soft deletion.
package user

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/yosvanyperez/fondos/pkg/domain"
	"github.com/yosvanyperez/fondos/pkg/dto"
	"github.com/yosvanyperez/fondos/pkg/repository"
	"github.com/yosvanyperez/fondos/pkg/utils"
)

// seedAdminUsername is the bootstrap account that can never be deleted.
const seedAdminUsername = "admin"

// Service is the user directory service.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a user Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// List returns a page of active users. Keywords match usernames as
// substrings, OR-combined.
func (s *Service) List(
	ctx context.Context,
	page, size int,
	keywords []string,
	withRole bool,
) (*dto.Page[dto.UserRead], error) {
	users, err := s.uow.UserRepository()
	if err != nil {
		return nil, err
	}
	return users.List(ctx, page, size, keywords, withRole)
}

// FindBy looks an active user up by id, username or email, first match wins.
func (s *Service) FindBy(
	ctx context.Context,
	id *uuid.UUID,
	username, email string,
) (*dto.UserRead, error) {
	users, err := s.uow.UserRepository()
	if err != nil {
		return nil, err
	}
	switch {
	case id != nil:
		return users.Get(ctx, *id)
	case username != "":
		return users.GetByUsername(ctx, username)
	case email != "":
		return users.GetByEmail(ctx, email)
	}
	return nil, domain.ErrUserNotFound
}

// Update renames a user or changes their email.
func (s *Service) Update(
	ctx context.Context,
	id uuid.UUID,
	update dto.UserUpdate,
) (updated *dto.UserRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		if err := users.Update(ctx, id, update); err != nil {
			return err
		}
		updated, err = users.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ResetPassword verifies the old password and stores a fresh salted hash.
// Setting the same password again is a silent no-op.
func (s *Service) ResetPassword(
	ctx context.Context,
	id uuid.UUID,
	oldPassword, newPassword string,
) error {
	log := s.logger.With("context", "ResetPassword", "userID", id)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		creds, err := users.GetCredentials(ctx, id)
		if err != nil {
			return err
		}
		if !utils.CheckPassword(
			oldPassword, creds.PasswordHash, creds.PasswordSalt) {
			return domain.ErrUserUnauthorized
		}
		if oldPassword == newPassword {
			return nil
		}
		hash, salt, err := utils.HashPassword(newPassword)
		if err != nil {
			return err
		}
		return users.UpdatePassword(ctx, id, hash, salt)
	})
	if err != nil {
		log.Error("ResetPassword failed", "error", err)
		return err
	}
	log.Info("ResetPassword successful")
	return nil
}

// Delete soft-deletes a user and detaches any funds they own. The seed admin
// account is protected.
func (s *Service) Delete(
	ctx context.Context,
	id uuid.UUID,
) (deleted *dto.UserRead, err error) {
	log := s.logger.With("context", "DeleteUser", "userID", id)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		funds, err := uow.FundRepository()
		if err != nil {
			return err
		}
		deleted, err = users.Get(ctx, id)
		if err != nil {
			return err
		}
		if deleted.Username == seedAdminUsername {
			return domain.ErrUserProtected
		}
		if err := funds.DetachOwner(ctx, id); err != nil {
			return err
		}
		return users.SoftDelete(ctx, id)
	})
	if err != nil {
		log.Error("Delete failed", "error", err)
		return nil, err
	}
	log.Info("Delete successful")
	return deleted, nil
}
