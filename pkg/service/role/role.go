// Package role reads the fixed role set seeded at initialization.
package role

import (
	"context"

	"github.com/google/uuid"
	"github.com/yosvanyperez/fondos/pkg/dto"
	"github.com/yosvanyperez/fondos/pkg/repository"
)

// Service is the role directory service.
type Service struct {
	uow repository.UnitOfWork
}

// New creates a role Service.
func New(uow repository.UnitOfWork) *Service {
	return &Service{uow: uow}
}

// List returns every role.
func (s *Service) List(ctx context.Context) ([]dto.RoleRead, error) {
	roles, err := s.uow.RoleRepository()
	if err != nil {
		return nil, err
	}
	return roles.List(ctx)
}

// Get returns one role by id.
func (s *Service) Get(
	ctx context.Context,
	id uuid.UUID,
) (*dto.RoleRead, error) {
	roles, err := s.uow.RoleRepository()
	if err != nil {
		return nil, err
	}
	return roles.Get(ctx, id)
}
