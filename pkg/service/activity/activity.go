// Package activity serves the audit-trail queries. Appending happens inside
// the fund ledger's transactions; this service only reads.
package activity

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/yosvanyperez/fondos/pkg/domain"
	"github.com/yosvanyperez/fondos/pkg/dto"
	"github.com/yosvanyperez/fondos/pkg/repository"
)

// Service is the activity-log query service.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates an activity Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Query returns a filtered, ordered page of activity rows. Assessor callers
// only see rows of funds they own; an assessor owning no funds gets an empty
// page without touching the log at all.
func (s *Service) Query(
	ctx context.Context,
	actor *dto.UserRead,
	page, size int,
	filter *dto.ActivityFilter,
) (*dto.Page[dto.ActivityLogRead], error) {
	log := s.logger.With("context", "QueryActivity")

	var fundScope []uuid.UUID
	if actor != nil && actor.Role == domain.RoleAssessor {
		funds, err := s.uow.FundRepository()
		if err != nil {
			return nil, err
		}
		owned, err := funds.ListByOwner(ctx, actor.ID)
		if err != nil {
			return nil, err
		}
		if len(owned) == 0 {
			return &dto.Page[dto.ActivityLogRead]{
				Items: []dto.ActivityLogRead{}, Page: page, Size: size,
			}, nil
		}
		fundScope = make([]uuid.UUID, len(owned))
		for i, f := range owned {
			fundScope[i] = f.ID
		}
	}

	logs, err := s.uow.ActivityLogRepository()
	if err != nil {
		return nil, err
	}
	result, err := logs.Query(ctx, page, size, filter, fundScope)
	if err != nil {
		log.Error("Query failed", "error", err)
		return nil, err
	}
	return result, nil
}
