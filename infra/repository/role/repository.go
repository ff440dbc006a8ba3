package role

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/yosvanyperez/fondos/pkg/domain"
	"github.com/yosvanyperez/fondos/pkg/dto"
	"github.com/yosvanyperez/fondos/pkg/repository"
	"gorm.io/gorm"
)

type roleRepository struct {
	db *gorm.DB
}

// New creates a RoleRepository bound to the given session.
func New(db *gorm.DB) repository.RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) List(ctx context.Context) ([]dto.RoleRead, error) {
	var models []Role
	if err := r.db.WithContext(ctx).Order("name").Find(&models).Error; err != nil {
		return nil, err
	}
	reads := make([]dto.RoleRead, len(models))
	for i, m := range models {
		reads[i] = toRead(m)
	}
	return reads, nil
}

func (r *roleRepository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*dto.RoleRead, error) {
	var m Role
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrRoleNotFound
	}
	if err != nil {
		return nil, err
	}
	read := toRead(m)
	return &read, nil
}

func toRead(m Role) dto.RoleRead {
	return dto.RoleRead{ID: m.ID, Code: domain.Role(m.Code), Label: m.Name}
}
