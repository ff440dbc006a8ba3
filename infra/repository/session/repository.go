package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/yosvanyperez/fondos/pkg/domain"
	"github.com/yosvanyperez/fondos/pkg/dto"
	"github.com/yosvanyperez/fondos/pkg/repository"
	"gorm.io/gorm"
)

type sessionRepository struct {
	db *gorm.DB
}

// New creates a SessionRepository bound to the given session.
func New(db *gorm.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(
	ctx context.Context,
	create dto.SessionCreate,
) error {
	m := &Session{
		ID:               uuid.New(),
		UserID:           create.UserID,
		RefreshTokenHash: create.RefreshTokenHash,
		AccessTokenHash:  create.AccessTokenHash,
		ExpiresAt:        create.ExpiresAt,
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *sessionRepository) GetByRefreshHash(
	ctx context.Context,
	hash string,
) (*dto.SessionRead, error) {
	var m Session
	err := r.db.WithContext(ctx).
		First(&m, "refresh_token_hash = ?", hash).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}
	return &dto.SessionRead{
		ID:               m.ID,
		UserID:           m.UserID,
		RefreshTokenHash: m.RefreshTokenHash,
		AccessTokenHash:  m.AccessTokenHash,
		ExpiresAt:        m.ExpiresAt,
		RevokedAt:        m.RevokedAt,
	}, nil
}

func (r *sessionRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&Session{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", time.Now().UTC())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrInvalidToken
	}
	return nil
}
