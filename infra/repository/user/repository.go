package user

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

type userRepository struct {
	db *gorm.DB
}

// New creates a UserRepository bound to the given session.
func New(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(
	ctx context.Context,
	create dto.UserCreate,
) (*dto.UserRead, error) {
	m := &User{
		ID:           uuid.New(),
		RoleID:       create.RoleID,
		Username:     create.Username,
		Email:        create.Email,
		Active:       true,
		PasswordHash: create.PasswordHash,
		PasswordSalt: create.PasswordSalt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		First(&m.Role, "id = ?", m.RoleID).Error; err != nil {
		return nil, err
	}
	read := ToRead(*m)
	return &read, nil
}

func (r *userRepository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*dto.UserRead, error) {
	return r.getBy(ctx, "users.id = ?", id)
}

func (r *userRepository) GetByUsername(
	ctx context.Context,
	username string,
) (*dto.UserRead, error) {
	return r.getBy(ctx, "users.username = ?", username)
}

func (r *userRepository) GetByEmail(
	ctx context.Context,
	email string,
) (*dto.UserRead, error) {
	return r.getBy(ctx, "users.email = ?", email)
}

func (r *userRepository) getBy(
	ctx context.Context,
	cond string,
	value any,
) (*dto.UserRead, error) {
	var m User
	err := r.db.WithContext(ctx).
		Preload("Role").
		Where("users.active = ?", true).
		Where(cond, value).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	read := ToRead(m)
	return &read, nil
}

func (r *userRepository) GetCredentials(
	ctx context.Context,
	id uuid.UUID,
) (*dto.Credentials, error) {
	var m User
	err := r.db.WithContext(ctx).
		Select("id", "password_hash", "password_salt").
		Where("active = ? AND id = ?", true, id).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &dto.Credentials{
		UserID:       m.ID,
		PasswordHash: m.PasswordHash,
		PasswordSalt: m.PasswordSalt,
	}, nil
}

func (r *userRepository) List(
	ctx context.Context,
	page, size int,
	keywords []string,
	withRole bool,
) (*dto.Page[dto.UserRead], error) {
	q := r.db.WithContext(ctx).Model(&User{}).Where("users.active = ?", true)
	if len(keywords) > 0 {
		cond := r.db.Where("users.username ILIKE ?", "%"+keywords[0]+"%")
		for _, kw := range keywords[1:] {
			cond = cond.Or("users.username ILIKE ?", "%"+kw+"%")
		}
		q = q.Where(cond)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	if withRole {
		q = q.Preload("Role")
	}
	var models []User
	err := q.Order("users.username").
		Offset(dto.Offset(page, size)).Limit(size).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	items := make([]dto.UserRead, len(models))
	for i, m := range models {
		items[i] = ToRead(m)
		if !withRole {
			items[i].Role = ""
			items[i].RoleLabel = ""
		}
	}
	return &dto.Page[dto.UserRead]{
		Items: items, Page: page, Size: size, Total: total,
	}, nil
}

func (r *userRepository) Update(
	ctx context.Context,
	id uuid.UUID,
	update dto.UserUpdate,
) error {
	res := r.db.WithContext(ctx).Model(&User{}).
		Where("active = ? AND id = ?", true, id).
		Updates(map[string]any{
			"username": update.Username,
			"email":    update.Email,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) UpdatePassword(
	ctx context.Context,
	id uuid.UUID,
	hash, salt []byte,
) error {
	res := r.db.WithContext(ctx).Model(&User{}).
		Where("active = ? AND id = ?", true, id).
		Updates(map[string]any{
			"password_hash": hash,
			"password_salt": salt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&User{}).
		Where("active = ? AND id = ?", true, id).
		Updates(map[string]any{
			"active":     false,
			"deleted_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ToRead maps a user row to its outward representation.
func ToRead(m User) dto.UserRead {
	return dto.UserRead{
		ID:        m.ID,
		Username:  m.Username,
		Email:     m.Email,
		Role:      domain.Role(m.Role.Code),
		RoleLabel: m.Role.Name,
		CreatedAt: m.CreatedAt,
	}
}
