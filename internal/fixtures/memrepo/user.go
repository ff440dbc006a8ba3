package memrepo

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/yosvanyperez/fondos/pkg/domain"
	"github.com/yosvanyperez/fondos/pkg/dto"
)

type userRepo struct{ s *Store }

func (r userRepo) Create(
	ctx context.Context,
	create dto.UserCreate,
) (*dto.UserRead, error) {
	role := domain.Role("")
	for _, seeded := range r.s.roles {
		if seeded.ID == create.RoleID {
			role = seeded.Code
		}
	}
	if role == "" {
		return nil, domain.ErrRoleNotFound
	}
	read := dto.UserRead{
		ID:        uuid.New(),
		Username:  create.Username,
		Email:     create.Email,
		Role:      role,
		RoleLabel: role.Label(),
		CreatedAt: time.Now(),
	}
	r.s.users[read.ID] = &userRow{
		read:   read,
		hash:   create.PasswordHash,
		salt:   create.PasswordSalt,
		active: true,
	}
	return &read, nil
}

func (r userRepo) Get(
	ctx context.Context,
	id uuid.UUID,
) (*dto.UserRead, error) {
	row, ok := r.s.users[id]
	if !ok || !row.active {
		return nil, domain.ErrUserNotFound
	}
	read := row.read
	return &read, nil
}

func (r userRepo) GetByUsername(
	ctx context.Context,
	username string,
) (*dto.UserRead, error) {
	for _, row := range r.s.users {
		if row.active && row.read.Username == username {
			read := row.read
			return &read, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r userRepo) GetByEmail(
	ctx context.Context,
	email string,
) (*dto.UserRead, error) {
	for _, row := range r.s.users {
		if row.active && row.read.Email == email {
			read := row.read
			return &read, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r userRepo) GetCredentials(
	ctx context.Context,
	id uuid.UUID,
) (*dto.Credentials, error) {
	row, ok := r.s.users[id]
	if !ok || !row.active {
		return nil, domain.ErrUserNotFound
	}
	return &dto.Credentials{
		UserID:       id,
		PasswordHash: row.hash,
		PasswordSalt: row.salt,
	}, nil
}

func (r userRepo) List(
	ctx context.Context,
	page, size int,
	keywords []string,
	withRole bool,
) (*dto.Page[dto.UserRead], error) {
	var reads []dto.UserRead
	for _, row := range r.s.users {
		if !row.active {
			continue
		}
		if len(keywords) > 0 && !containsFold(row.read.Username, keywords) {
			continue
		}
		read := row.read
		if !withRole {
			read.Role = ""
			read.RoleLabel = ""
		}
		reads = append(reads, read)
	}
	sort.Slice(reads, func(i, j int) bool {
		return reads[i].Username < reads[j].Username
	})
	items, total := paginate(reads, page, size)
	return &dto.Page[dto.UserRead]{
		Items: items, Page: page, Size: size, Total: total,
	}, nil
}

func (r userRepo) Update(
	ctx context.Context,
	id uuid.UUID,
	update dto.UserUpdate,
) error {
	row, ok := r.s.users[id]
	if !ok || !row.active {
		return domain.ErrUserNotFound
	}
	row.read.Username = update.Username
	row.read.Email = update.Email
	return nil
}

func (r userRepo) UpdatePassword(
	ctx context.Context,
	id uuid.UUID,
	hash, salt []byte,
) error {
	row, ok := r.s.users[id]
	if !ok || !row.active {
		return domain.ErrUserNotFound
	}
	row.hash = hash
	row.salt = salt
	return nil
}

func (r userRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	row, ok := r.s.users[id]
	if !ok || !row.active {
		return domain.ErrUserNotFound
	}
	row.active = false
	return nil
}
