// Package memrepo provides an in-memory UnitOfWork for service tests. One
// Store backs every repository interface; semantics mirror the GORM
// implementations in infra/repository.
package memrepo

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yosvanyperez/fondos/pkg/domain"
	"github.com/yosvanyperez/fondos/pkg/dto"
	"github.com/yosvanyperez/fondos/pkg/repository"
)

type userRow struct {
	read   dto.UserRead
	hash   []byte
	salt   []byte
	active bool
}

type currencyRow struct {
	id     uuid.UUID
	name   string
	active bool
}

type fundRow struct {
	id          uuid.UUID
	name        string
	locationURL string
	address     string
	details     string
	ownerID     *uuid.UUID
	active      bool
	createdAt   time.Time
}

type logRow struct {
	id        uuid.UUID
	entry     dto.ActivityAppend
	createdAt time.Time
}

// Store is an in-memory database. It implements repository.UnitOfWork; the
// typed accessors return thin views over the same state, so mutations made
// inside Do are visible immediately.
type Store struct {
	mu sync.Mutex

	users      map[uuid.UUID]*userRow
	roles      []dto.RoleRead
	currencies map[uuid.UUID]*currencyRow
	funds      map[uuid.UUID]*fundRow
	balances   map[uuid.UUID]map[uuid.UUID]float64
	logs       []logRow
	sessions   map[uuid.UUID]*dto.SessionRead

	// FailNext makes the next Do call roll back with this error.
	FailNext error
}

// NewStore creates an empty Store with the fixed role set seeded.
func NewStore() *Store {
	s := &Store{
		users:      make(map[uuid.UUID]*userRow),
		currencies: make(map[uuid.UUID]*currencyRow),
		funds:      make(map[uuid.UUID]*fundRow),
		balances:   make(map[uuid.UUID]map[uuid.UUID]float64),
		sessions:   make(map[uuid.UUID]*dto.SessionRead),
	}
	for _, r := range domain.Roles() {
		s.roles = append(s.roles, dto.RoleRead{
			ID:    uuid.New(),
			Code:  r,
			Label: r.Label(),
		})
	}
	return s
}

// RoleID returns the seeded id of a role.
func (s *Store) RoleID(role domain.Role) uuid.UUID {
	for _, r := range s.roles {
		if r.Code == role {
			return r.ID
		}
	}
	return uuid.Nil
}

// SeedUser inserts an active user with the given role and password material.
func (s *Store) SeedUser(
	username, email string,
	role domain.Role,
	hash, salt []byte,
) dto.UserRead {
	read := dto.UserRead{
		ID:        uuid.New(),
		Username:  username,
		Email:     email,
		Role:      role,
		RoleLabel: role.Label(),
		CreatedAt: time.Now(),
	}
	s.users[read.ID] = &userRow{read: read, hash: hash, salt: salt, active: true}
	return read
}

// SeedCurrency inserts an active currency.
func (s *Store) SeedCurrency(name string) dto.CurrencyRead {
	id := uuid.New()
	s.currencies[id] = &currencyRow{id: id, name: name, active: true}
	return dto.CurrencyRead{ID: id, Name: name}
}

// SeedFund inserts an active fund, optionally owned.
func (s *Store) SeedFund(name string, ownerID *uuid.UUID) dto.FundRead {
	row := &fundRow{
		id:        uuid.New(),
		name:      name,
		ownerID:   ownerID,
		active:    true,
		createdAt: time.Now(),
	}
	s.funds[row.id] = row
	read, _ := s.fundRead(row)
	return *read
}

// Logs returns a copy of every appended activity entry, oldest first.
func (s *Store) Logs() []dto.ActivityAppend {
	out := make([]dto.ActivityAppend, len(s.logs))
	for i, l := range s.logs {
		out[i] = l.entry
	}
	return out
}

// Balance reads a raw balance; the second return reports row presence.
func (s *Store) Balance(fundID, currencyID uuid.UUID) (float64, bool) {
	amount, ok := s.balances[fundID][currencyID]
	return amount, ok
}

// Sessions returns every stored session row.
func (s *Store) Sessions() []dto.SessionRead {
	out := make([]dto.SessionRead, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, *sess)
	}
	return out
}

// Do implements repository.UnitOfWork. There is no real transaction; a
// FailNext error is returned without running the function.
func (s *Store) Do(
	ctx context.Context,
	fn func(uow repository.UnitOfWork) error,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailNext != nil {
		err := s.FailNext
		s.FailNext = nil
		return err
	}
	return fn(s)
}

func (s *Store) FundRepository() (repository.FundRepository, error) {
	return fundRepo{s}, nil
}

func (s *Store) CurrencyRepository() (repository.CurrencyRepository, error) {
	return currencyRepo{s}, nil
}

func (s *Store) UserRepository() (repository.UserRepository, error) {
	return userRepo{s}, nil
}

func (s *Store) RoleRepository() (repository.RoleRepository, error) {
	return roleRepo{s}, nil
}

func (s *Store) ActivityLogRepository() (repository.ActivityLogRepository, error) {
	return activityLogRepo{s}, nil
}

func (s *Store) SessionRepository() (repository.SessionRepository, error) {
	return sessionRepo{s}, nil
}

func containsFold(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(
			strings.ToLower(haystack), strings.ToLower(n)) {
			return true
		}
	}
	return false
}

func paginate[T any](items []T, page, size int) ([]T, int64) {
	total := int64(len(items))
	if size <= 0 {
		return items, total
	}
	offset := dto.Offset(page, size)
	if offset >= len(items) {
		return nil, total
	}
	end := offset + size
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end], total
}
