package memrepo

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/yosvanyperez/fondos/pkg/domain"
	"github.com/yosvanyperez/fondos/pkg/dto"
)

type roleRepo struct{ s *Store }

func (r roleRepo) List(ctx context.Context) ([]dto.RoleRead, error) {
	out := make([]dto.RoleRead, len(r.s.roles))
	copy(out, r.s.roles)
	return out, nil
}

func (r roleRepo) Get(
	ctx context.Context,
	id uuid.UUID,
) (*dto.RoleRead, error) {
	for _, seeded := range r.s.roles {
		if seeded.ID == id {
			read := seeded
			return &read, nil
		}
	}
	return nil, domain.ErrRoleNotFound
}

type activityLogRepo struct{ s *Store }

func (r activityLogRepo) Append(
	ctx context.Context,
	entry dto.ActivityAppend,
) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	r.s.logs = append(r.s.logs, logRow{
		id:        uuid.New(),
		entry:     entry,
		createdAt: time.Now(),
	})
	return nil
}

func (r activityLogRepo) Query(
	ctx context.Context,
	page, size int,
	filter *dto.ActivityFilter,
	fundScope []uuid.UUID,
) (*dto.Page[dto.ActivityLogRead], error) {
	var rows []logRow
	for _, row := range r.s.logs {
		if fundScope != nil && !containsID(fundScope, row.entry.FundID) {
			continue
		}
		if r.matches(row, filter) {
			rows = append(rows, row)
		}
	}
	orderByAmount, desc := false, true
	if filter != nil {
		orderByAmount, desc = filter.OrderByAmount, filter.Desc
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if desc {
			a, b = b, a
		}
		if orderByAmount {
			return amountOf(a) < amountOf(b)
		}
		return a.createdAt.Before(b.createdAt)
	})

	pageRows, total := paginate(rows, page, size)
	items := make([]dto.ActivityLogRead, len(pageRows))
	for i, row := range pageRows {
		items[i] = r.toRead(row)
	}
	return &dto.Page[dto.ActivityLogRead]{
		Items: items, Page: page, Size: size, Total: total,
	}, nil
}

func (r activityLogRepo) matches(row logRow, filter *dto.ActivityFilter) bool {
	if filter == nil {
		return true
	}
	if filter.Since != nil && row.createdAt.Before(*filter.Since) {
		return false
	}
	if filter.Until != nil && row.createdAt.After(*filter.Until) {
		return false
	}
	if filter.AmountMin != nil && amountOf(row) < *filter.AmountMin {
		return false
	}
	if filter.AmountMax != nil && amountOf(row) > *filter.AmountMax {
		return false
	}
	if len(filter.Activities) > 0 &&
		!containsString(filter.Activities, row.entry.Activity.Label()) {
		return false
	}
	if len(filter.TransactionTypes) > 0 {
		if row.entry.TransactionType == nil {
			return false
		}
		if !containsString(
			filter.TransactionTypes, row.entry.TransactionType.Label()) {
			return false
		}
	}
	if len(filter.Currencies) > 0 {
		if row.entry.CurrencyID == nil ||
			!containsID(filter.Currencies, *row.entry.CurrencyID) {
			return false
		}
	}
	if len(filter.Funds) > 0 {
		fund, ok := r.s.funds[row.entry.FundID]
		if !ok || !containsFold(fund.name, filter.Funds) {
			return false
		}
	}
	if len(filter.Users) > 0 {
		user, ok := r.s.users[row.entry.UserID]
		if !ok || !containsFold(user.read.Username, filter.Users) {
			return false
		}
	}
	return true
}

func (r activityLogRepo) toRead(row logRow) dto.ActivityLogRead {
	read := dto.ActivityLogRead{
		ID:        row.id,
		Activity:  row.entry.Activity.Label(),
		Amount:    amountOf(row),
		Details:   row.entry.Details,
		CreatedAt: row.createdAt,
	}
	if user, ok := r.s.users[row.entry.UserID]; ok {
		read.Username = user.read.Username
	}
	if fund, ok := r.s.funds[row.entry.FundID]; ok {
		read.FundName = fund.name
	}
	if row.entry.CurrencyID != nil {
		if currency, ok := r.s.currencies[*row.entry.CurrencyID]; ok {
			read.Currency = currency.name
		}
	}
	if row.entry.TransactionType != nil {
		read.TransactionType = row.entry.TransactionType.Label()
	}
	return read
}

type sessionRepo struct{ s *Store }

func (r sessionRepo) Create(
	ctx context.Context,
	create dto.SessionCreate,
) error {
	sess := &dto.SessionRead{
		ID:               uuid.New(),
		UserID:           create.UserID,
		RefreshTokenHash: create.RefreshTokenHash,
		AccessTokenHash:  create.AccessTokenHash,
		ExpiresAt:        create.ExpiresAt,
	}
	r.s.sessions[sess.ID] = sess
	return nil
}

func (r sessionRepo) GetByRefreshHash(
	ctx context.Context,
	hash string,
) (*dto.SessionRead, error) {
	for _, sess := range r.s.sessions {
		if sess.RefreshTokenHash == hash {
			read := *sess
			return &read, nil
		}
	}
	return nil, domain.ErrInvalidToken
}

func (r sessionRepo) Revoke(ctx context.Context, id uuid.UUID) error {
	sess, ok := r.s.sessions[id]
	if !ok {
		return domain.ErrInvalidToken
	}
	now := time.Now()
	sess.RevokedAt = &now
	return nil
}

func amountOf(row logRow) float64 {
	if row.entry.Amount == nil {
		return 0
	}
	return *row.entry.Amount
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func containsString(values []string, value string) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}
