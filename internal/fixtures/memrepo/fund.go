package memrepo

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/yosvanyperez/fondos/pkg/domain"
	"github.com/yosvanyperez/fondos/pkg/dto"
)

type fundRepo struct{ s *Store }

func (r fundRepo) Create(
	ctx context.Context,
	create dto.FundCreate,
) (*dto.FundRead, error) {
	row := &fundRow{
		id:          uuid.New(),
		name:        create.Name,
		locationURL: create.LocationURL,
		address:     create.Address,
		details:     create.Details,
		active:      true,
		createdAt:   time.Now(),
	}
	r.s.funds[row.id] = row
	return r.s.fundRead(row)
}

func (r fundRepo) Get(
	ctx context.Context,
	id uuid.UUID,
) (*dto.FundRead, error) {
	row, ok := r.s.funds[id]
	if !ok || !row.active {
		return nil, domain.ErrFundNotFound
	}
	return r.s.fundRead(row)
}

func (r fundRepo) List(
	ctx context.Context,
	page, size int,
	filter *dto.FundFilter,
) (*dto.Page[dto.FundRead], error) {
	var rows []*fundRow
	for _, row := range r.s.funds {
		if row.active && r.s.fundMatches(row, filter) {
			rows = append(rows, row)
		}
	}
	r.s.orderFunds(rows, filter)

	pageRows, total := paginate(rows, page, size)
	items := make([]dto.FundRead, len(pageRows))
	for i, row := range pageRows {
		read, err := r.s.fundRead(row)
		if err != nil {
			return nil, err
		}
		items[i] = *read
	}
	return &dto.Page[dto.FundRead]{
		Items: items, Page: page, Size: size, Total: total,
	}, nil
}

func (s *Store) fundMatches(row *fundRow, filter *dto.FundFilter) bool {
	if filter == nil {
		return true
	}
	if len(filter.Names) > 0 && !containsFold(row.name, filter.Names) {
		return false
	}
	if len(filter.Usernames) > 0 {
		if row.ownerID == nil {
			return false
		}
		owner, ok := s.users[*row.ownerID]
		if !ok || !containsFold(owner.read.Username, filter.Usernames) {
			return false
		}
	}
	if len(filter.Currencies) > 0 {
		held := false
		for _, currencyID := range filter.Currencies {
			if _, ok := s.balances[row.id][currencyID]; ok {
				held = true
				break
			}
		}
		if !held {
			return false
		}
	}
	return true
}

func (s *Store) orderFunds(rows []*fundRow, filter *dto.FundFilter) {
	orderBy, desc := dto.FundOrderByCreated, true
	if filter != nil && filter.OrderBy != "" {
		orderBy, desc = filter.OrderBy, filter.Desc
	}
	less := func(a, b *fundRow) bool {
		switch orderBy {
		case dto.FundOrderByName:
			return a.name < b.name
		case dto.FundOrderByOwner:
			return s.ownerName(a) < s.ownerName(b)
		default:
			return a.createdAt.Before(b.createdAt)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if desc {
			return less(rows[j], rows[i])
		}
		return less(rows[i], rows[j])
	})
}

func (s *Store) ownerName(row *fundRow) string {
	if row.ownerID == nil {
		return ""
	}
	if owner, ok := s.users[*row.ownerID]; ok {
		return owner.read.Username
	}
	return ""
}

func (r fundRepo) ListByOwner(
	ctx context.Context,
	userID uuid.UUID,
) ([]dto.FundRead, error) {
	var reads []dto.FundRead
	for _, row := range r.s.funds {
		if row.active && row.ownerID != nil && *row.ownerID == userID {
			read, err := r.s.fundRead(row)
			if err != nil {
				return nil, err
			}
			reads = append(reads, *read)
		}
	}
	return reads, nil
}

func (r fundRepo) Update(
	ctx context.Context,
	id uuid.UUID,
	update dto.FundUpdate,
) error {
	row, ok := r.s.funds[id]
	if !ok || !row.active {
		return domain.ErrFundNotFound
	}
	row.name = update.Name
	row.locationURL = update.LocationURL
	row.address = update.Address
	row.details = update.Details
	return nil
}

func (r fundRepo) SetOwner(
	ctx context.Context,
	fundID uuid.UUID,
	userID *uuid.UUID,
) error {
	row, ok := r.s.funds[fundID]
	if !ok || !row.active {
		return domain.ErrFundNotFound
	}
	row.ownerID = userID
	return nil
}

func (r fundRepo) DetachOwner(ctx context.Context, userID uuid.UUID) error {
	for _, row := range r.s.funds {
		if row.ownerID != nil && *row.ownerID == userID {
			row.ownerID = nil
		}
	}
	return nil
}

func (r fundRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	row, ok := r.s.funds[id]
	if !ok || !row.active {
		return domain.ErrFundNotFound
	}
	row.active = false
	delete(r.s.balances, id)
	return nil
}

func (r fundRepo) BalanceForUpdate(
	ctx context.Context,
	fundID, currencyID uuid.UUID,
) (*dto.BalanceRead, error) {
	amount, ok := r.s.balances[fundID][currencyID]
	if !ok {
		return nil, nil
	}
	name := ""
	if c, ok := r.s.currencies[currencyID]; ok {
		name = c.name
	}
	return &dto.BalanceRead{
		CurrencyID: currencyID,
		Currency:   name,
		Amount:     amount,
	}, nil
}

func (r fundRepo) SetBalance(
	ctx context.Context,
	fundID, currencyID uuid.UUID,
	amount float64,
) error {
	if amount == 0 {
		delete(r.s.balances[fundID], currencyID)
		return nil
	}
	if r.s.balances[fundID] == nil {
		r.s.balances[fundID] = make(map[uuid.UUID]float64)
	}
	r.s.balances[fundID][currencyID] = amount
	return nil
}

func (r fundRepo) RemoveBalancesByCurrency(
	ctx context.Context,
	currencyID uuid.UUID,
) ([]dto.FundBalance, error) {
	var removed []dto.FundBalance
	for fundID, held := range r.s.balances {
		if amount, ok := held[currencyID]; ok {
			removed = append(removed, dto.FundBalance{
				FundID: fundID, Amount: amount,
			})
			delete(held, currencyID)
		}
	}
	return removed, nil
}

func (s *Store) fundRead(row *fundRow) (*dto.FundRead, error) {
	read := &dto.FundRead{
		ID:          row.id,
		Name:        row.name,
		LocationURL: row.locationURL,
		Address:     row.address,
		Details:     row.details,
		CreatedAt:   row.createdAt,
	}
	if row.ownerID != nil {
		if owner, ok := s.users[*row.ownerID]; ok {
			ownerRead := owner.read
			read.Owner = &ownerRead
		}
	}
	var currencyIDs []uuid.UUID
	for currencyID := range s.balances[row.id] {
		currencyIDs = append(currencyIDs, currencyID)
	}
	sort.Slice(currencyIDs, func(i, j int) bool {
		return currencyIDs[i].String() < currencyIDs[j].String()
	})
	for _, currencyID := range currencyIDs {
		name := ""
		if c, ok := s.currencies[currencyID]; ok {
			name = c.name
		}
		read.Balances = append(read.Balances, dto.BalanceRead{
			CurrencyID: currencyID,
			Currency:   name,
			Amount:     s.balances[row.id][currencyID],
		})
	}
	return read, nil
}
