package fund

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/yosvanyperez/fondos/infra/repository/user"
	"github.com/yosvanyperez/fondos/pkg/domain"
	"github.com/yosvanyperez/fondos/pkg/dto"
	"github.com/yosvanyperez/fondos/pkg/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type fundRepository struct {
	db *gorm.DB
}

// New creates a FundRepository bound to the given session.
func New(db *gorm.DB) repository.FundRepository {
	return &fundRepository{db: db}
}

func (r *fundRepository) Create(
	ctx context.Context,
	create dto.FundCreate,
) (*dto.FundRead, error) {
	m := &Fund{
		ID:          uuid.New(),
		Name:        create.Name,
		Address:     create.Address,
		Details:     create.Details,
		LocationURL: create.LocationURL,
		Active:      true,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	read := toRead(*m)
	return &read, nil
}

func (r *fundRepository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*dto.FundRead, error) {
	var m Fund
	err := r.db.WithContext(ctx).
		Preload("User.Role").
		Preload("FundCurrencies.Currency").
		Where("funds.active = ? AND funds.id = ?", true, id).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrFundNotFound
	}
	if err != nil {
		return nil, err
	}
	read := toRead(m)
	return &read, nil
}

func (r *fundRepository) List(
	ctx context.Context,
	page, size int,
	filter *dto.FundFilter,
) (*dto.Page[dto.FundRead], error) {
	q := r.db.WithContext(ctx).Model(&Fund{}).Where("funds.active = ?", true)
	q = r.applyFilter(q, filter)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	q = r.applyOrdering(q, filter)
	var models []Fund
	err := q.Preload("User.Role").
		Preload("FundCurrencies.Currency").
		Offset(dto.Offset(page, size)).Limit(size).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	items := make([]dto.FundRead, len(models))
	for i, m := range models {
		items[i] = toRead(m)
	}
	return &dto.Page[dto.FundRead]{
		Items: items, Page: page, Size: size, Total: total,
	}, nil
}

func (r *fundRepository) applyFilter(
	q *gorm.DB,
	filter *dto.FundFilter,
) *gorm.DB {
	if filter == nil {
		return q
	}
	if len(filter.Names) > 0 {
		cond := r.db.Where("funds.name ILIKE ?", "%"+filter.Names[0]+"%")
		for _, name := range filter.Names[1:] {
			cond = cond.Or("funds.name ILIKE ?", "%"+name+"%")
		}
		q = q.Where(cond)
	}
	if len(filter.Usernames) > 0 {
		owners := r.db.Table("users").Select("id")
		cond := r.db.Where("users.username ILIKE ?", "%"+filter.Usernames[0]+"%")
		for _, name := range filter.Usernames[1:] {
			cond = cond.Or("users.username ILIKE ?", "%"+name+"%")
		}
		q = q.Where("funds.user_id IN (?)", owners.Where(cond))
	}
	if len(filter.Currencies) > 0 {
		held := r.db.Table("fund_currencies").
			Select("fund_id").
			Where("currency_id IN ?", filter.Currencies)
		q = q.Where("funds.id IN (?)", held)
	}
	return q
}

func (r *fundRepository) applyOrdering(
	q *gorm.DB,
	filter *dto.FundFilter,
) *gorm.DB {
	orderBy, desc := dto.FundOrderByCreated, true
	if filter != nil && filter.OrderBy != "" {
		orderBy, desc = filter.OrderBy, filter.Desc
	}
	dir := "ASC"
	if desc {
		dir = "DESC"
	}
	switch orderBy {
	case dto.FundOrderByName:
		return q.Order("funds.name " + dir)
	case dto.FundOrderByOwner:
		return q.
			Joins("LEFT JOIN users ON users.id = funds.user_id").
			Order("users.username " + dir)
	default:
		return q.Order("funds.created_at " + dir)
	}
}

func (r *fundRepository) ListByOwner(
	ctx context.Context,
	userID uuid.UUID,
) ([]dto.FundRead, error) {
	var models []Fund
	err := r.db.WithContext(ctx).
		Preload("FundCurrencies.Currency").
		Where("funds.active = ? AND funds.user_id = ?", true, userID).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	reads := make([]dto.FundRead, len(models))
	for i, m := range models {
		reads[i] = toRead(m)
	}
	return reads, nil
}

func (r *fundRepository) Update(
	ctx context.Context,
	id uuid.UUID,
	update dto.FundUpdate,
) error {
	res := r.db.WithContext(ctx).Model(&Fund{}).
		Where("active = ? AND id = ?", true, id).
		Updates(map[string]any{
			"name":         update.Name,
			"address":      update.Address,
			"details":      update.Details,
			"location_url": update.LocationURL,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrFundNotFound
	}
	return nil
}

func (r *fundRepository) SetOwner(
	ctx context.Context,
	fundID uuid.UUID,
	userID *uuid.UUID,
) error {
	res := r.db.WithContext(ctx).Model(&Fund{}).
		Where("active = ? AND id = ?", true, fundID).
		Update("user_id", userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrFundNotFound
	}
	return nil
}

func (r *fundRepository) DetachOwner(
	ctx context.Context,
	userID uuid.UUID,
) error {
	return r.db.WithContext(ctx).Model(&Fund{}).
		Where("user_id = ?", userID).
		Update("user_id", nil).Error
}

func (r *fundRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&Fund{}).
		Where("active = ? AND id = ?", true, id).
		Updates(map[string]any{
			"active":     false,
			"deleted_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrFundNotFound
	}
	return r.db.WithContext(ctx).
		Where("fund_id = ?", id).
		Delete(&FundCurrency{}).Error
}

func (r *fundRepository) BalanceForUpdate(
	ctx context.Context,
	fundID, currencyID uuid.UUID,
) (*dto.BalanceRead, error) {
	var m FundCurrency
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("fund_id = ? AND currency_id = ?", fundID, currencyID).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &dto.BalanceRead{CurrencyID: m.CurrencyID, Amount: m.Amount}, nil
}

func (r *fundRepository) SetBalance(
	ctx context.Context,
	fundID, currencyID uuid.UUID,
	amount float64,
) error {
	if amount == 0 {
		return r.db.WithContext(ctx).
			Where("fund_id = ? AND currency_id = ?", fundID, currencyID).
			Delete(&FundCurrency{}).Error
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "fund_id"}, {Name: "currency_id"},
			},
			DoUpdates: clause.Assignments(map[string]any{"amount": amount}),
		}).
		Create(&FundCurrency{
			FundID:     fundID,
			CurrencyID: currencyID,
			Amount:     amount,
		}).Error
}

func (r *fundRepository) RemoveBalancesByCurrency(
	ctx context.Context,
	currencyID uuid.UUID,
) ([]dto.FundBalance, error) {
	var rows []FundCurrency
	err := r.db.WithContext(ctx).
		Where("currency_id = ?", currencyID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	err = r.db.WithContext(ctx).
		Where("currency_id = ?", currencyID).
		Delete(&FundCurrency{}).Error
	if err != nil {
		return nil, err
	}
	affected := make([]dto.FundBalance, len(rows))
	for i, row := range rows {
		affected[i] = dto.FundBalance{FundID: row.FundID, Amount: row.Amount}
	}
	return affected, nil
}

func toRead(m Fund) dto.FundRead {
	read := dto.FundRead{
		ID:          m.ID,
		Name:        m.Name,
		LocationURL: m.LocationURL,
		Address:     m.Address,
		Details:     m.Details,
		CreatedAt:   m.CreatedAt,
	}
	if m.User != nil {
		owner := user.ToRead(*m.User)
		read.Owner = &owner
	}
	read.Balances = make([]dto.BalanceRead, len(m.FundCurrencies))
	for i, fc := range m.FundCurrencies {
		read.Balances[i] = dto.BalanceRead{
			CurrencyID: fc.CurrencyID,
			Currency:   fc.Currency.Name,
			Amount:     fc.Amount,
		}
	}
	return read
}
