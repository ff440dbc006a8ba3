package activitylog

import (
	"context"

	"github.com/google/uuid"
	"github.com/yosvanyperez/fondos/pkg/dto"
	"github.com/yosvanyperez/fondos/pkg/repository"
	"gorm.io/gorm"
)

type activityLogRepository struct {
	db *gorm.DB
}

// New creates an ActivityLogRepository bound to the given session.
func New(db *gorm.DB) repository.ActivityLogRepository {
	return &activityLogRepository{db: db}
}

func (r *activityLogRepository) Append(
	ctx context.Context,
	entry dto.ActivityAppend,
) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	m := &ActivityLog{
		ID:         uuid.New(),
		UserID:     entry.UserID,
		FundID:     entry.FundID,
		CurrencyID: entry.CurrencyID,
		Activity:   entry.Activity.Label(),
		Details:    entry.Details,
	}
	if entry.Amount != nil {
		m.Amount = *entry.Amount
	}
	if entry.TransactionType != nil {
		label := entry.TransactionType.Label()
		m.TransactionType = &label
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *activityLogRepository) Query(
	ctx context.Context,
	page, size int,
	filter *dto.ActivityFilter,
	fundScope []uuid.UUID,
) (*dto.Page[dto.ActivityLogRead], error) {
	q := r.db.WithContext(ctx).Model(&ActivityLog{})
	if fundScope != nil {
		q = q.Where("activity_logs.fund_id IN ?", fundScope)
	}
	q = r.applyFilter(q, filter)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	q = applyOrdering(q, filter)
	var models []ActivityLog
	err := q.Preload("User").
		Preload("Fund").
		Preload("Currency").
		Offset(dto.Offset(page, size)).Limit(size).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	items := make([]dto.ActivityLogRead, len(models))
	for i, m := range models {
		items[i] = toRead(m)
	}
	return &dto.Page[dto.ActivityLogRead]{
		Items: items, Page: page, Size: size, Total: total,
	}, nil
}

func (r *activityLogRepository) applyFilter(
	q *gorm.DB,
	filter *dto.ActivityFilter,
) *gorm.DB {
	if filter == nil {
		return q
	}
	if filter.Since != nil {
		q = q.Where("activity_logs.created_at >= ?", *filter.Since)
	}
	if filter.Until != nil {
		q = q.Where("activity_logs.created_at <= ?", *filter.Until)
	}
	if filter.AmountMin != nil {
		q = q.Where("activity_logs.amount >= ?", *filter.AmountMin)
	}
	if filter.AmountMax != nil {
		q = q.Where("activity_logs.amount <= ?", *filter.AmountMax)
	}
	if len(filter.Activities) > 0 {
		q = q.Where("activity_logs.activity IN ?", filter.Activities)
	}
	if len(filter.TransactionTypes) > 0 {
		q = q.Where(
			"activity_logs.transaction_type IN ?", filter.TransactionTypes)
	}
	if len(filter.Currencies) > 0 {
		q = q.Where("activity_logs.currency_id IN ?", filter.Currencies)
	}
	if len(filter.Funds) > 0 {
		funds := r.db.Table("funds").Select("id")
		cond := r.db.Where("funds.name ILIKE ?", "%"+filter.Funds[0]+"%")
		for _, name := range filter.Funds[1:] {
			cond = cond.Or("funds.name ILIKE ?", "%"+name+"%")
		}
		q = q.Where("activity_logs.fund_id IN (?)", funds.Where(cond))
	}
	if len(filter.Users) > 0 {
		users := r.db.Table("users").Select("id")
		cond := r.db.Where("users.username ILIKE ?", "%"+filter.Users[0]+"%")
		for _, name := range filter.Users[1:] {
			cond = cond.Or("users.username ILIKE ?", "%"+name+"%")
		}
		q = q.Where("activity_logs.user_id IN (?)", users.Where(cond))
	}
	return q
}

func applyOrdering(q *gorm.DB, filter *dto.ActivityFilter) *gorm.DB {
	orderByAmount, desc := false, true
	if filter != nil {
		orderByAmount, desc = filter.OrderByAmount, filter.Desc
	}
	column := "activity_logs.created_at"
	if orderByAmount {
		column = "activity_logs.amount"
	}
	if desc {
		return q.Order(column + " DESC")
	}
	return q.Order(column + " ASC")
}

func toRead(m ActivityLog) dto.ActivityLogRead {
	read := dto.ActivityLogRead{
		ID:        m.ID,
		Username:  m.User.Username,
		FundName:  m.Fund.Name,
		Activity:  m.Activity,
		Amount:    m.Amount,
		Details:   m.Details,
		CreatedAt: m.CreatedAt,
	}
	if m.Currency != nil {
		read.Currency = m.Currency.Name
	}
	if m.TransactionType != nil {
		read.TransactionType = *m.TransactionType
	}
	return read
}
