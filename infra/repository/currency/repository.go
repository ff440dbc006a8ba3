package currency

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/yosvanyperez/fondos/pkg/domain"
	"github.com/yosvanyperez/fondos/pkg/dto"
	"github.com/yosvanyperez/fondos/pkg/repository"
	"gorm.io/gorm"
)

type currencyRepository struct {
	db *gorm.DB
}

// New creates a CurrencyRepository bound to the given session.
func New(db *gorm.DB) repository.CurrencyRepository {
	return &currencyRepository{db: db}
}

func (r *currencyRepository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*dto.CurrencyRead, error) {
	var m Currency
	err := r.db.WithContext(ctx).
		First(&m, "active = ? AND id = ?", true, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrCurrencyNotFound
	}
	if err != nil {
		return nil, err
	}
	read := toRead(m)
	return &read, nil
}

func (r *currencyRepository) GetByName(
	ctx context.Context,
	name string,
) (*dto.CurrencyRead, bool, error) {
	var m Currency
	err := r.db.WithContext(ctx).First(&m, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	read := toRead(m)
	return &read, m.Active, nil
}

func (r *currencyRepository) List(
	ctx context.Context,
) ([]dto.CurrencyRead, error) {
	var models []Currency
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	reads := make([]dto.CurrencyRead, len(models))
	for i, m := range models {
		reads[i] = toRead(m)
	}
	return reads, nil
}

func (r *currencyRepository) Create(
	ctx context.Context,
	create dto.CurrencyCreate,
) (*dto.CurrencyRead, error) {
	m := &Currency{ID: uuid.New(), Name: create.Name, Active: true}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	read := toRead(*m)
	return &read, nil
}

func (r *currencyRepository) Rename(
	ctx context.Context,
	id uuid.UUID,
	name string,
) error {
	res := r.db.WithContext(ctx).Model(&Currency{}).
		Where("id = ?", id).
		Update("name", name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrCurrencyNotFound
	}
	return nil
}

func (r *currencyRepository) SetActive(
	ctx context.Context,
	id uuid.UUID,
	active bool,
) error {
	res := r.db.WithContext(ctx).Model(&Currency{}).
		Where("id = ?", id).
		Update("active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrCurrencyNotFound
	}
	return nil
}

func (r *currencyRepository) TotalBalance(
	ctx context.Context,
	id uuid.UUID,
) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Table("fund_currencies").
		Where("currency_id = ?", id).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

func toRead(m Currency) dto.CurrencyRead {
	return dto.CurrencyRead{ID: m.ID, Name: m.Name}
}
