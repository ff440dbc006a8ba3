package memrepo

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/yosvanyperez/fondos/pkg/domain"
	"github.com/yosvanyperez/fondos/pkg/dto"
)

type currencyRepo struct{ s *Store }

func (r currencyRepo) Get(
	ctx context.Context,
	id uuid.UUID,
) (*dto.CurrencyRead, error) {
	row, ok := r.s.currencies[id]
	if !ok || !row.active {
		return nil, domain.ErrCurrencyNotFound
	}
	return &dto.CurrencyRead{ID: row.id, Name: row.name}, nil
}

func (r currencyRepo) GetByName(
	ctx context.Context,
	name string,
) (*dto.CurrencyRead, bool, error) {
	for _, row := range r.s.currencies {
		if row.name == name {
			return &dto.CurrencyRead{ID: row.id, Name: row.name},
				row.active, nil
		}
	}
	// A miss is a regular outcome here, not an error; Add relies on it to
	// decide between create, reactivate and conflict.
	return nil, false, nil
}

func (r currencyRepo) List(
	ctx context.Context,
) ([]dto.CurrencyRead, error) {
	var reads []dto.CurrencyRead
	for _, row := range r.s.currencies {
		if row.active {
			reads = append(reads, dto.CurrencyRead{ID: row.id, Name: row.name})
		}
	}
	sort.Slice(reads, func(i, j int) bool {
		return reads[i].Name < reads[j].Name
	})
	return reads, nil
}

func (r currencyRepo) Create(
	ctx context.Context,
	create dto.CurrencyCreate,
) (*dto.CurrencyRead, error) {
	row := &currencyRow{id: uuid.New(), name: create.Name, active: true}
	r.s.currencies[row.id] = row
	return &dto.CurrencyRead{ID: row.id, Name: row.name}, nil
}

func (r currencyRepo) Rename(
	ctx context.Context,
	id uuid.UUID,
	name string,
) error {
	row, ok := r.s.currencies[id]
	if !ok || !row.active {
		return domain.ErrCurrencyNotFound
	}
	row.name = name
	return nil
}

func (r currencyRepo) SetActive(
	ctx context.Context,
	id uuid.UUID,
	active bool,
) error {
	row, ok := r.s.currencies[id]
	if !ok {
		return domain.ErrCurrencyNotFound
	}
	row.active = active
	return nil
}

func (r currencyRepo) TotalBalance(
	ctx context.Context,
	id uuid.UUID,
) (float64, error) {
	var total float64
	for _, held := range r.s.balances {
		total += held[id]
	}
	return total, nil
}
