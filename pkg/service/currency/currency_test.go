package currency

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yosvanyperez/fondos/internal/fixtures/memrepo"
	"github.com/yosvanyperez/fondos/pkg/domain"
	"github.com/yosvanyperez/fondos/pkg/dto"
)

func newService() (*Service, *memrepo.Store, dto.UserRead) {
	store := memrepo.NewStore()
	actor := store.SeedUser(
		"admin", "admin@example.com", domain.RoleAdministrator, nil, nil)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(store, logger), store, actor
}

func TestAdd_NewCurrency(t *testing.T) {
	svc, _, _ := newService()

	added, err := svc.Add(
		context.Background(), dto.CurrencyCreate{Name: "CUP"})
	require.NoError(t, err)
	assert.Equal(t, "CUP", added.Name)

	listed, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.NotNil(t, listed[0].TotalBalance)
	assert.Zero(t, *listed[0].TotalBalance)
}

func TestAdd_ActiveDuplicate(t *testing.T) {
	svc, store, _ := newService()
	store.SeedCurrency("CUP")

	_, err := svc.Add(
		context.Background(), dto.CurrencyCreate{Name: "CUP"})
	assert.ErrorIs(t, err, domain.ErrCurrencyExists)
}

func TestAdd_ReactivatesDeletedName(t *testing.T) {
	svc, store, actor := newService()
	cup := store.SeedCurrency("CUP")

	_, err := svc.Delete(context.Background(), actor.ID, cup.ID)
	require.NoError(t, err)

	revived, err := svc.Add(
		context.Background(), dto.CurrencyCreate{Name: "CUP"})
	require.NoError(t, err)
	assert.Equal(t, cup.ID, revived.ID)

	listed, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, cup.ID, listed[0].ID)
}

func TestUpdate_RenamesCurrency(t *testing.T) {
	svc, store, _ := newService()
	cup := store.SeedCurrency("CUP")

	renamed, err := svc.Update(
		context.Background(), cup.ID, dto.CurrencyCreate{Name: "MLC"})
	require.NoError(t, err)
	assert.Equal(t, cup.ID, renamed.ID)
	assert.Equal(t, "MLC", renamed.Name)
}

func TestList_SumsBalancesAcrossFunds(t *testing.T) {
	svc, store, _ := newService()
	cup := store.SeedCurrency("CUP")
	usd := store.SeedCurrency("USD")
	first := store.SeedFund("Fondo Familiar", nil)
	second := store.SeedFund("Fondo Escolar", nil)

	funds, err := store.FundRepository()
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, funds.SetBalance(ctx, first.ID, cup.ID, 100))
	require.NoError(t, funds.SetBalance(ctx, second.ID, cup.ID, 50.5))
	require.NoError(t, funds.SetBalance(ctx, second.ID, usd.ID, 20))

	listed, err := svc.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	byName := map[string]float64{}
	for _, c := range listed {
		require.NotNil(t, c.TotalBalance)
		byName[c.Name] = *c.TotalBalance
	}
	assert.InDelta(t, 150.5, byName["CUP"], 1e-9)
	assert.InDelta(t, 20, byName["USD"], 1e-9)
}

func TestList_WithFundsCarriesHolders(t *testing.T) {
	svc, store, _ := newService()
	cup := store.SeedCurrency("CUP")
	fund := store.SeedFund("Fondo Familiar", nil)
	store.SeedFund("Fondo Vacío", nil)

	funds, err := store.FundRepository()
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, funds.SetBalance(ctx, fund.ID, cup.ID, 75))

	listed, err := svc.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Len(t, listed[0].Funds, 1)
	assert.Equal(t, fund.ID, listed[0].Funds[0].ID)
}

func TestDelete_RemovesBalancesAndLogsWithdrawals(t *testing.T) {
	svc, store, actor := newService()
	cup := store.SeedCurrency("CUP")
	usd := store.SeedCurrency("USD")
	first := store.SeedFund("Fondo Familiar", nil)
	second := store.SeedFund("Fondo Escolar", nil)

	funds, err := store.FundRepository()
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, funds.SetBalance(ctx, first.ID, cup.ID, 100))
	require.NoError(t, funds.SetBalance(ctx, second.ID, cup.ID, 40))
	require.NoError(t, funds.SetBalance(ctx, second.ID, usd.ID, 20))

	deleted, err := svc.Delete(ctx, actor.ID, cup.ID)
	require.NoError(t, err)
	assert.Equal(t, "CUP", deleted.Name)

	_, ok := store.Balance(first.ID, cup.ID)
	assert.False(t, ok)
	_, ok = store.Balance(second.ID, cup.ID)
	assert.False(t, ok)
	remaining, ok := store.Balance(second.ID, usd.ID)
	assert.True(t, ok)
	assert.InDelta(t, 20, remaining, 1e-9)

	logs := store.Logs()
	require.Len(t, logs, 2)
	total := 0.0
	for _, entry := range logs {
		assert.Equal(t, domain.ActivityWithdrawal, entry.Activity)
		assert.Equal(t, actor.ID, entry.UserID)
		require.NotNil(t, entry.CurrencyID)
		assert.Equal(t, cup.ID, *entry.CurrencyID)
		require.NotNil(t, entry.TransactionType)
		assert.Equal(t, domain.TransactionWithdrawal, *entry.TransactionType)
		require.NotNil(t, entry.Amount)
		total += *entry.Amount
	}
	assert.InDelta(t, 140, total, 1e-9)

	// The deleted currency is gone from the active list.
	listed, err := svc.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "USD", listed[0].Name)
}

func TestDelete_UnknownCurrency(t *testing.T) {
	svc, store, actor := newService()
	cup := store.SeedCurrency("CUP")

	_, err := svc.Delete(context.Background(), actor.ID, cup.ID)
	require.NoError(t, err)

	// Deleting an already deleted currency is a not-found.
	_, err = svc.Delete(context.Background(), actor.ID, cup.ID)
	assert.ErrorIs(t, err, domain.ErrCurrencyNotFound)
}
