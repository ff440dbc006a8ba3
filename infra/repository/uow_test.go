package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	pkgrepo "github.com/yosvanyperez/fondos/pkg/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockUoW(t *testing.T) (*UoW, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{})
	require.NoError(t, err)
	return NewUoW(db), mock
}

func TestUoW_Repositories(t *testing.T) {
	uow, _ := newMockUoW(t)

	funds, err := uow.FundRepository()
	assert.NoError(t, err)
	assert.NotNil(t, funds)

	currencies, err := uow.CurrencyRepository()
	assert.NoError(t, err)
	assert.NotNil(t, currencies)

	users, err := uow.UserRepository()
	assert.NoError(t, err)
	assert.NotNil(t, users)

	roles, err := uow.RoleRepository()
	assert.NoError(t, err)
	assert.NotNil(t, roles)

	logs, err := uow.ActivityLogRepository()
	assert.NoError(t, err)
	assert.NotNil(t, logs)

	sessions, err := uow.SessionRepository()
	assert.NoError(t, err)
	assert.NotNil(t, sessions)
}

func TestUoW_DoCommitsOnSuccess(t *testing.T) {
	uow, mock := newMockUoW(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	err := uow.Do(context.Background(), func(uow pkgrepo.UnitOfWork) error {
		return nil
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUoW_DoRollsBackOnError(t *testing.T) {
	uow, mock := newMockUoW(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := uow.Do(context.Background(), func(uow pkgrepo.UnitOfWork) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}
