package function

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/dimreg/internal/db"
)

func TestPostgresRegister(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	mock.ExpectExec(`INSERT INTO functions .* ON CONFLICT \(tenant, function_name\) DO NOTHING`).
		WithArgs("acme", "check_region").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewPostgres(sqlDB).Register(context.Background(), "acme", "check_region"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRegister_Error(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	mock.ExpectExec(`INSERT INTO functions`).WillReturnError(errors.New("connection reset"))

	err = NewPostgres(sqlDB).Register(context.Background(), "acme", "check_region")
	var dbErr *db.Error
	require.ErrorAs(t, err, &dbErr)
	assert.Equal(t, db.OpExec, dbErr.Op)
}

func TestPostgresExists(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	mock.ExpectQuery(`SELECT EXISTS`).WithArgs("acme", "check_region").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`SELECT EXISTS`).WithArgs("acme", "missing").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	repo := NewPostgres(sqlDB)
	ok, err := repo.Exists(context.Background(), "acme", "check_region")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Exists(context.Background(), "acme", "missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}
