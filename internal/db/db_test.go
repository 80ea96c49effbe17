package db

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationURL(t *testing.T) {
	cases := map[string]string{
		"postgres://u:p@localhost:5432/bank?sslmode=disable":   "pgx5://u:p@localhost:5432/bank?sslmode=disable",
		"postgresql://u:p@localhost:5432/bank?sslmode=disable": "pgx5://u:p@localhost:5432/bank?sslmode=disable",
		"pgx5://u:p@localhost/bank":                            "pgx5://u:p@localhost/bank",
	}

	for in, want := range cases {
		assert.Equal(t, want, MigrationURL(in), in)
	}
}

func TestNewConnectionRequiresURL(t *testing.T) {
	_, err := NewConnection(context.Background(), "", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestNewConnectionRejectsMalformedURL(t *testing.T) {
	_, err := NewConnection(context.Background(), "postgres://%zz", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestEmbeddedMigrations(t *testing.T) {
	up, err := migrationsFS.ReadFile("migrations/000001_init.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(up), "CREATE TABLE IF NOT EXISTS account")
	assert.Contains(t, string(up), "REFERENCES account (id)")
	// money columns carry no scale so decimals are never rounded
	assert.NotContains(t, string(up), "NUMERIC(")

	_, err = migrationsFS.ReadFile("migrations/000001_init.down.sql")
	require.NoError(t, err)
}

func TestRunInTxCommits(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	mock.ExpectExec("UPDATE account").WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	err = RunInTx(context.Background(), mock, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(tx pgx.Tx) error {
		_, err := tx.Exec(context.Background(), "UPDATE account SET owner = 'x'")
		return err
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTxRollsBackOnError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	boom := errors.New("boom")
	mock.ExpectBeginTx(pgx.TxOptions{})
	mock.ExpectRollback()

	err = RunInTx(context.Background(), mock, pgx.TxOptions{}, func(pgx.Tx) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTxReportsFailedRollback(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	boom := errors.New("boom")
	lost := errors.New("connection lost")
	mock.ExpectBeginTx(pgx.TxOptions{})
	mock.ExpectRollback().WillReturnError(lost)

	err = RunInTx(context.Background(), mock, pgx.TxOptions{}, func(pgx.Tx) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, lost)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTxBeginFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBeginTx(pgx.TxOptions{}).WillReturnError(errors.New("too many connections"))

	called := false
	err = RunInTx(context.Background(), mock, pgx.TxOptions{}, func(pgx.Tx) error {
		called = true
		return nil
	})

	require.Error(t, err)
	assert.False(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}
