package account

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/JhonesBR/go-bank/internal/db"
	"github.com/JhonesBR/go-bank/internal/failure"
	"github.com/JhonesBR/go-bank/internal/logger"
)

const selectColumns = "SELECT id, owner, balance FROM account"

// Store persists accounts. A Store built with NewStore runs every call on
// its own connection; WithTx binds it to a caller's unit of work.
type Store struct {
	db  db.Querier
	log *zap.Logger
}

func NewStore(q db.Querier, log *zap.Logger) *Store {
	return &Store{db: q, log: logger.OrNop(log).Named("account_store")}
}

// WithTx returns a store whose calls run inside tx.
func (s *Store) WithTx(tx pgx.Tx) *Store {
	return &Store{db: tx, log: s.log}
}

func (s *Store) Create(ctx context.Context, acc *Account) error {
	if err := validate(acc); err != nil {
		return err
	}
	if acc.ID != 0 {
		return failure.InvalidArgument("account id must not be set before creation, got %d", acc.ID)
	}

	var id int64
	err := s.db.QueryRow(ctx,
		"INSERT INTO account (owner, balance) VALUES ($1, $2) RETURNING id",
		acc.Owner, *acc.Balance,
	).Scan(&id)
	if err != nil {
		s.log.Error("failed to insert account", zap.Stringer("account", acc), zap.Error(err))
		return failure.Service(err, "failed to create account %s", acc)
	}

	acc.ID = id
	s.log.Debug("account created", zap.Int64("id", id))
	return nil
}

func (s *Store) Update(ctx context.Context, acc *Account) error {
	if err := validate(acc); err != nil {
		return err
	}
	if acc.ID == 0 {
		return failure.InvalidArgument("account id must be set for update")
	}

	tag, err := s.db.Exec(ctx,
		"UPDATE account SET owner = $1, balance = $2 WHERE id = $3",
		acc.Owner, *acc.Balance, acc.ID,
	)
	if err != nil {
		s.log.Error("failed to update account", zap.Stringer("account", acc), zap.Error(err))
		return failure.Service(err, "failed to update account %s", acc)
	}

	return checkSingleRow(tag.RowsAffected(), acc)
}

func (s *Store) Delete(ctx context.Context, acc *Account) error {
	if acc == nil {
		return failure.InvalidArgument("account is nil")
	}
	if acc.ID == 0 {
		return failure.InvalidArgument("account id must be set for delete")
	}

	tag, err := s.db.Exec(ctx, "DELETE FROM account WHERE id = $1", acc.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			s.log.Warn("account is still referenced by payments", zap.Int64("id", acc.ID), zap.Error(err))
			return failure.Service(err, "account %d is still referenced by payments", acc.ID)
		}
		s.log.Error("failed to delete account", zap.Int64("id", acc.ID), zap.Error(err))
		return failure.Service(err, "failed to delete account %d", acc.ID)
	}

	return checkSingleRow(tag.RowsAffected(), acc)
}

// FindByID returns nil, nil when no account has the given id.
func (s *Store) FindByID(ctx context.Context, id int64) (*Account, error) {
	return s.findOne(ctx, selectColumns+" WHERE id = $1", id)
}

// FindByIDForUpdate is FindByID with a row lock held until the surrounding
// transaction ends. Only meaningful on a store bound with WithTx.
func (s *Store) FindByIDForUpdate(ctx context.Context, id int64) (*Account, error) {
	return s.findOne(ctx, selectColumns+" WHERE id = $1 FOR UPDATE", id)
}

func (s *Store) findOne(ctx context.Context, query string, id int64) (*Account, error) {
	if id <= 0 {
		return nil, failure.InvalidArgument("account id must be positive, got %d", id)
	}

	rows, err := s.db.Query(ctx, query, id)
	if err != nil {
		s.log.Error("failed to query account", zap.Int64("id", id), zap.Error(err))
		return nil, failure.Service(err, "failed to retrieve account %d", id)
	}
	accounts, err := scanAccounts(rows)
	if err != nil {
		return nil, failure.Service(err, "failed to read account %d", id)
	}

	switch len(accounts) {
	case 0:
		return nil, nil
	case 1:
		return accounts[0], nil
	default:
		return nil, failure.Service(nil, "%d accounts share id %d", len(accounts), id)
	}
}

// FindAll returns every account ordered by id. The values are detached from
// storage.
func (s *Store) FindAll(ctx context.Context) ([]*Account, error) {
	rows, err := s.db.Query(ctx, selectColumns+" ORDER BY id")
	if err != nil {
		s.log.Error("failed to query accounts", zap.Error(err))
		return nil, failure.Service(err, "failed to retrieve all accounts")
	}
	accounts, err := scanAccounts(rows)
	if err != nil {
		return nil, failure.Service(err, "failed to read accounts")
	}
	return accounts, nil
}

func scanAccounts(rows pgx.Rows) ([]*Account, error) {
	defer rows.Close()

	accounts := make([]*Account, 0)
	for rows.Next() {
		var acc Account
		var balance decimal.Decimal
		if err := rows.Scan(&acc.ID, &acc.Owner, &balance); err != nil {
			return nil, err
		}
		acc.Balance = &balance
		accounts = append(accounts, &acc)
	}
	return accounts, rows.Err()
}

func validate(acc *Account) error {
	if acc == nil {
		return failure.InvalidArgument("account is nil")
	}
	if acc.Owner == "" {
		return failure.InvalidArgument("account owner must be set")
	}
	if acc.Balance == nil {
		return failure.InvalidArgument("account balance must be set")
	}
	return nil
}

func checkSingleRow(affected int64, acc *Account) error {
	switch {
	case affected == 0:
		return failure.NotFound("account %d was not found", acc.ID)
	case affected != 1:
		return failure.Service(nil, "exactly one row should be affected for account %d, got %d", acc.ID, affected)
	default:
		return nil
	}
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
