package payment

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/JhonesBR/go-bank/internal/api/account"
	"github.com/JhonesBR/go-bank/internal/db"
	"github.com/JhonesBR/go-bank/internal/failure"
	"github.com/JhonesBR/go-bank/internal/logger"
)

const selectColumns = "SELECT id, amount, from_acc, to_acc, date_sent FROM payment"

// ErrDanglingReference is wrapped when a stored payment points at an
// account that no longer exists.
var ErrDanglingReference = errors.New("payment references a missing account")

// Store persists payments and hydrates their accounts through the account
// store bound to the same connection or unit of work.
type Store struct {
	db       db.Querier
	accounts *account.Store
	log      *zap.Logger
}

func NewStore(q db.Querier, accounts *account.Store, log *zap.Logger) *Store {
	return &Store{db: q, accounts: accounts, log: logger.OrNop(log).Named("payment_store")}
}

// WithTx returns a store whose calls, including account lookups, run inside tx.
func (s *Store) WithTx(tx pgx.Tx) *Store {
	return &Store{db: tx, accounts: s.accounts.WithTx(tx), log: s.log}
}

func (s *Store) Create(ctx context.Context, p *Payment) error {
	if err := validate(p); err != nil {
		return err
	}
	if p.ID != 0 {
		return failure.InvalidArgument("payment id must not be set before creation, got %d", p.ID)
	}
	p.Sent = toStoragePrecision(p.Sent)

	var id int64
	err := s.db.QueryRow(ctx,
		"INSERT INTO payment (amount, from_acc, to_acc, date_sent) VALUES ($1, $2, $3, $4) RETURNING id",
		*p.Amount, p.From.ID, p.To.ID, p.Sent,
	).Scan(&id)
	if err != nil {
		s.log.Error("failed to insert payment", zap.Stringer("payment", p), zap.Error(err))
		return failure.Service(err, "failed to create payment %s", p)
	}

	p.ID = id
	return nil
}

func (s *Store) Update(ctx context.Context, p *Payment) error {
	if err := validate(p); err != nil {
		return err
	}
	if p.ID == 0 {
		return failure.InvalidArgument("payment id must be set for update")
	}
	p.Sent = toStoragePrecision(p.Sent)

	tag, err := s.db.Exec(ctx,
		"UPDATE payment SET amount = $1, from_acc = $2, to_acc = $3, date_sent = $4 WHERE id = $5",
		*p.Amount, p.From.ID, p.To.ID, p.Sent, p.ID,
	)
	if err != nil {
		s.log.Error("failed to update payment", zap.Stringer("payment", p), zap.Error(err))
		return failure.Service(err, "failed to update payment %s", p)
	}

	return checkSingleRow(tag.RowsAffected(), p.ID)
}

func (s *Store) Delete(ctx context.Context, p *Payment) error {
	if p == nil {
		return failure.InvalidArgument("payment is nil")
	}
	if p.ID == 0 {
		return failure.InvalidArgument("payment id must be set for delete")
	}

	tag, err := s.db.Exec(ctx, "DELETE FROM payment WHERE id = $1", p.ID)
	if err != nil {
		s.log.Error("failed to delete payment", zap.Int64("id", p.ID), zap.Error(err))
		return failure.Service(err, "failed to delete payment %d", p.ID)
	}

	return checkSingleRow(tag.RowsAffected(), p.ID)
}

// FindByID returns nil, nil when no payment has the given id.
func (s *Store) FindByID(ctx context.Context, id int64) (*Payment, error) {
	if id <= 0 {
		return nil, failure.InvalidArgument("payment id must be positive, got %d", id)
	}

	payments, err := s.query(ctx, selectColumns+" WHERE id = $1", id)
	if err != nil {
		return nil, err
	}

	switch len(payments) {
	case 0:
		return nil, nil
	case 1:
		return payments[0], nil
	default:
		return nil, failure.Service(nil, "%d payments share id %d", len(payments), id)
	}
}

// FindAll returns every payment in storage order.
func (s *Store) FindAll(ctx context.Context) ([]*Payment, error) {
	return s.query(ctx, selectColumns+" ORDER BY id")
}

// FindIncoming returns the payments received by accountID in storage order.
func (s *Store) FindIncoming(ctx context.Context, accountID int64) ([]*Payment, error) {
	return s.query(ctx, selectColumns+" WHERE to_acc = $1 ORDER BY id", accountID)
}

// FindOutgoing returns the payments sent by accountID in storage order.
func (s *Store) FindOutgoing(ctx context.Context, accountID int64) ([]*Payment, error) {
	return s.query(ctx, selectColumns+" WHERE from_acc = $1 ORDER BY id", accountID)
}

type paymentRow struct {
	id     int64
	amount decimal.Decimal
	fromID int64
	toID   int64
	sent   time.Time
}

func (s *Store) query(ctx context.Context, sql string, args ...any) ([]*Payment, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		s.log.Error("failed to query payments", zap.Error(err))
		return nil, failure.Service(err, "failed to retrieve payments")
	}

	// pgx cannot run the account lookups while rows are still open.
	stored, err := scanRows(rows)
	if err != nil {
		return nil, failure.Service(err, "failed to read payments")
	}

	return s.hydrate(ctx, stored)
}

func scanRows(rows pgx.Rows) ([]paymentRow, error) {
	defer rows.Close()

	stored := make([]paymentRow, 0)
	for rows.Next() {
		var r paymentRow
		if err := rows.Scan(&r.id, &r.amount, &r.fromID, &r.toID, &r.sent); err != nil {
			return nil, err
		}
		stored = append(stored, r)
	}
	return stored, rows.Err()
}

// hydrate resolves each account once per call and hands every payment its
// own copy.
func (s *Store) hydrate(ctx context.Context, stored []paymentRow) ([]*Payment, error) {
	cache := make(map[int64]*account.Account)
	resolve := func(paymentID, accountID int64) (*account.Account, error) {
		if acc, ok := cache[accountID]; ok {
			return acc.Clone(), nil
		}
		acc, err := s.accounts.FindByID(ctx, accountID)
		if err != nil {
			return nil, err
		}
		if acc == nil {
			s.log.Error("payment references a missing account",
				zap.Int64("payment_id", paymentID), zap.Int64("account_id", accountID))
			return nil, failure.Service(ErrDanglingReference, "payment %d references account %d", paymentID, accountID)
		}
		cache[accountID] = acc
		return acc.Clone(), nil
	}

	payments := make([]*Payment, 0, len(stored))
	for _, r := range stored {
		from, err := resolve(r.id, r.fromID)
		if err != nil {
			return nil, err
		}
		to, err := resolve(r.id, r.toID)
		if err != nil {
			return nil, err
		}
		amount := r.amount
		payments = append(payments, &Payment{
			ID:     r.id,
			Amount: &amount,
			From:   from,
			To:     to,
			Sent:   r.sent,
		})
	}
	return payments, nil
}

func validate(p *Payment) error {
	switch {
	case p == nil:
		return failure.InvalidArgument("payment is nil")
	case p.Amount == nil:
		return failure.InvalidArgument("payment amount must be set")
	case p.Amount.IsNegative():
		return failure.InvalidArgument("payment amount must not be negative, got %s", p.Amount)
	case p.From == nil:
		return failure.InvalidArgument("payment sender must be set")
	case p.To == nil:
		return failure.InvalidArgument("payment receiver must be set")
	case p.Sent.IsZero():
		return failure.InvalidArgument("payment sent timestamp must be set")
	case p.From.ID == 0:
		return failure.InvalidArgument("payment sender must be a stored account")
	case p.To.ID == 0:
		return failure.InvalidArgument("payment receiver must be a stored account")
	}
	return nil
}

func checkSingleRow(affected int64, id int64) error {
	switch {
	case affected == 0:
		return failure.NotFound("payment %d was not found", id)
	case affected != 1:
		return failure.Service(nil, "exactly one row should be affected for payment %d, got %d", id, affected)
	default:
		return nil
	}
}
