package banking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/JhonesBR/go-bank/internal/api/account"
	"github.com/JhonesBR/go-bank/internal/api/payment"
	"github.com/JhonesBR/go-bank/internal/db"
	"github.com/JhonesBR/go-bank/internal/failure"
	"github.com/JhonesBR/go-bank/internal/logger"
)

// ErrStaleAccount is wrapped when the caller's copy of an account no longer
// matches the locked row.
var ErrStaleAccount = errors.New("account changed since it was read")

// Transfers run under READ COMMITTED with both account rows locked FOR
// UPDATE in ascending id order, so transfers sharing an account serialize
// without deadlocking.
var transferTxOptions = pgx.TxOptions{IsoLevel: pgx.ReadCommitted}

var readTxOptions = pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}

// Engine executes payments: one debit, one credit and one payment row per
// unit of work.
type Engine struct {
	pool     db.Pool
	accounts *account.Store
	payments *payment.Store
	log      *zap.Logger
	now      func() time.Time
}

func NewEngine(pool db.Pool, accounts *account.Store, payments *payment.Store, log *zap.Logger) *Engine {
	return &Engine{
		pool:     pool,
		accounts: accounts,
		payments: payments,
		log:      logger.OrNop(log).Named("banking"),
		now:      payment.Now,
	}
}

// ExecutePayment moves p.Amount from p.From to p.To and records p. On
// success p.ID and p.Sent are set and both account balances reflect the
// transfer. On failure p, p.From and p.To are left exactly as they were.
func (e *Engine) ExecutePayment(ctx context.Context, p *payment.Payment) error {
	if err := validatePayment(p); err != nil {
		e.log.Warn("payment rejected", zap.Error(err))
		return err
	}
	if p.From.Balance.LessThan(*p.Amount) {
		e.log.Warn("payment rejected: insufficient balance", zap.Stringer("payment", p))
		return failure.InsufficientBalance("account %d holds %s but the payment needs %s",
			p.From.ID, p.From.Balance, p.Amount)
	}

	log := e.log.With(
		zap.String("transfer_id", uuid.NewString()),
		zap.Int64("from", p.From.ID),
		zap.Int64("to", p.To.ID),
		zap.Stringer("amount", p.Amount),
	)

	fromBalance, toBalance := p.From.Balance, p.To.Balance
	err := db.RunInTx(ctx, e.pool, transferTxOptions, func(tx pgx.Tx) error {
		return e.transfer(ctx, tx, p)
	})
	if err != nil {
		p.From.Balance, p.To.Balance = fromBalance, toBalance
		p.ID = 0
		p.Sent = time.Time{}

		log.Error("payment failed and was rolled back", zap.Error(err))
		if failure.Classified(err) {
			return err
		}
		return failure.Service(err, "failed to execute payment %s", p)
	}

	log.Info("payment executed", zap.Int64("payment_id", p.ID))
	return nil
}

func (e *Engine) transfer(ctx context.Context, tx pgx.Tx, p *payment.Payment) error {
	accounts := e.accounts.WithTx(tx)
	if err := lockAccounts(ctx, accounts, p.From, p.To); err != nil {
		return err
	}

	debited := p.From.Balance.Sub(*p.Amount)
	credited := p.To.Balance.Add(*p.Amount)
	p.From.Balance = &debited
	p.To.Balance = &credited
	p.Sent = e.now()

	if err := accounts.Update(ctx, p.From); err != nil {
		return err
	}
	if err := accounts.Update(ctx, p.To); err != nil {
		return err
	}
	return e.payments.WithTx(tx).Create(ctx, p)
}

func lockAccounts(ctx context.Context, accounts *account.Store, a, b *account.Account) error {
	if b.ID < a.ID {
		a, b = b, a
	}
	for _, acc := range []*account.Account{a, b} {
		stored, err := accounts.FindByIDForUpdate(ctx, acc.ID)
		if err != nil {
			return err
		}
		if stored == nil {
			return failure.NotFound("account %d was not found", acc.ID)
		}
		if !stored.Equal(acc) {
			return failure.Service(ErrStaleAccount, "account %d is %s in storage", acc.ID, stored)
		}
	}
	return nil
}

// FindAllIncomingPaymentsToAccount returns every payment received by acc in
// storage order.
func (e *Engine) FindAllIncomingPaymentsToAccount(ctx context.Context, acc *account.Account) ([]*payment.Payment, error) {
	return e.findPayments(ctx, acc, (*payment.Store).FindIncoming)
}

// FindOutgoingPaymentsToAccount returns every payment sent by acc in
// storage order.
func (e *Engine) FindOutgoingPaymentsToAccount(ctx context.Context, acc *account.Account) ([]*payment.Payment, error) {
	return e.findPayments(ctx, acc, (*payment.Store).FindOutgoing)
}

type paymentFinder func(*payment.Store, context.Context, int64) ([]*payment.Payment, error)

func (e *Engine) findPayments(ctx context.Context, acc *account.Account, find paymentFinder) ([]*payment.Payment, error) {
	if err := validateAccount(acc); err != nil {
		e.log.Warn("payment lookup rejected", zap.Error(err))
		return nil, err
	}

	var payments []*payment.Payment
	err := db.RunInTx(ctx, e.pool, readTxOptions, func(tx pgx.Tx) error {
		stored, err := e.accounts.WithTx(tx).FindByID(ctx, acc.ID)
		if err != nil {
			return err
		}
		if stored == nil {
			return failure.NotFound("account %d was not found", acc.ID)
		}

		payments, err = find(e.payments.WithTx(tx), ctx, acc.ID)
		return err
	})
	if err != nil {
		if failure.Classified(err) {
			return nil, err
		}
		e.log.Error("failed to retrieve payments", zap.Int64("account", acc.ID), zap.Error(err))
		return nil, failure.Service(err, "failed to retrieve payments of account %d", acc.ID)
	}
	return payments, nil
}

func validatePayment(p *payment.Payment) error {
	switch {
	case p == nil:
		return failure.InvalidArgument("payment is nil")
	case p.ID != 0:
		return failure.InvalidArgument("payment id must not be set before execution, got %d", p.ID)
	case p.From == nil:
		return failure.InvalidArgument("payment sender must be set")
	case p.To == nil:
		return failure.InvalidArgument("payment receiver must be set")
	case p.Amount == nil:
		return failure.InvalidArgument("payment amount must be set")
	case p.IsSent():
		return failure.InvalidArgument("payment sent timestamp is assigned on execution")
	case sameAccount(p.From, p.To):
		return failure.InvalidArgument("payment sender and receiver are the same account")
	case p.Amount.IsNegative():
		return failure.InvalidArgument("payment amount must not be negative, got %s", p.Amount)
	case p.From.ID == 0:
		return failure.InvalidArgument("payment sender must be a stored account")
	case p.To.ID == 0:
		return failure.InvalidArgument("payment receiver must be a stored account")
	case p.From.Balance == nil:
		return failure.InvalidArgument("payment sender balance must be set")
	case p.To.Balance == nil:
		return failure.InvalidArgument("payment receiver balance must be set")
	}
	return nil
}

func sameAccount(a, b *account.Account) bool {
	return a == b || (a.ID != 0 && a.ID == b.ID) || a.Equal(b)
}

func validateAccount(acc *account.Account) error {
	switch {
	case acc == nil:
		return failure.InvalidArgument("account is nil")
	case acc.ID == 0:
		return failure.InvalidArgument("account id must be set")
	case acc.Owner == "":
		return failure.InvalidArgument("account owner must be set")
	case acc.Balance == nil:
		return failure.InvalidArgument("account balance must be set")
	}
	return nil
}
