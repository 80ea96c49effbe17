package banking

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"github.com/JhonesBR/go-bank/internal/api/account"
	"github.com/JhonesBR/go-bank/internal/api/payment"
	"github.com/JhonesBR/go-bank/internal/failure"
	"github.com/JhonesBR/go-bank/internal/helper"
)

func ExecutePaymentHandler(engine *Engine, accounts *account.Store) fiber.Handler {
	return func(c fiber.Ctx) error {
		var input ExecutePaymentSchema
		if err := c.Bind().Body(&input); err != nil {
			return fiber.ErrBadRequest
		}
		if err := helper.ValidateInput(&input); err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		from, err := findExistingAccount(helper.Context(c), accounts, input.FromId)
		if err != nil {
			return err
		}
		to, err := findExistingAccount(helper.Context(c), accounts, input.ToId)
		if err != nil {
			return err
		}

		p := payment.New(*input.Amount, from, to)
		if err := engine.ExecutePayment(helper.Context(c), p); err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(payment.ToShowSchema(p))
	}
}

func GetIncomingPaymentsHandler(engine *Engine, accounts *account.Store) fiber.Handler {
	return accountPaymentsHandler(accounts, engine.FindAllIncomingPaymentsToAccount)
}

func GetOutgoingPaymentsHandler(engine *Engine, accounts *account.Store) fiber.Handler {
	return accountPaymentsHandler(accounts, engine.FindOutgoingPaymentsToAccount)
}

func accountPaymentsHandler(
	accounts *account.Store,
	find func(context.Context, *account.Account) ([]*payment.Payment, error),
) fiber.Handler {
	return func(c fiber.Ctx) error {
		id, err := helper.ParamID(c)
		if err != nil {
			return err
		}

		acc, err := findExistingAccount(helper.Context(c), accounts, id)
		if err != nil {
			return err
		}

		payments, err := find(helper.Context(c), acc)
		if err != nil {
			return err
		}

		return c.JSON(payment.ToShowSchemas(payments))
	}
}

func findExistingAccount(ctx context.Context, accounts *account.Store, id int64) (*account.Account, error) {
	acc, err := accounts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, failure.NotFound("account %d was not found", id)
	}
	return acc, nil
}
