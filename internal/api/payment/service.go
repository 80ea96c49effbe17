package payment

import (
	"github.com/gofiber/fiber/v3"

	"github.com/JhonesBR/go-bank/internal/failure"
	"github.com/JhonesBR/go-bank/internal/helper"
)

func GetPaymentsHandler(store *Store) fiber.Handler {
	return func(c fiber.Ctx) error {
		pagination := helper.GetPagination[PaymentShowSchema](c)

		payments, err := store.FindAll(helper.Context(c))
		if err != nil {
			return err
		}

		return c.JSON(helper.Paginate(pagination, ToShowSchemas(payments)))
	}
}

func GetPaymentByIDHandler(store *Store) fiber.Handler {
	return func(c fiber.Ctx) error {
		id, err := helper.ParamID(c)
		if err != nil {
			return err
		}

		p, err := store.FindByID(helper.Context(c), id)
		if err != nil {
			return err
		}
		if p == nil {
			return failure.NotFound("payment %d was not found", id)
		}

		return c.JSON(ToShowSchema(p))
	}
}

func DeletePaymentHandler(store *Store) fiber.Handler {
	return func(c fiber.Ctx) error {
		id, err := helper.ParamID(c)
		if err != nil {
			return err
		}

		if err := store.Delete(helper.Context(c), &Payment{ID: id}); err != nil {
			return err
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
