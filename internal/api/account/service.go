package account

import (
	"github.com/gofiber/fiber/v3"

	"github.com/JhonesBR/go-bank/internal/failure"
	"github.com/JhonesBR/go-bank/internal/helper"
)

func CreateNewAccountHandler(store *Store) fiber.Handler {
	return func(c fiber.Ctx) error {
		// Parse create account schema
		var input CreateAccountSchema
		if err := c.Bind().Body(&input); err != nil {
			return fiber.ErrBadRequest
		}
		if err := helper.ValidateInput(&input); err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		acc := New(input.Owner, *input.Balance)
		if err := store.Create(helper.Context(c), acc); err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(ToShowSchema(acc))
	}
}

func GetAccountsHandler(store *Store) fiber.Handler {
	return func(c fiber.Ctx) error {
		pagination := helper.GetPagination[AccountShowSchema](c)

		accounts, err := store.FindAll(helper.Context(c))
		if err != nil {
			return err
		}

		items := make([]AccountShowSchema, 0, len(accounts))
		for _, acc := range accounts {
			items = append(items, ToShowSchema(acc))
		}

		return c.JSON(helper.Paginate(pagination, items))
	}
}

func GetAccountByIDHandler(store *Store) fiber.Handler {
	return func(c fiber.Ctx) error {
		id, err := helper.ParamID(c)
		if err != nil {
			return err
		}

		acc, err := store.FindByID(helper.Context(c), id)
		if err != nil {
			return err
		}
		if acc == nil {
			return failure.NotFound("account %d was not found", id)
		}

		return c.JSON(ToShowSchema(acc))
	}
}

func UpdateAccountHandler(store *Store) fiber.Handler {
	return func(c fiber.Ctx) error {
		id, err := helper.ParamID(c)
		if err != nil {
			return err
		}

		var input UpdateAccountSchema
		if err := c.Bind().Body(&input); err != nil {
			return fiber.ErrBadRequest
		}
		if err := helper.ValidateInput(&input); err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		acc := New(input.Owner, *input.Balance)
		acc.ID = id
		if err := store.Update(helper.Context(c), acc); err != nil {
			return err
		}

		return c.JSON(ToShowSchema(acc))
	}
}

func DeleteAccountHandler(store *Store) fiber.Handler {
	return func(c fiber.Ctx) error {
		id, err := helper.ParamID(c)
		if err != nil {
			return err
		}

		if err := store.Delete(helper.Context(c), &Account{ID: id}); err != nil {
			return err
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
