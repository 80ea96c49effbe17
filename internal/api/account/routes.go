package account

import (
	"github.com/gofiber/fiber/v3"
)

func InitializeRoutes(app *fiber.App, store *Store) {
	app.Get("/v1/accounts", GetAccountsHandler(store))
	app.Post("/v1/accounts", CreateNewAccountHandler(store))
	app.Get("/v1/accounts/:id", GetAccountByIDHandler(store))
	app.Put("/v1/accounts/:id", UpdateAccountHandler(store))
	app.Delete("/v1/accounts/:id", DeleteAccountHandler(store))
}
