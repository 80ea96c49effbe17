package banking

import (
	"github.com/gofiber/fiber/v3"

	"github.com/JhonesBR/go-bank/internal/api/account"
)

func InitializeRoutes(app *fiber.App, engine *Engine, accounts *account.Store) {
	app.Post("/v1/payments", ExecutePaymentHandler(engine, accounts))
	app.Get("/v1/accounts/:id/payments/incoming", GetIncomingPaymentsHandler(engine, accounts))
	app.Get("/v1/accounts/:id/payments/outgoing", GetOutgoingPaymentsHandler(engine, accounts))
}
