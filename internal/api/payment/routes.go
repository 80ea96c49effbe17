package payment

import (
	"github.com/gofiber/fiber/v3"
)

func InitializeRoutes(app *fiber.App, store *Store) {
	app.Get("/v1/payments", GetPaymentsHandler(store))
	app.Get("/v1/payments/:id", GetPaymentByIDHandler(store))
	app.Delete("/v1/payments/:id", DeletePaymentHandler(store))
}
