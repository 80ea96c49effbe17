package api

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/JhonesBR/go-bank/internal/api/account"
	"github.com/JhonesBR/go-bank/internal/api/banking"
	"github.com/JhonesBR/go-bank/internal/api/payment"
	"github.com/JhonesBR/go-bank/internal/db"
	"github.com/JhonesBR/go-bank/internal/helper"
	"github.com/JhonesBR/go-bank/internal/logger"
)

// Dependencies replaces a global application context: everything the HTTP
// layer calls is handed in explicitly.
type Dependencies struct {
	Pool           db.Pool
	Accounts       *account.Store
	Payments       *payment.Store
	Engine         *banking.Engine
	Log            *zap.Logger
	RequestTimeout time.Duration
}

// NewDependencies wires the stores and the engine over one pool.
func NewDependencies(pool db.Pool, log *zap.Logger, requestTimeout time.Duration) Dependencies {
	log = logger.OrNop(log)
	accounts := account.NewStore(pool, log)
	payments := payment.NewStore(pool, accounts, log)

	return Dependencies{
		Pool:           pool,
		Accounts:       accounts,
		Payments:       payments,
		Engine:         banking.NewEngine(pool, accounts, payments, log),
		Log:            log,
		RequestTimeout: requestTimeout,
	}
}

func NewApp(deps Dependencies) *fiber.App {
	log := logger.OrNop(deps.Log)

	app := fiber.New(fiber.Config{
		ErrorHandler: helper.ErrorHandler(log),
	})
	app.Use(recoverer.New())
	app.Use(RequestContext(log, deps.RequestTimeout))

	InitializeRoutes(app, deps)
	return app
}

func InitializeRoutes(app *fiber.App, deps Dependencies) {
	app.Get("/healthz", HealthHandler(deps.Pool))
	account.InitializeRoutes(app, deps.Accounts)
	payment.InitializeRoutes(app, deps.Payments)
	banking.InitializeRoutes(app, deps.Engine, deps.Accounts)
}

// RequestContext tags every request with an X-Request-ID and bounds its
// context by timeout when timeout is positive.
func RequestContext(log *zap.Logger, timeout time.Duration) fiber.Handler {
	return func(c fiber.Ctx) error {
		requestID := c.Get(fiber.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(fiber.HeaderXRequestID, requestID)

		if timeout > 0 {
			ctx, cancel := context.WithTimeout(helper.Context(c), timeout)
			defer cancel()
			helper.SetContext(c, ctx)
		}

		start := time.Now()
		err := c.Next()
		log.Debug("request handled",
			zap.String("request_id", requestID),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return err
	}
}

func HealthHandler(pool db.Pool) fiber.Handler {
	return func(c fiber.Ctx) error {
		if err := pool.Ping(helper.Context(c)); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unavailable",
			})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}
