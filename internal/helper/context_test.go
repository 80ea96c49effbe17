package helper

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tagKey struct{}

func TestContextFallsBackToRequest(t *testing.T) {
	app := fiber.New()
	var hasDeadline bool
	app.Get("/", func(c fiber.Ctx) error {
		_, hasDeadline = Context(c).Deadline()
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.False(t, hasDeadline)
}

func TestSetContextIsSeenByLaterHandlers(t *testing.T) {
	app := fiber.New()
	app.Use(func(c fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(context.WithValue(Context(c), tagKey{}, "tagged"), time.Minute)
		defer cancel()
		SetContext(c, ctx)
		return c.Next()
	})

	var (
		hasDeadline bool
		tag         any
	)
	app.Get("/", func(c fiber.Ctx) error {
		ctx := Context(c)
		_, hasDeadline = ctx.Deadline()
		tag = ctx.Value(tagKey{})
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.True(t, hasDeadline)
	assert.Equal(t, "tagged", tag)
}
