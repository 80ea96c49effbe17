package helper

import (
	"context"

	"github.com/gofiber/fiber/v3"
)

type requestContextKey struct{}

// SetContext makes ctx the context Context hands to the stores for the rest
// of the request.
func SetContext(c fiber.Ctx, ctx context.Context) {
	c.Locals(requestContextKey{}, ctx)
}

// Context returns the context stored by SetContext. Without one it falls
// back to c, whose Deadline and Done never fire.
func Context(c fiber.Ctx) context.Context {
	if ctx, ok := c.Locals(requestContextKey{}).(context.Context); ok {
		return ctx
	}
	return c
}
