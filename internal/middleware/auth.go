package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nestwell/nestwell/internal/types"
)

// RequireActor resolves the caller identity from the X-User-ID header (set by
// the fronting session layer) and stores it in the request context. Every
// permission-mutating service call receives this actor explicitly; there is
// no implicit trust of ids carried in request bodies.
func RequireActor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Get("X-User-ID")
		if userID == "" {
			return &types.AppError{
				Code:    fiber.StatusForbidden,
				Message: "missing caller identity",
				Type:    "authorization",
			}
		}

		c.Locals("actor", types.Actor{UserID: userID})
		return c.Next()
	}
}

// ActorFromCtx returns the actor stored by RequireActor.
func ActorFromCtx(c *fiber.Ctx) (types.Actor, bool) {
	actor, ok := c.Locals("actor").(types.Actor)
	return actor, ok
}
