package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/imtti/imtti-api/internal/utils"
)

// StoreAvailability reports whether the persistence store can serve requests.
type StoreAvailability interface {
	Available() bool
}

// RequireStore short-circuits with 503 while no store connection exists.
func RequireStore(store StoreAvailability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if store == nil || !store.Available() {
			return utils.SendError(c, fiber.StatusServiceUnavailable, "Database not connected")
		}
		return c.Next()
	}
}
