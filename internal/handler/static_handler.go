package handler

import (
	"path/filepath"

	"github.com/gofiber/fiber/v2"
)

// IndexFallback serves the main HTML entry point for any path no other route matched.
func IndexFallback(staticDir string) fiber.Handler {
	index := filepath.Join(staticDir, "index.html")
	return func(c *fiber.Ctx) error {
		return c.SendFile(index)
	}
}
