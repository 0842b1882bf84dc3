package observability

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsHandler exposes the Prometheus scrape endpoint via Fiber. The store gauge is refreshed
// from storeAvailable on every scrape.
func MetricsHandler(storeAvailable func() bool) fiber.Handler {
	RegisterMetrics()
	scrape := adaptor.HTTPHandler(promhttp.Handler())

	return func(c *fiber.Ctx) error {
		if storeAvailable != nil {
			up := 0.0
			if storeAvailable() {
				up = 1
			}
			StoreUp().Set(up)
		}
		return scrape(c)
	}
}
