package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"plnulp_backend/internals/middlewares/logger"
)

// SetupMiddlewares memasang middleware dasar (urutan penting: recovery paling awal)
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(GlobalRateLimiter())
	app.Use(logger.LoggerMiddleware())
}
