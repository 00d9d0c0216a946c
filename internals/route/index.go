package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"plnulp_backend/internals/configs"
	"plnulp_backend/internals/middlewares"

	analysisRoute "plnulp_backend/internals/features/analysis/route"
	analysisService "plnulp_backend/internals/features/analysis/service"
	historyRoute "plnulp_backend/internals/features/history/route"
	historyService "plnulp_backend/internals/features/history/service"
	sheetRoute "plnulp_backend/internals/features/sheets/route"
	sheetService "plnulp_backend/internals/features/sheets/service"
)

// SetupRoutes rakit seluruh dependency lalu daftarkan route user & admin.
func SetupRoutes(app *fiber.App) {
	// ==== shared services ====
	cache := sheetService.NewCache(configs.FetchCacheTTL)
	cache.StartSweeper()

	fetcher := sheetService.NewFetcher(cache)
	tokens := sheetService.NewTokenSource()
	writer := sheetService.NewWriter(tokens)

	analysisSvc := analysisService.NewService(fetcher)
	historySvc := historyService.NewService(writer)

	if !sheetService.HaveWriteCreds() {
		log.Println("⚠️ Kredensial service account tidak ditemukan; endpoint edit sheet & history akan menolak request")
	}

	// ==== user routes (baca & analisis) ====
	user := app.Group("/api/u")
	analysisRoute.AnalysisUserRoutes(user, analysisSvc)
	historyRoute.HistoryUserRoutes(user, historySvc)

	// ==== admin routes (tulis sheet, rate limit ketat) ====
	admin := app.Group("/api/a", middlewares.WriteRateLimiter())
	sheetRoute.SheetAdminRoutes(admin, writer, fetcher, historySvc)
	historyRoute.HistoryAdminRoutes(admin, historySvc)
}
