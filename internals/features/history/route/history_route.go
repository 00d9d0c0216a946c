package route

import (
	"github.com/gofiber/fiber/v2"

	"plnulp_backend/internals/features/history/controller"
	"plnulp_backend/internals/features/history/service"
)

// HistoryUserRoutes endpoint baca history untuk semua pengguna.
func HistoryUserRoutes(api fiber.Router, svc *service.Service) {
	ctrl := controller.NewHistoryController(svc)

	history := api.Group("/history/:target")
	history.Get("/", ctrl.GetList)
	history.Get("/export", ctrl.GetExport)
}

// HistoryAdminRoutes endpoint bootstrap HISTORY_LOG, hanya group admin.
func HistoryAdminRoutes(api fiber.Router, svc *service.Service) {
	ctrl := controller.NewHistoryController(svc)

	history := api.Group("/history/:target")
	history.Post("/", ctrl.PostEnsure)
}
