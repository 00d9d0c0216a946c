package route

import (
	"github.com/gofiber/fiber/v2"

	"plnulp_backend/internals/features/analysis/controller"
	"plnulp_backend/internals/features/analysis/service"
)

// AnalysisUserRoutes daftarkan endpoint analisis di bawah group user.
func AnalysisUserRoutes(api fiber.Router, svc *service.Service) {
	ctrl := controller.NewAnalysisController(svc)

	analysis := api.Group("/analysis")
	analysis.Get("/columns", ctrl.GetColumns)
	analysis.Get("/presets/:n", ctrl.GetPreset)
	analysis.Post("/", ctrl.PostAnalyze)
	analysis.Post("/export", ctrl.PostExport)
}
