package route

import (
	"github.com/gofiber/fiber/v2"

	"plnulp_backend/internals/features/sheets/controller"
	sheetsvc "plnulp_backend/internals/features/sheets/service"

	historysvc "plnulp_backend/internals/features/history/service"
)

// SheetAdminRoutes daftarkan endpoint edit sheet di bawah group admin.
func SheetAdminRoutes(api fiber.Router, writer *sheetsvc.Writer, fetcher *sheetsvc.Fetcher, history *historysvc.Service) {
	ctrl := controller.NewSheetController(writer, fetcher, history)

	sheets := api.Group("/sheets/:target")
	sheets.Get("/header", ctrl.GetHeader)
	sheets.Post("/columns", ctrl.PostColumn)
	sheets.Post("/rows", ctrl.PostRow)
}
