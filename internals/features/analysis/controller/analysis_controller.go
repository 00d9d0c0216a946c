package controller

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"plnulp_backend/internals/constants"
	helper "plnulp_backend/internals/helpers"

	"plnulp_backend/internals/features/analysis/dto"
	"plnulp_backend/internals/features/analysis/service"
	sheetsvc "plnulp_backend/internals/features/sheets/service"
)

var validate = validator.New()

var presetChoices = map[int]bool{3: true, 6: true, 12: true, 24: true}

type AnalysisController struct {
	Service *service.Service
}

func NewAnalysisController(svc *service.Service) *AnalysisController {
	return &AnalysisController{Service: svc}
}

// =======================
// GET /api/u/analysis/columns
// =======================
func (ctrl *AnalysisController) GetColumns(c *fiber.Ctx) error {
	cols, err := ctrl.Service.SortedReadingColumns(c.Context())
	if err != nil {
		return respondPipelineError(c, err)
	}
	return helper.JsonOK(c, "Daftar kolom pembacaan berhasil diambil", dto.ColumnsResponse{
		Columns: cols,
		Total:   len(cols),
	})
}

// =======================
// GET /api/u/analysis/presets/:n
// =======================
func (ctrl *AnalysisController) GetPreset(c *fiber.Ctx) error {
	n, err := c.ParamsInt("n")
	if err != nil || !presetChoices[n] {
		return helper.JsonError(c, fiber.StatusBadRequest, "Preset harus salah satu dari 3, 6, 12, atau 24 bulan")
	}

	p1, p2, label, err := ctrl.Service.Preset(c.Context(), n)
	if err != nil {
		return respondPipelineError(c, err)
	}

	return helper.JsonOK(c, "Preset periode berhasil dihitung", dto.PresetResponse{
		Months:     n,
		Period1:    p1,
		Period2:    p2,
		RangeLabel: label,
	})
}

// =======================
// POST /api/u/analysis
// =======================
func (ctrl *AnalysisController) PostAnalyze(c *fiber.Ctx) error {
	req, resp := parseAnalyzeRequest(c)
	if req == nil {
		return resp // response error sudah terkirim
	}

	result, err := ctrl.Service.Run(c.Context(), toRunParams(req))
	if err != nil {
		return respondPipelineError(c, err)
	}

	return helper.JsonOK(c, "Hasil analisis berhasil dihitung", dto.AnalyzeResponse{
		Title:        analysisTitle(req),
		Mode:         req.Mode,
		Operator:     req.Operator,
		Threshold:    req.Threshold,
		Tolerance:    toleranceOf(req),
		PeriodLabel:  result.PeriodLabel,
		Columns:      result.DisplayColumns,
		Rows:         dto.RowsToMaps(result.Rows),
		Total:        len(result.Rows),
		Warnings:     result.Warnings,
		Distribution: result.Distribution,
	})
}

// =======================
// POST /api/u/analysis/export
// =======================
func (ctrl *AnalysisController) PostExport(c *fiber.Ctx) error {
	req, resp := parseAnalyzeRequest(c)
	if req == nil {
		return resp
	}

	result, err := ctrl.Service.Run(c.Context(), toRunParams(req))
	if err != nil {
		return respondPipelineError(c, err)
	}

	rows := make([][]any, 0, len(result.Rows))
	for _, r := range result.Rows {
		m := dto.RowToMap(r)
		row := make([]any, len(result.ExportColumns))
		for i, col := range result.ExportColumns {
			row[i] = m[col]
		}
		rows = append(rows, row)
	}

	buf, err := helper.BuildWorkbook("Hasil Analisis", result.ExportColumns, rows)
	if err != nil {
		log.Printf("[ERROR] Gagal membuat workbook: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat file Excel")
	}
	return helper.SendWorkbook(c, "hasil_analisis.xlsx", buf)
}

// =======================
// Helpers
// =======================

// parseAnalyzeRequest nil berarti response error sudah ditulis ke c.
func parseAnalyzeRequest(c *fiber.Ctx) (*dto.AnalyzeRequest, error) {
	var req dto.AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if req.Operator == "" {
		req.Operator = service.OpLE
	}
	if err := validate.Struct(&req); err != nil {
		return nil, helper.JsonValidationError(c, err)
	}
	for name := range req.Categories {
		if _, ok := constants.FindLBKBCategory(name); !ok {
			return nil, helper.JsonError(c, fiber.StatusUnprocessableEntity,
				fmt.Sprintf("Kategori LBKB tidak dikenal: '%s'", name))
		}
	}
	return &req, nil
}

func toRunParams(req *dto.AnalyzeRequest) service.RunParams {
	return service.RunParams{
		Mode:       req.Mode,
		Operator:   req.Operator,
		Threshold:  req.Threshold,
		Tolerance:  toleranceOf(req),
		CustomerID: strings.TrimSpace(req.CustomerID),
		Period1:    req.Period1,
		Period2:    req.Period2,
		Categories: req.Categories,
	}
}

func toleranceOf(req *dto.AnalyzeRequest) float64 {
	if req.Tolerance != nil {
		return *req.Tolerance
	}
	return service.DefaultTolerance
}

func analysisTitle(req *dto.AnalyzeRequest) string {
	switch req.Mode {
	case service.ModeLBKB:
		names := make([]string, 0, len(req.Categories))
		for name := range req.Categories {
			names = append(names, name)
		}
		if len(names) > 0 {
			return fmt.Sprintf("Hasil Analisis (LBKB: %s)", strings.Join(names, ", "))
		}
		return "Hasil Analisis (LBKB)"
	case service.ModeGabungan:
		return "Hasil Analisis (Gabungan Penurunan + LBKB)"
	default:
		return "Hasil Analisis (Penurunan Konsumsi)"
	}
}

// respondPipelineError petakan error pipeline ke status HTTP.
func respondPipelineError(c *fiber.Ctx, err error) error {
	var fetchErr *sheetsvc.FetchError
	if errors.As(err, &fetchErr) {
		log.Printf("[ERROR] Gagal mengambil data sheet: %v", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Gagal mengambil data dari Google Sheets")
	}
	if errors.Is(err, service.ErrEmptyPeriod) {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	var missingCols *service.MissingColumnsError
	if errors.As(err, &missingCols) {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	var missingID *service.MissingIDColumnError
	if errors.As(err, &missingID) {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	var noCategory *service.CategoryColumnNotFoundError
	if errors.As(err, &noCategory) {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	log.Printf("[ERROR] Analisis gagal: %v", err)
	return helper.JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
}
