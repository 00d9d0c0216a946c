package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"plnulp_backend/internals/configs"
	"plnulp_backend/internals/constants"
	helper "plnulp_backend/internals/helpers"

	"plnulp_backend/internals/features/history/dto"
	"plnulp_backend/internals/features/history/model"
	"plnulp_backend/internals/features/history/service"
	sheetsvc "plnulp_backend/internals/features/sheets/service"
)

const dateQueryLayout = "2006-01-02"

type HistoryController struct {
	Service *service.Service
}

func NewHistoryController(svc *service.Service) *HistoryController {
	return &HistoryController{Service: svc}
}

// =======================
// GET /api/u/history/:target
// =======================
func (ctrl *HistoryController) GetList(c *fiber.Ctx) error {
	target, spreadsheetID, resp := resolveHistoryTarget(c)
	if spreadsheetID == "" {
		return resp
	}

	entries, exists, ok, resp := ctrl.listFiltered(c, spreadsheetID)
	if !ok {
		return resp
	}
	if !exists {
		return helper.JsonOK(c, "Belum ada history untuk sheet ini", dto.HistoryListResponse{
			Target:  target,
			Exists:  false,
			Entries: []dto.HistoryEntryDTO{},
		})
	}

	return helper.JsonOK(c, "History berhasil diambil", dto.HistoryListResponse{
		Target:  target,
		Exists:  true,
		Entries: dto.FromEntries(entries),
		Total:   len(entries),
	})
}

// =======================
// GET /api/u/history/:target/export
// =======================
func (ctrl *HistoryController) GetExport(c *fiber.Ctx) error {
	_, spreadsheetID, resp := resolveHistoryTarget(c)
	if spreadsheetID == "" {
		return resp
	}

	entries, exists, ok, resp := ctrl.listFiltered(c, spreadsheetID)
	if !ok {
		return resp
	}
	if !exists {
		return helper.JsonError(c, fiber.StatusNotFound, "Worksheet HISTORY_LOG belum ada")
	}

	rows := make([][]any, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []any{
			e.RawTimestamp, e.User, e.Action, e.TargetSheetTitle, e.TargetSheetID, e.Details, e.Status,
		})
	}
	buf, err := helper.BuildWorkbook(constants.HistorySheetName, constants.HistoryHeader, rows)
	if err != nil {
		log.Printf("[ERROR] Gagal membuat workbook history: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat file Excel")
	}
	return helper.SendWorkbook(c, "history_log.xlsx", buf)
}

// =======================
// POST /api/a/history/:target
// =======================

// PostEnsure buat worksheet HISTORY_LOG sekarang tanpa menunggu aksi
// tulis pertama.
func (ctrl *HistoryController) PostEnsure(c *fiber.Ctx) error {
	target, spreadsheetID, resp := resolveHistoryTarget(c)
	if spreadsheetID == "" {
		return resp
	}
	if !sheetsvc.HaveWriteCreds() {
		return helper.JsonError(c, fiber.StatusServiceUnavailable,
			"Kredensial service account belum dikonfigurasi; fitur edit sheet nonaktif")
	}

	ref, err := ctrl.Service.Ensure(c.Context(), spreadsheetID)
	if err != nil {
		return respondHistoryError(c, err)
	}
	return helper.JsonCreated(c, "Worksheet HISTORY_LOG siap", fiber.Map{
		"target":          target,
		"worksheet_title": ref.Title,
		"sheet_id":        ref.SheetID,
	})
}

// =======================
// Helpers
// =======================

// listFiltered ok=false berarti response error sudah ditulis ke c.
func (ctrl *HistoryController) listFiltered(c *fiber.Ctx, spreadsheetID string) (entries []model.HistoryEntry, exists, ok bool, resp error) {
	// membaca HISTORY_LOG lewat Sheets API juga butuh service account
	if !sheetsvc.HaveWriteCreds() {
		return nil, false, false, helper.JsonError(c, fiber.StatusServiceUnavailable,
			"Kredensial service account belum dikonfigurasi; history tidak bisa dibaca")
	}

	filter, filterOK, resp := parseFilter(c)
	if !filterOK {
		return nil, false, false, resp
	}

	all, exists, err := ctrl.Service.List(c.Context(), spreadsheetID)
	if err != nil {
		return nil, false, false, respondHistoryError(c, err)
	}
	if !exists {
		return nil, false, true, nil
	}
	return service.FilterEntries(all, filter), true, true, nil
}

// resolveHistoryTarget spreadsheetID kosong berarti response error sudah
// ditulis ke c.
func resolveHistoryTarget(c *fiber.Ctx) (name, spreadsheetID string, resp error) {
	switch strings.ToLower(strings.TrimSpace(c.Params("target"))) {
	case "konsumsi":
		return "konsumsi", configs.SheetIDCons, nil
	case "lbkb":
		return "lbkb", configs.SheetIDLBKB, nil
	default:
		return "", "", helper.JsonError(c, fiber.StatusBadRequest, "Target sheet harus 'konsumsi' atau 'lbkb'")
	}
}

// parseFilter ambil kriteria dari query string: user (contains), action
// (boleh diulang atau dipisah koma), date_from/date_to (YYYY-MM-DD,
// tanggal lokal Asia/Jakarta). ok=false berarti response error sudah
// ditulis ke c.
func parseFilter(c *fiber.Ctx) (f service.Filter, ok bool, resp error) {
	f = service.Filter{UserContains: strings.TrimSpace(c.Query("user"))}

	for _, raw := range strings.Split(c.Query("action"), ",") {
		if a := strings.TrimSpace(raw); a != "" {
			f.Actions = append(f.Actions, a)
		}
	}

	if raw := strings.TrimSpace(c.Query("date_from")); raw != "" {
		t, err := time.ParseInLocation(dateQueryLayout, raw, configs.Jakarta())
		if err != nil {
			return f, false, helper.JsonError(c, fiber.StatusBadRequest, "date_from harus berformat YYYY-MM-DD")
		}
		f.DateFrom = &t
	}
	if raw := strings.TrimSpace(c.Query("date_to")); raw != "" {
		t, err := time.ParseInLocation(dateQueryLayout, raw, configs.Jakarta())
		if err != nil {
			return f, false, helper.JsonError(c, fiber.StatusBadRequest, "date_to harus berformat YYYY-MM-DD")
		}
		f.DateTo = &t
	}
	return f, true, nil
}

func respondHistoryError(c *fiber.Ctx, err error) error {
	var we *sheetsvc.WriteError
	if errors.As(err, &we) {
		log.Printf("[ERROR] Operasi Sheets API gagal: %v", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Operasi Google Sheets gagal: "+we.Op)
	}
	log.Printf("[ERROR] Operasi history gagal: %v", err)
	return helper.JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
}
