package controller

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"plnulp_backend/internals/configs"
	"plnulp_backend/internals/constants"
	helper "plnulp_backend/internals/helpers"

	historysvc "plnulp_backend/internals/features/history/service"
	"plnulp_backend/internals/features/sheets/dto"
	sheetsvc "plnulp_backend/internals/features/sheets/service"
)

var validate = validator.New()

// =======================
// Target sheet yang bisa diedit
// =======================

type sheetTarget struct {
	Name          string
	SpreadsheetID string
	GID           string
}

func resolveTarget(name string) (*sheetTarget, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "konsumsi":
		return &sheetTarget{Name: "konsumsi", SpreadsheetID: configs.SheetIDCons, GID: configs.GIDCons}, true
	case "lbkb":
		return &sheetTarget{Name: "lbkb", SpreadsheetID: configs.SheetIDLBKB, GID: configs.GIDLBKB}, true
	default:
		return nil, false
	}
}

type SheetController struct {
	Writer  *sheetsvc.Writer
	Fetcher *sheetsvc.Fetcher
	History *historysvc.Service
}

func NewSheetController(writer *sheetsvc.Writer, fetcher *sheetsvc.Fetcher, history *historysvc.Service) *SheetController {
	return &SheetController{Writer: writer, Fetcher: fetcher, History: history}
}

// =======================
// GET /api/a/sheets/:target/header
// =======================
func (ctrl *SheetController) GetHeader(c *fiber.Ctx) error {
	target, ref, resp := ctrl.prepareTarget(c)
	if ref == nil {
		return resp
	}

	header, err := ctrl.Writer.HeaderRow(c.Context(), ref)
	if err != nil {
		return respondWriteError(c, err)
	}

	cols := make([]dto.HeaderColumn, 0, len(header))
	for i, name := range header {
		cols = append(cols, dto.HeaderColumn{Index: i + 1, Name: name})
	}
	return helper.JsonOK(c, "Header sheet berhasil diambil", dto.HeaderResponse{
		Target:         target.Name,
		SpreadsheetID:  target.SpreadsheetID,
		WorksheetTitle: ref.Title,
		Columns:        cols,
		Total:          len(cols),
	})
}

// =======================
// POST /api/a/sheets/:target/columns
// =======================
func (ctrl *SheetController) PostColumn(c *fiber.Ctx) error {
	target, ref, resp := ctrl.prepareTarget(c)
	if ref == nil {
		return resp
	}

	var req dto.AddColumnRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	name := strings.TrimSpace(req.ColumnName)
	if name == "" {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Nama kolom tidak boleh kosong")
	}

	header, err := ctrl.Writer.HeaderRow(c.Context(), ref)
	if err != nil {
		return respondWriteError(c, err)
	}
	for _, existing := range header {
		if strings.EqualFold(strings.TrimSpace(existing), name) {
			return helper.JsonError(c, fiber.StatusConflict,
				fmt.Sprintf("Kolom '%s' sudah ada di sheet %s", name, target.Name))
		}
	}

	newHeader, posLabel := insertColumn(header, name, req.Position)
	details := fmt.Sprintf("Added column '%s' at position %s", name, posLabel)

	if err := ctrl.Writer.UpdateHeaderRow(c.Context(), ref, newHeader); err != nil {
		ctrl.History.Append(c.Context(), target.SpreadsheetID, constants.ActionAddColumn,
			details, req.User, fmt.Sprintf("%s: %v", constants.HistoryStatusFailed, err))
		return respondWriteError(c, err)
	}

	ctrl.Fetcher.Invalidate(target.SpreadsheetID)
	ctrl.History.Append(c.Context(), target.SpreadsheetID, constants.ActionAddColumn,
		details, req.User, constants.HistoryStatusSuccess)

	return helper.JsonCreated(c, fmt.Sprintf("Kolom '%s' berhasil ditambahkan", name), dto.AddColumnResponse{
		Target:     target.Name,
		ColumnName: name,
		Position:   posLabel,
		Total:      len(newHeader),
	})
}

// =======================
// POST /api/a/sheets/:target/rows
// =======================
func (ctrl *SheetController) PostRow(c *fiber.Ctx) error {
	target, ref, resp := ctrl.prepareTarget(c)
	if ref == nil {
		return resp
	}

	var req dto.AddRowRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	header, err := ctrl.Writer.HeaderRow(c.Context(), ref)
	if err != nil {
		return respondWriteError(c, err)
	}
	if len(header) == 0 {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity,
			fmt.Sprintf("Sheet %s belum punya header; tambahkan kolom dulu", target.Name))
	}

	values := fitToHeader(req.Values, len(header))
	details := fmt.Sprintf("Added row with values: %s", summarizeValues(values))

	if err := ctrl.Writer.AppendRow(c.Context(), ref, values); err != nil {
		ctrl.History.Append(c.Context(), target.SpreadsheetID, constants.ActionAddRow,
			details, req.User, fmt.Sprintf("%s: %v", constants.HistoryStatusFailed, err))
		return respondWriteError(c, err)
	}

	ctrl.Fetcher.Invalidate(target.SpreadsheetID)
	ctrl.History.Append(c.Context(), target.SpreadsheetID, constants.ActionAddRow,
		details, req.User, constants.HistoryStatusSuccess)

	return helper.JsonCreated(c, "Baris berhasil ditambahkan", dto.AddRowResponse{
		Target:  target.Name,
		Values:  values,
		Columns: len(header),
	})
}

// =======================
// Helpers
// =======================

// prepareTarget validasi :target, cek kredensial tulis, lalu resolve
// worksheet-nya. ref nil berarti response error sudah ditulis ke c.
func (ctrl *SheetController) prepareTarget(c *fiber.Ctx) (*sheetTarget, *sheetsvc.WorksheetRef, error) {
	target, ok := resolveTarget(c.Params("target"))
	if !ok {
		return nil, nil, helper.JsonError(c, fiber.StatusBadRequest, "Target sheet harus 'konsumsi' atau 'lbkb'")
	}
	if !sheetsvc.HaveWriteCreds() {
		return nil, nil, helper.JsonError(c, fiber.StatusServiceUnavailable,
			"Kredensial service account belum dikonfigurasi; fitur edit sheet nonaktif")
	}
	ref, err := ctrl.Writer.ResolveWorksheet(c.Context(), target.SpreadsheetID, target.GID)
	if err != nil {
		return nil, nil, respondWriteError(c, err)
	}
	return target, ref, nil
}

// insertColumn sisipkan nama di posisi 1-based; 0 atau di luar jangkauan
// berarti taruh di akhir. Label posisi dipakai untuk history.
func insertColumn(header []string, name string, pos int) ([]string, string) {
	if pos <= 0 || pos > len(header) {
		return append(append([]string{}, header...), name), "akhir"
	}
	idx := pos - 1
	out := make([]string, 0, len(header)+1)
	out = append(out, header[:idx]...)
	out = append(out, name)
	out = append(out, header[idx:]...)
	return out, strconv.Itoa(pos)
}

// fitToHeader pad dengan string kosong atau potong supaya panjang nilai
// persis sama dengan jumlah kolom header.
func fitToHeader(values []string, width int) []string {
	out := make([]string, width)
	for i := 0; i < width && i < len(values); i++ {
		out[i] = values[i]
	}
	return out
}

func summarizeValues(values []string) string {
	joined := strings.Join(values, ", ")
	if len(joined) > 150 {
		return joined[:150] + "..."
	}
	return joined
}

func respondWriteError(c *fiber.Ctx, err error) error {
	var we *sheetsvc.WriteError
	if errors.As(err, &we) {
		log.Printf("[ERROR] Operasi Sheets API gagal: %v", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Operasi Google Sheets gagal: "+we.Op)
	}
	log.Printf("[ERROR] Operasi sheet gagal: %v", err)
	return helper.JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
}
