// file: internals/helpers/excel.go
package helper

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

const xlsxMime = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// BuildWorkbook menyusun workbook satu sheet dari tabel persegi
// (urutan kolom & baris dipertahankan). Nilai numerik ditulis sebagai angka.
func BuildWorkbook(sheetName string, columns []string, rows [][]any) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if sheetName == "" {
		sheetName = "Sheet1"
	}
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("buat sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if sheetName != "Sheet1" {
		_ = f.DeleteSheet("Sheet1")
	}

	hdr := make([]any, len(columns))
	for i, c := range columns {
		hdr[i] = c
	}
	cell, _ := excelize.CoordinatesToCellName(1, 1)
	if err := f.SetSheetRow(sheetName, cell, &hdr); err != nil {
		return nil, fmt.Errorf("tulis header: %w", err)
	}

	for r, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("tulis baris %d: %w", r+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize xlsx: %w", err)
	}
	return buf, nil
}

// SendWorkbook kirim buffer xlsx sebagai attachment download.
func SendWorkbook(c *fiber.Ctx, filename string, buf *bytes.Buffer) error {
	c.Set(fiber.HeaderContentType, xlsxMime)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}
