package service

import (
	"strings"

	"plnulp_backend/internals/constants"
	"plnulp_backend/internals/features/analysis/model"
)

// =======================
// 🔗 Joiner
// =======================

// Mode analisis aktif.
const (
	ModePenurunan = "penurunan"
	ModeLBKB      = "lbkb"
	ModeGabungan  = "gabungan"
)

// WrapChecklistRows bungkus baris LBKB jadi AnalysisRow tanpa metrik
// (mode LBKB saja).
func WrapChecklistRows(rows []map[string]string) []model.AnalysisRow {
	out := make([]model.AnalysisRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.AnalysisRow{Cells: r})
	}
	return out
}

// JoinByCustomerID inner join hasil penurunan dengan hasil LBKB pada IDPEL
// (kedua sisi di-trim dulu). Seluruh kolom sisi konsumsi dipertahankan;
// hanya kolom kategori LBKB yang ditempelkan. IDPEL duplikat di sisi LBKB
// sengaja dibiarkan fan-out (duplikat lolos apa adanya).
// Sisi kosong menghasilkan gabungan kosong plus warning, bukan error.
func JoinByCustomerID(penurunan []model.AnalysisRow, lbkb []map[string]string, lbkbCols []string) (joined []model.AnalysisRow, warnings []string) {
	if len(penurunan) == 0 {
		warnings = append(warnings, "Tidak ada data penurunan yang memenuhi kriteria; gabungan akan kosong.")
	}
	if len(lbkb) == 0 {
		warnings = append(warnings, "Tidak ada data LBKB yang memenuhi kriteria; gabungan akan kosong.")
	}
	if len(penurunan) == 0 || len(lbkb) == 0 {
		return nil, warnings
	}

	index := make(map[string][]map[string]string, len(lbkb))
	for _, row := range lbkb {
		id := strings.TrimSpace(row[constants.IDColumn])
		if id == "" {
			continue
		}
		index[id] = append(index[id], row)
	}

	for _, left := range penurunan {
		id := strings.TrimSpace(left.Cells[constants.IDColumn])
		for _, right := range index[id] {
			cells := make(map[string]string, len(left.Cells)+len(lbkbCols))
			for k, v := range left.Cells {
				cells[k] = v
			}
			for _, col := range lbkbCols {
				cells[col] = right[col]
			}
			joined = append(joined, model.AnalysisRow{
				Cells:         cells,
				Rata2Periode1: left.Rata2Periode1,
				Rata2Periode2: left.Rata2Periode2,
				SelisihRata2:  left.SelisihRata2,
			})
		}
	}
	return joined, warnings
}

// FilterByCustomerID saring hasil akhir dengan substring IDPEL (opsional).
func FilterByCustomerID(rows []model.AnalysisRow, contains string) []model.AnalysisRow {
	if contains == "" {
		return rows
	}
	out := make([]model.AnalysisRow, 0, len(rows))
	for _, r := range rows {
		if strings.Contains(r.Cells[constants.IDColumn], contains) {
			out = append(out, r)
		}
	}
	return out
}
