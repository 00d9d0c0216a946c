package service

import (
	"fmt"
	"strconv"
	"strings"

	"plnulp_backend/internals/features/analysis/model"
)

// =======================
// 🧮 Metric Calculator
// =======================

// MissingColumnsError kolom periode terpilih tidak ada di tabel hasil fetch.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("kolom terpilih tidak ditemukan di sheet: %v", e.Columns)
}

// coerceNumeric paksa sel teks jadi angka. Gagal parse = missing (bukan nol).
func coerceNumeric(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// periodMean rata-rata nilai valid saja; false bila tidak ada nilai valid.
func periodMean(row map[string]string, cols []string) (float64, bool) {
	sum := 0.0
	n := 0
	for _, c := range cols {
		if v, ok := coerceNumeric(row[c]); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// ComputePeriodAverages hitung Rata2_Periode1/2 dan Selisih_Rata2 (persen
// penurunan) per baris. Baris dengan selisih missing (termasuk pembagian
// dengan rata-rata nol) atau negatif dibuang sebelum filter threshold:
// kenaikan konsumsi di luar lingkup laporan ini.
func ComputePeriodAverages(table *model.Table, period1, period2 []string) ([]model.AnalysisRow, error) {
	var missing []string
	for _, c := range append(append([]string{}, period1...), period2...) {
		if !table.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	out := make([]model.AnalysisRow, 0, len(table.Rows))
	for _, row := range table.Rows {
		avg1, ok1 := periodMean(row, period1)
		avg2, ok2 := periodMean(row, period2)
		if !ok1 || !ok2 {
			continue
		}
		if avg1 == 0 {
			// pembagi nol -> selisih missing, bukan error/infinity
			continue
		}
		pct := (avg1 - avg2) / avg1 * 100
		if pct < 0 {
			continue
		}
		a1, a2, p := avg1, avg2, pct
		out = append(out, model.AnalysisRow{
			Cells:         row,
			Rata2Periode1: &a1,
			Rata2Periode2: &a2,
			SelisihRata2:  &p,
		})
	}
	return out, nil
}
