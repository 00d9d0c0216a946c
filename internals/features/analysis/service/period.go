package service

import (
	"fmt"
	"sort"

	"plnulp_backend/internals/constants"
	"plnulp_backend/internals/features/analysis/model"
)

// =======================
// 📅 Period Selector
// =======================

// SortReadingColumns urutkan kronologis menaik (tahun, bulan). Kolom yang
// gagal parse ditaruh setelah semua yang berhasil, urutan aslinya dijaga.
func SortReadingColumns(cols []model.MonthColumn) []model.MonthColumn {
	parsed := make([]model.MonthColumn, 0, len(cols))
	unparsed := make([]model.MonthColumn, 0)
	for _, c := range cols {
		if c.Parsed {
			parsed = append(parsed, c)
		} else {
			unparsed = append(unparsed, c)
		}
	}
	sort.SliceStable(parsed, func(i, j int) bool {
		return parsed[i].Before(parsed[j])
	})
	return append(parsed, unparsed...)
}

// ApplyPreset ambil n kolom terakhir (atau semua bila kurang) dan belah dua.
// Titik belah = n/2, kecuali jendela lebih pendek dari itu -> len(window)/2.
// Kontrak ini berlaku persis untuk preset 3, 6, 12, 24 bulan.
func ApplyPreset(sorted []model.MonthColumn, n int) (period1, period2 []model.MonthColumn) {
	window := sorted
	if len(sorted) >= n {
		window = sorted[len(sorted)-n:]
	}
	half := n / 2
	split := half
	if len(window) <= half {
		split = len(window) / 2
	}
	return window[:split], window[split:]
}

// ColumnNames proyeksi nama kolom saja.
func ColumnNames(cols []model.MonthColumn) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}

// =======================
// Label rentang periode (bulan Indonesia)
// =======================

func fmtMonthYear(c model.MonthColumn) string {
	if c.Month >= 1 && c.Month <= 12 {
		return fmt.Sprintf("%s %d", constants.MonthsID[c.Month], c.Year)
	}
	return c.Name
}

func rangeOf(cols []model.MonthColumn) (string, string) {
	var lo, hi *model.MonthColumn
	for i := range cols {
		if !cols[i].Parsed {
			continue
		}
		if lo == nil || cols[i].Before(*lo) {
			lo = &cols[i]
		}
		if hi == nil || hi.Before(cols[i]) {
			hi = &cols[i]
		}
	}
	if lo != nil && hi != nil {
		return fmtMonthYear(*lo), fmtMonthYear(*hi)
	}
	if len(cols) > 0 {
		return cols[0].Name, cols[len(cols)-1].Name
	}
	return "", ""
}

// MakeRangeLabel label perbandingan dua periode untuk tampilan, contoh:
// "Perbandingan: Januari 2023 - Maret 2023  vs  April 2023 - Juni 2023".
// Kosong bila salah satu periode kosong.
func MakeRangeLabel(period1, period2 []model.MonthColumn) string {
	if len(period1) == 0 || len(period2) == 0 {
		return ""
	}
	a1, a2 := rangeOf(period1)
	b1, b2 := rangeOf(period2)
	if a1 == "" && a2 == "" && b1 == "" && b2 == "" {
		return ""
	}
	return fmt.Sprintf("Perbandingan: %s - %s  vs  %s - %s", a1, a2, b1, b2)
}
