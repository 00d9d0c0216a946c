package service

import (
	"regexp"
	"strconv"
	"strings"

	"plnulp_backend/internals/constants"
	"plnulp_backend/internals/features/analysis/model"
)

// =======================
// 🔎 Header Inspector
// =======================

// Pola dicoba berurutan; urutan ini yang membuat header ambigu seperti
// "NOV2023REK" terurai deterministik. Alternasi bulan menaruh 1[0-2] lebih
// dulu supaya "2023-11" terbaca November, bukan Januari.
var (
	reYearMonth = regexp.MustCompile(`(20\d{2})\s*[-_/]?\s*(1[0-2]|0?[1-9])`)
	reMonthYear = regexp.MustCompile(`(1[0-2]|0?[1-9])\s*[-_/]?\s*(20\d{2})`)
	reCompact   = regexp.MustCompile(`(20\d{2})(0[1-9]|1[0-2])`)
	reAlphaRun  = regexp.MustCompile(`[A-Za-z]{3,9}`)
	reYearAfter = regexp.MustCompile(`^[^\d]*(20\d{2})`)
)

var monthAbbrsEN = []string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}

var monthNamesEN = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// ParseMonthFromHeader coba ekstrak (tahun, bulan) dari teks nama kolom.
// Gagal parse bukan error: kolom tetap dipakai, hanya tidak ikut urut kronologis.
func ParseMonthFromHeader(name string) (year, month int, ok bool) {
	c := strings.TrimSpace(name)

	// (a) tahun dulu: 2023-11, 2023_11, 202311
	if m := reYearMonth.FindStringSubmatch(c); m != nil {
		return mustAtoi(m[1]), mustAtoi(m[2]), true
	}
	// (b) bulan dulu: 11-2023, 112023
	if m := reMonthYear.FindStringSubmatch(c); m != nil {
		return mustAtoi(m[2]), mustAtoi(m[1]), true
	}
	// (c) YYYYMM rapat tanpa pemisah
	if m := reCompact.FindStringSubmatch(c); m != nil {
		return mustAtoi(m[1]), mustAtoi(m[2]), true
	}
	// (d) nama/singkatan bulan diikuti tahun: Nov_2023, NOV2023REK
	for _, loc := range reAlphaRun.FindAllStringIndex(c, -1) {
		mm := monthFromName(c[loc[0]:loc[1]])
		if mm == 0 {
			continue
		}
		if ym := reYearAfter.FindStringSubmatch(c[loc[1]:]); ym != nil {
			return mustAtoi(ym[1]), mm, true
		}
	}
	return 0, 0, false
}

// monthFromName cocokkan prefix: 3 huruf pertama lawan singkatan bulan,
// lalu prefix nama bulan lengkap. 0 bila bukan nama bulan.
func monthFromName(raw string) int {
	low := strings.ToLower(strings.TrimSpace(raw))
	if len(low) >= 3 {
		p3 := low[:3]
		for i, abbr := range monthAbbrsEN {
			if abbr == p3 {
				return i + 1
			}
		}
	}
	for i, name := range monthNamesEN {
		if strings.HasPrefix(name, low) {
			return i + 1
		}
	}
	return 0
}

// ClassifyReadingColumns saring kolom pembacaan bulanan (mengandung "REK",
// case-insensitive) dan parse bulan/tahun dari tiap nama. Urutan header asli
// dipertahankan.
func ClassifyReadingColumns(headers []string) []model.MonthColumn {
	var cols []model.MonthColumn
	for _, h := range headers {
		if !strings.Contains(strings.ToUpper(h), constants.ReadingMarker) {
			continue
		}
		y, m, ok := ParseMonthFromHeader(h)
		cols = append(cols, model.MonthColumn{Name: h, Year: y, Month: m, Parsed: ok})
	}
	return cols
}

// FindColumnByKeywords cari kolom terbaik untuk satu set keyword:
// (1) kolom yang memuat SEMUA keyword; (2) kolom dengan keyword terbanyak,
// seri dimenangkan kemunculan pertama; (3) tidak ada keyword sama sekali -> false.
func FindColumnByKeywords(headers []string, keywords []string) (string, bool) {
	for _, col := range headers {
		up := strings.ToUpper(col)
		all := true
		for _, k := range keywords {
			if !strings.Contains(up, strings.ToUpper(k)) {
				all = false
				break
			}
		}
		if all {
			return col, true
		}
	}

	best := ""
	bestCount := 0
	for _, col := range headers {
		up := strings.ToUpper(col)
		count := 0
		for _, k := range keywords {
			if strings.Contains(up, strings.ToUpper(k)) {
				count++
			}
		}
		if count > bestCount {
			bestCount = count
			best = col
		}
	}
	return best, bestCount > 0
}

// IDCandidateColumns kolom yang mengandung "ID" (kandidat kolom identitas).
func IDCandidateColumns(headers []string) []string {
	var out []string
	for _, h := range headers {
		if strings.Contains(strings.ToUpper(h), constants.IDKeyword) {
			out = append(out, h)
		}
	}
	return out
}

func mustAtoi(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}
