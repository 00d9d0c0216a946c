package service

import (
	"regexp"
	"strings"
)

// =======================
// 🧹 Checklist Normalizer
// =======================

var (
	reNonAlnum   = regexp.MustCompile(`[^a-z0-9\s]`)
	reMultiSpace = regexp.MustCompile(`\s+`)

	// Penggantian token utuh (bukan substring), urutan dipertahankan.
	tokenRewrites = []struct {
		re   *regexp.Regexp
		with string
	}{
		{regexp.MustCompile(`\btdk\b`), "tidak"},
		{regexp.MustCompile(`\bt\b`), "tidak"},
		{regexp.MustCompile(`\by\b`), "ya"},
		{regexp.MustCompile(`\byes\b`), "ya"},
		{regexp.MustCompile(`\bno\b`), "tidak"},
	}
)

// canonicalRules daftar (predikat, hasil kanonik) dievaluasi berurutan;
// aturan pertama yang cocok menang. Urutan ini kontrak: "tidak sesuai dan
// tidak terawat" harus jatuh ke "tidak sesuai", bukan dua-duanya.
var canonicalRules = []struct {
	match func(s string) bool
	canon string
}{
	{func(s string) bool { return strings.Contains(s, "tidak") && strings.Contains(s, "sesuai") }, "tidak sesuai"},
	{func(s string) bool { return strings.Contains(s, "tidak") && strings.Contains(s, "terawat") }, "tidak terawat"},
	{func(s string) bool { return strings.Contains(s, "sesuai") }, "sesuai"},
	{func(s string) bool { return strings.Contains(s, "terawat") }, "terawat"},
	{func(s string) bool { return s == "ya" || s == "tidak" }, ""}, // canon = s sendiri
}

// NormalizeChecklistValue kanonikalisasi nilai survei bebas ("Tdk Sesuai",
// "TIDAK  SESUAI", "tidak_sesuai") ke kosakata kecil tetap. Nilai tak dikenal
// dilewatkan apa adanya (sudah dibersihkan) sebagai fallback exact-match.
func NormalizeChecklistValue(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = reNonAlnum.ReplaceAllString(s, " ")
	for _, tr := range tokenRewrites {
		s = tr.re.ReplaceAllString(s, tr.with)
	}
	s = strings.TrimSpace(reMultiSpace.ReplaceAllString(s, " "))

	for _, rule := range canonicalRules {
		if rule.match(s) {
			if rule.canon == "" {
				return s
			}
			return rule.canon
		}
	}
	return s
}
