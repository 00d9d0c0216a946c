package service

import (
	"math"

	"plnulp_backend/internals/features/analysis/model"
)

// =======================
// 🚦 Threshold Filter
// =======================

// Operator filter threshold penurunan.
const (
	OpLE = "<="
	OpGE = ">="
	OpEQ = "=="
)

// DefaultTolerance toleransi default untuk operator "==" (± persen).
const DefaultTolerance = 0.1

// FilterByThreshold saring baris ber-metrik terhadap threshold.
// "==" memakai perbandingan float aproksimatif: |selisih - threshold| <= tol.
func FilterByThreshold(rows []model.AnalysisRow, operator string, threshold, tolerance float64) []model.AnalysisRow {
	out := make([]model.AnalysisRow, 0, len(rows))
	for _, r := range rows {
		if r.SelisihRata2 == nil {
			continue
		}
		pct := *r.SelisihRata2
		keep := false
		switch operator {
		case OpGE:
			keep = pct >= threshold
		case OpEQ:
			keep = math.Abs(pct-threshold) <= tolerance
		default: // OpLE
			keep = pct <= threshold
		}
		if keep {
			out = append(out, r)
		}
	}
	return out
}
