package service

import (
	"fmt"

	"plnulp_backend/internals/features/analysis/model"
)

// =======================
// 📊 Distribution Binner
// =======================

// BinDistribution bagi nilai Selisih_Rata2 hasil filter ke 4 bucket
// berurutan untuk tampilan. Batas bawah tiap bucket inklusif, batas atas
// eksklusif kecuali bucket terakhir: nilai tepat di batas tidak pernah
// dihitung ganda atau hilang.
//
//   - "<=": 4 bucket selebar sama dari 0 ke threshold (quarter = threshold/4,
//     atau 1 bila threshold 0 supaya lebar bucket tidak nol).
//   - ">=": 4 bucket dari threshold ke nilai maksimum; bila max <= threshold
//     distribusi dilewati (informasional, bukan error).
//   - "==": distribusi dilewati; jendela toleransi biasanya satu grup sempit.
func BinDistribution(values []float64, operator string, threshold, tolerance float64) *model.Distribution {
	if len(values) == 0 {
		return nil
	}

	switch operator {
	case OpEQ:
		return &model.Distribution{
			Skipped: true,
			Note: fmt.Sprintf("Operator '==' menggunakan toleransi ±%g%%. Distribusi per-quarter tidak "+
				"ditampilkan untuk kondisi '==' karena biasanya menghasilkan satu grup kecil.", tolerance),
		}

	case OpGE:
		maxVal := values[0]
		for _, v := range values[1:] {
			if v > maxVal {
				maxVal = v
			}
		}
		span := maxVal - threshold
		if span <= 0 {
			return &model.Distribution{
				Skipped: true,
				Note:    "Semua nilai sama dengan atau sedikit di atas threshold; distribusi per quarter tidak tersedia.",
			}
		}
		quarter := span / 4
		labels := []string{
			fmt.Sprintf("%.2f%% - %.2f%%", threshold, threshold+quarter),
			fmt.Sprintf("%.2f%% - %.2f%%", threshold+quarter, threshold+2*quarter),
			fmt.Sprintf("%.2f%% - %.2f%%", threshold+2*quarter, threshold+3*quarter),
			fmt.Sprintf("%.2f%% - %.2f%%", threshold+3*quarter, maxVal),
		}
		return fillBuckets(values, threshold, quarter, labels,
			fmt.Sprintf("Distribusi per Quarter (threshold → max %.2f%%)", maxVal))

	default: // OpLE
		quarter := threshold / 4
		if threshold == 0 {
			quarter = 1
		}
		labels := []string{
			fmt.Sprintf("≤ %.2f%%", quarter),
			fmt.Sprintf("%.2f%% - %.2f%%", quarter, 2*quarter),
			fmt.Sprintf("%.2f%% - %.2f%%", 2*quarter, 3*quarter),
			fmt.Sprintf("%.2f%% - %.2f%%", 3*quarter, threshold),
		}
		return fillBuckets(values, 0, quarter, labels, "Distribusi per Quarter (0 → threshold)")
	}
}

func fillBuckets(values []float64, lo, width float64, labels []string, title string) *model.Distribution {
	buckets := make([]model.Bucket, len(labels))
	for i, l := range labels {
		buckets[i] = model.Bucket{Label: l}
	}
	for _, v := range values {
		idx := int((v - lo) / width)
		if idx < 0 {
			idx = 0
		}
		if idx > len(buckets)-1 {
			idx = len(buckets) - 1
		}
		buckets[idx].Count++
	}
	return &model.Distribution{Title: title, Buckets: buckets}
}
