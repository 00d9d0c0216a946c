package service

import (
	"fmt"

	"plnulp_backend/internals/features/analysis/model"
)

// =======================
// ✅ Checklist Filter (LBKB)
// =======================

// CategoryColumnNotFoundError kolom untuk kategori LBKB tidak ketemu lewat
// keyword; dilaporkan sebagai error, bukan dilewati diam-diam.
type CategoryColumnNotFoundError struct {
	Category string
}

func (e *CategoryColumnNotFoundError) Error() string {
	return fmt.Sprintf("tidak menemukan kolom LBKB untuk kategori '%s'", e.Category)
}

// CategorySelection satu kategori terpilih: kolom aktual di sheet LBKB dan
// nilai-nilai yang dipilih operator.
type CategorySelection struct {
	Category string
	Column   string
	Values   []string
}

// FilterChecklist saring baris LBKB: per kategori, nilai kolom yang sudah
// dinormalisasi harus masuk himpunan nilai terpilih (juga dinormalisasi).
// Kategori tanpa nilai terpilih tidak membatasi; antar kategori berlaku AND.
func FilterChecklist(table *model.Table, selections []CategorySelection) []map[string]string {
	out := make([]map[string]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		keep := true
		for _, sel := range selections {
			if len(sel.Values) == 0 || sel.Column == "" {
				continue
			}
			norm := NormalizeChecklistValue(row[sel.Column])
			found := false
			for _, v := range sel.Values {
				if NormalizeChecklistValue(v) == norm {
					found = true
					break
				}
			}
			if !found {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, row)
		}
	}
	return out
}
