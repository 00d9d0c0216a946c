package model

// ============================
// Tabel hasil fetch sheet (semua nilai masih string)
// ============================

// Table tabel persegi hasil parse CSV: urutan kolom dari header,
// tiap baris mapping nama kolom -> nilai mentah.
type Table struct {
	Columns []string
	Rows    []map[string]string
}

func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Clone salinan dalam: aman dimodifikasi tanpa mengganggu salinan cache.
func (t *Table) Clone() *Table {
	out := &Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([]map[string]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		cp := make(map[string]string, len(row))
		for k, v := range row {
			cp[k] = v
		}
		out.Rows[i] = cp
	}
	return out
}

// RenameColumn ganti nama kolom (header + seluruh baris). No-op bila tidak ada.
func (t *Table) RenameColumn(oldName, newName string) {
	if oldName == newName {
		return
	}
	for i, c := range t.Columns {
		if c == oldName {
			t.Columns[i] = newName
			for _, row := range t.Rows {
				if v, ok := row[oldName]; ok {
					row[newName] = v
					delete(row, oldName)
				}
			}
			return
		}
	}
}

// ============================
// Kolom pembacaan bulanan
// ============================

// MonthColumn kolom REK dengan hasil parse bulan/tahun dari nama kolomnya.
// Parsed=false tetap bisa dipilih manual, tapi tidak ikut urut kronologis.
type MonthColumn struct {
	Name   string `json:"name"`
	Year   int    `json:"year,omitempty"`
	Month  int    `json:"month,omitempty"`
	Parsed bool   `json:"parsed"`
}

// Before urutan kronologis (tahun, bulan) menaik.
func (m MonthColumn) Before(other MonthColumn) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Month < other.Month
}

// ============================
// Baris hasil analisis
// ============================

// AnalysisRow satu baris hasil: sel asli sheet + metrik penurunan.
// Metrik nil pada mode LBKB saja.
type AnalysisRow struct {
	Cells         map[string]string
	Rata2Periode1 *float64
	Rata2Periode2 *float64
	SelisihRata2  *float64
}

// ============================
// Distribusi per quarter
// ============================

type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Distribution empat bucket distribusi Selisih_Rata2. Skipped=true bila
// distribusi tidak relevan (operator == atau max <= threshold); Note berisi
// penjelasan informasionalnya.
type Distribution struct {
	Title   string   `json:"title,omitempty"`
	Buckets []Bucket `json:"buckets,omitempty"`
	Skipped bool     `json:"skipped"`
	Note    string   `json:"note,omitempty"`
}
