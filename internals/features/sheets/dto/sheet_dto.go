package dto

// ============================
// Request DTO
// ============================

// AddColumnRequest tambah kolom baru ke header sheet target.
// Position 0 berarti taruh di akhir; selain itu posisi 1-based.
type AddColumnRequest struct {
	ColumnName string `json:"column_name" validate:"required,min=1,max=100"`
	Position   int    `json:"position" validate:"gte=0"`
	User       string `json:"user" validate:"omitempty,max=100"`
}

// AddRowRequest tambah satu baris data; nilai dipad/dipotong mengikuti
// panjang header saat ini.
type AddRowRequest struct {
	Values []string `json:"values" validate:"required,min=1"`
	User   string   `json:"user" validate:"omitempty,max=100"`
}

// ============================
// Response DTO
// ============================

type HeaderColumn struct {
	Index int    `json:"index"` // posisi 1-based di sheet
	Name  string `json:"name"`
}

type HeaderResponse struct {
	Target         string         `json:"target"`
	SpreadsheetID  string         `json:"spreadsheet_id"`
	WorksheetTitle string         `json:"worksheet_title"`
	Columns        []HeaderColumn `json:"columns"`
	Total          int            `json:"total"`
}

type AddColumnResponse struct {
	Target     string `json:"target"`
	ColumnName string `json:"column_name"`
	Position   string `json:"position"` // "akhir" atau angka 1-based
	Total      int    `json:"total"`    // jumlah kolom setelah ditambah
}

type AddRowResponse struct {
	Target  string   `json:"target"`
	Values  []string `json:"values"` // nilai final yang ditulis
	Columns int      `json:"columns"`
}
