package constants

// =======================
// HISTORY LOG (audit tulis sheet)
// =======================

// HistorySheetName nama worksheet audit log di tiap spreadsheet target.
const HistorySheetName = "HISTORY_LOG"

// HistoryHeader header baris 1 worksheet HISTORY_LOG; urutan tetap.
var HistoryHeader = []string{
	"Timestamp", "User", "Action", "TargetSheetTitle", "TargetSheetId", "Details", "Status",
}

// Action kind yang dicatat ke history.
const (
	ActionAddColumn = "Tambah Kolom"
	ActionAddRow    = "Tambah Baris"
)

// Status hasil aksi.
const (
	HistoryStatusSuccess = "SUCCESS"
	HistoryStatusFailed  = "FAILED"
)
