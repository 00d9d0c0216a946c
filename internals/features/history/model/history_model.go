package model

import "time"

// HistoryEntry satu catatan audit append-only di worksheet HISTORY_LOG.
// Tidak pernah diubah atau dihapus oleh sistem ini.
type HistoryEntry struct {
	Timestamp        time.Time // zero bila RawTimestamp gagal diparse
	RawTimestamp     string
	User             string
	Action           string
	TargetSheetTitle string
	TargetSheetID    string
	Details          string
	Status           string
}
