package dto

import (
	"plnulp_backend/internals/features/history/model"
)

// ============================
// Response DTO
// ============================

type HistoryEntryDTO struct {
	Timestamp        string `json:"timestamp"`
	User             string `json:"user"`
	Action           string `json:"action"`
	TargetSheetTitle string `json:"target_sheet_title"`
	TargetSheetID    string `json:"target_sheet_id"`
	Details          string `json:"details"`
	Status           string `json:"status"`
}

type HistoryListResponse struct {
	Target  string            `json:"target"`
	Exists  bool              `json:"exists"`
	Entries []HistoryEntryDTO `json:"entries"`
	Total   int               `json:"total"`
}

// FromEntry pakai timestamp mentah sheet apa adanya supaya klien melihat
// persis isi HISTORY_LOG.
func FromEntry(e model.HistoryEntry) HistoryEntryDTO {
	return HistoryEntryDTO{
		Timestamp:        e.RawTimestamp,
		User:             e.User,
		Action:           e.Action,
		TargetSheetTitle: e.TargetSheetTitle,
		TargetSheetID:    e.TargetSheetID,
		Details:          e.Details,
		Status:           e.Status,
	}
}

func FromEntries(entries []model.HistoryEntry) []HistoryEntryDTO {
	out := make([]HistoryEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, FromEntry(e))
	}
	return out
}
