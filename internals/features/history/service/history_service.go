package service

import (
	"context"
	"log"
	"strings"
	"time"

	"plnulp_backend/internals/configs"
	"plnulp_backend/internals/constants"
	"plnulp_backend/internals/features/history/model"
	sheetsvc "plnulp_backend/internals/features/sheets/service"
)

// =======================
// 🕘 History log (audit tulis sheet)
// =======================

// Format timestamp yang ditulis ke sheet: ISO dengan spasi + offset.
const timestampLayout = "2006-01-02 15:04:05-07:00"

// Layout fallback untuk parse entri lama / hasil edit manual.
var parseLayouts = []string{
	timestampLayout,
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

type Service struct {
	writer *sheetsvc.Writer
}

func NewService(writer *sheetsvc.Writer) *Service {
	return &Service{writer: writer}
}

// Ensure kembalikan worksheet HISTORY_LOG, buat dengan header bila belum ada.
func (s *Service) Ensure(ctx context.Context, spreadsheetID string) (*sheetsvc.WorksheetRef, error) {
	ref, ok, err := s.writer.WorksheetByTitle(ctx, spreadsheetID, constants.HistorySheetName)
	if err != nil {
		return nil, err
	}
	if !ok {
		ref, err = s.writer.AddWorksheet(ctx, spreadsheetID, constants.HistorySheetName, 1000, 20)
		if err != nil {
			return nil, err
		}
		if err := s.writer.AppendRow(ctx, ref, constants.HistoryHeader); err != nil {
			return nil, err
		}
		return ref, nil
	}

	// pastikan header baris 1 terisi
	hdr, err := s.writer.HeaderRow(ctx, ref)
	if err == nil && (len(hdr) == 0 || strings.TrimSpace(hdr[0]) == "") {
		_ = s.writer.UpdateHeaderRow(ctx, ref, constants.HistoryHeader)
	}
	return ref, nil
}

// Append catat satu aksi ke HISTORY_LOG. Best-effort: kegagalan hanya
// di-warning, tidak pernah menggagalkan aksi utamanya.
func (s *Service) Append(ctx context.Context, targetSheetID, action, details, user, status string) {
	if user == "" {
		user = "anonymous"
	}
	ref, err := s.Ensure(ctx, targetSheetID)
	if err != nil {
		log.Printf("⚠️ Gagal mencatat history: %v", err)
		return
	}
	ts := configs.NowJakarta().Format(timestampLayout)
	row := []string{ts, user, action, ref.SpreadsheetTitle, targetSheetID, details, status}
	if err := s.writer.AppendRow(ctx, ref, row); err != nil {
		log.Printf("⚠️ Gagal mencatat history: %v", err)
	}
}

// List baca seluruh entri HISTORY_LOG. exists=false bila worksheet belum ada.
func (s *Service) List(ctx context.Context, spreadsheetID string) (entries []model.HistoryEntry, exists bool, err error) {
	ref, ok, err := s.writer.WorksheetByTitle(ctx, spreadsheetID, constants.HistorySheetName)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	values, err := s.writer.AllValues(ctx, ref)
	if err != nil {
		return nil, true, err
	}
	return ParseEntries(values), true, nil
}

// ParseEntries ubah grid mentah (baris 1 = header) ke entri terstruktur.
// Kolom dipetakan lewat nama header supaya tahan perubahan urutan.
func ParseEntries(values [][]string) []model.HistoryEntry {
	if len(values) < 2 {
		return nil
	}
	idx := make(map[string]int, len(values[0]))
	for i, h := range values[0] {
		idx[strings.TrimSpace(h)] = i
	}
	cell := func(row []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	entries := make([]model.HistoryEntry, 0, len(values)-1)
	for _, row := range values[1:] {
		e := model.HistoryEntry{
			RawTimestamp:     cell(row, "Timestamp"),
			User:             cell(row, "User"),
			Action:           cell(row, "Action"),
			TargetSheetTitle: cell(row, "TargetSheetTitle"),
			TargetSheetID:    cell(row, "TargetSheetId"),
			Details:          cell(row, "Details"),
			Status:           cell(row, "Status"),
		}
		e.Timestamp = parseTimestamp(e.RawTimestamp)
		entries = append(entries, e)
	}
	return entries
}

// parseTimestamp coba beberapa layout; naive dianggap waktu Jakarta.
func parseTimestamp(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range parseLayouts {
		if t, err := time.ParseInLocation(layout, raw, configs.Jakarta()); err == nil {
			return t
		}
	}
	return time.Time{}
}

// =======================
// Filter listing
// =======================

// Filter kriteria listing history; tanggal dibandingkan sebagai tanggal
// lokal Asia/Jakarta.
type Filter struct {
	UserContains string
	Actions      []string
	DateFrom     *time.Time
	DateTo       *time.Time
}

func sameOrAfterDate(t, ref time.Time) bool {
	ty, tm, td := t.In(configs.Jakarta()).Date()
	ry, rm, rd := ref.In(configs.Jakarta()).Date()
	a := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	b := time.Date(ry, rm, rd, 0, 0, 0, 0, time.UTC)
	return !a.Before(b)
}

// FilterEntries terapkan kriteria; entri bertimestamp tak terparse hanya
// lolos filter tanggal bila tidak ada rentang tanggal yang diminta.
func FilterEntries(entries []model.HistoryEntry, f Filter) []model.HistoryEntry {
	out := make([]model.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		if f.UserContains != "" &&
			!strings.Contains(strings.ToLower(e.User), strings.ToLower(f.UserContains)) {
			continue
		}
		if len(f.Actions) > 0 {
			found := false
			for _, a := range f.Actions {
				if a == e.Action {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		if f.DateFrom != nil || f.DateTo != nil {
			if e.Timestamp.IsZero() {
				continue
			}
			if f.DateFrom != nil && !sameOrAfterDate(e.Timestamp, *f.DateFrom) {
				continue
			}
			if f.DateTo != nil && !sameOrAfterDate(*f.DateTo, e.Timestamp) {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}
