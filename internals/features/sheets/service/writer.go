package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

// =======================
// ✍️ Tulis sheet via Sheets API v4
// =======================

// WriteError kegagalan baca/tulis lewat Sheets API; dilaporkan ke operator,
// tidak pernah di-retry otomatis.
type WriteError struct {
	Op  string
	Err error
}

func (e *WriteError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *WriteError) Unwrap() error { return e.Err }

// WorksheetRef identitas satu worksheet di dalam spreadsheet.
type WorksheetRef struct {
	SpreadsheetID    string
	SpreadsheetTitle string
	SheetID          int64
	Title            string
}

// Writer klien tipis Sheets REST API v4 (append/update tanpa locking,
// sesuai model tulis unconditional sistem ini). BaseURL bisa dioverride
// untuk testing.
type Writer struct {
	BaseURL string
	tokens  *TokenSource
	client  *http.Client
}

func NewWriter(tokens *TokenSource) *Writer {
	return &Writer{
		BaseURL: "https://sheets.googleapis.com",
		tokens:  tokens,
		client:  &http.Client{},
	}
}

// doJSON satu request ber-bearer-token; out boleh nil.
func (w *Writer) doJSON(ctx context.Context, method, u string, in, out any) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	token, err := w.tokens.Token(ctx)
	if err != nil {
		return err
	}

	var body io.Reader
	if in != nil {
		raw, err := sonic.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if out != nil {
		return sonic.Unmarshal(raw, out)
	}
	return nil
}

// rangeRef "'Judul Sheet'!1:1" dengan judul yang di-escape.
func rangeRef(title, cells string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'!" + cells
}

func (w *Writer) valuesURL(spreadsheetID, rng, suffix string) string {
	return fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s%s", w.BaseURL, spreadsheetID, url.PathEscape(rng), suffix)
}

type sheetProperties struct {
	SheetID int64  `json:"sheetId"`
	Title   string `json:"title"`
}

type spreadsheetMeta struct {
	Properties struct {
		Title string `json:"title"`
	} `json:"properties"`
	Sheets []struct {
		Properties sheetProperties `json:"properties"`
	} `json:"sheets"`
}

// ResolveWorksheet cari worksheet dengan gid tertentu; bila tidak ketemu
// jatuh ke worksheet pertama (perilaku best-effort yang sama dengan UI).
func (w *Writer) ResolveWorksheet(ctx context.Context, spreadsheetID, gid string) (*WorksheetRef, error) {
	meta, err := w.meta(ctx, spreadsheetID)
	if err != nil {
		return nil, &WriteError{Op: "ambil worksheet", Err: err}
	}
	if len(meta.Sheets) == 0 {
		return nil, &WriteError{Op: "ambil worksheet", Err: fmt.Errorf("spreadsheet %s tidak punya worksheet", spreadsheetID)}
	}

	want, convErr := strconv.ParseInt(gid, 10, 64)
	props := meta.Sheets[0].Properties
	if convErr == nil {
		for _, s := range meta.Sheets {
			if s.Properties.SheetID == want {
				props = s.Properties
				break
			}
		}
	}
	return &WorksheetRef{
		SpreadsheetID:    spreadsheetID,
		SpreadsheetTitle: meta.Properties.Title,
		SheetID:          props.SheetID,
		Title:            props.Title,
	}, nil
}

// WorksheetByTitle cari worksheet bernama persis; ok=false bila tidak ada.
func (w *Writer) WorksheetByTitle(ctx context.Context, spreadsheetID, title string) (*WorksheetRef, bool, error) {
	meta, err := w.meta(ctx, spreadsheetID)
	if err != nil {
		return nil, false, &WriteError{Op: "ambil worksheet", Err: err}
	}
	for _, s := range meta.Sheets {
		if s.Properties.Title == title {
			return &WorksheetRef{
				SpreadsheetID:    spreadsheetID,
				SpreadsheetTitle: meta.Properties.Title,
				SheetID:          s.Properties.SheetID,
				Title:            s.Properties.Title,
			}, true, nil
		}
	}
	return nil, false, nil
}

func (w *Writer) meta(ctx context.Context, spreadsheetID string) (*spreadsheetMeta, error) {
	u := fmt.Sprintf("%s/v4/spreadsheets/%s?fields=properties.title,sheets.properties", w.BaseURL, spreadsheetID)
	var meta spreadsheetMeta
	if err := w.doJSON(ctx, http.MethodGet, u, nil, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

type valueRange struct {
	Range          string     `json:"range,omitempty"`
	MajorDimension string     `json:"majorDimension,omitempty"`
	Values         [][]string `json:"values"`
}

// HeaderRow baca baris 1 worksheet.
func (w *Writer) HeaderRow(ctx context.Context, ref *WorksheetRef) ([]string, error) {
	var vr valueRange
	u := w.valuesURL(ref.SpreadsheetID, rangeRef(ref.Title, "1:1"), "")
	if err := w.doJSON(ctx, http.MethodGet, u, nil, &vr); err != nil {
		return nil, &WriteError{Op: "baca header", Err: err}
	}
	if len(vr.Values) == 0 {
		return []string{}, nil
	}
	return vr.Values[0], nil
}

// UpdateHeaderRow ganti seluruh baris 1 worksheet (USER_ENTERED).
func (w *Writer) UpdateHeaderRow(ctx context.Context, ref *WorksheetRef, header []string) error {
	rng := rangeRef(ref.Title, "1:1")
	u := w.valuesURL(ref.SpreadsheetID, rng, "?valueInputOption=USER_ENTERED")
	body := valueRange{Range: rng, MajorDimension: "ROWS", Values: [][]string{header}}
	if err := w.doJSON(ctx, http.MethodPut, u, body, nil); err != nil {
		return &WriteError{Op: "update header", Err: err}
	}
	return nil
}

// AppendRow tambah satu baris di akhir worksheet (USER_ENTERED).
func (w *Writer) AppendRow(ctx context.Context, ref *WorksheetRef, values []string) error {
	u := w.valuesURL(ref.SpreadsheetID, rangeRef(ref.Title, "A1"),
		":append?valueInputOption=USER_ENTERED&insertDataOption=INSERT_ROWS")
	body := valueRange{Values: [][]string{values}}
	if err := w.doJSON(ctx, http.MethodPost, u, body, nil); err != nil {
		return &WriteError{Op: "append baris", Err: err}
	}
	return nil
}

// AllValues baca seluruh isi worksheet (untuk listing history).
func (w *Writer) AllValues(ctx context.Context, ref *WorksheetRef) ([][]string, error) {
	var vr valueRange
	u := w.valuesURL(ref.SpreadsheetID, rangeRef(ref.Title, "A1:ZZ"), "")
	if err := w.doJSON(ctx, http.MethodGet, u, nil, &vr); err != nil {
		return nil, &WriteError{Op: "baca worksheet", Err: err}
	}
	return vr.Values, nil
}

// AddWorksheet buat worksheet baru di spreadsheet.
func (w *Writer) AddWorksheet(ctx context.Context, spreadsheetID, title string, rows, cols int) (*WorksheetRef, error) {
	u := fmt.Sprintf("%s/v4/spreadsheets/%s:batchUpdate", w.BaseURL, spreadsheetID)
	body := map[string]any{
		"requests": []map[string]any{
			{
				"addSheet": map[string]any{
					"properties": map[string]any{
						"title": title,
						"gridProperties": map[string]int{
							"rowCount":    rows,
							"columnCount": cols,
						},
					},
				},
			},
		},
	}
	var reply struct {
		Replies []struct {
			AddSheet struct {
				Properties sheetProperties `json:"properties"`
			} `json:"addSheet"`
		} `json:"replies"`
	}
	if err := w.doJSON(ctx, http.MethodPost, u, body, &reply); err != nil {
		return nil, &WriteError{Op: "buat worksheet", Err: err}
	}

	ref := &WorksheetRef{SpreadsheetID: spreadsheetID, Title: title}
	if len(reply.Replies) > 0 {
		ref.SheetID = reply.Replies[0].AddSheet.Properties.SheetID
		ref.Title = reply.Replies[0].AddSheet.Properties.Title
	}
	return ref, nil
}
