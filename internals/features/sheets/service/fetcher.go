package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"
	"time"

	"plnulp_backend/internals/configs"
	"plnulp_backend/internals/features/analysis/model"
)

// =======================
// 📥 Fetch sheet via CSV export
// =======================

// FetchError kegagalan jaringan/timeout/non-2xx saat ambil sheet; fatal untuk
// interaksi berjalan, tidak pernah di-retry.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string { return fmt.Sprintf("gagal mengambil sheet: %v", e.Err) }
func (e *FetchError) Unwrap() error { return e.Err }

// Fetcher unduh sheet lewat endpoint CSV export publik Google Sheets.
// BaseURL bisa dioverride untuk testing.
type Fetcher struct {
	BaseURL string
	client  *http.Client
	cache   *Cache
}

func NewFetcher(cache *Cache) *Fetcher {
	return &Fetcher{
		BaseURL: "https://docs.google.com/spreadsheets",
		client:  &http.Client{},
		cache:   cache,
	}
}

func (f *Fetcher) exportURL(sheetID, gid string) string {
	return fmt.Sprintf("%s/d/%s/export?format=csv&gid=%s", f.BaseURL, sheetID, gid)
}

func (f *Fetcher) fetchCSV(ctx context.Context, url string, timeout time.Duration) ([][]string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	}

	r := csv.NewReader(resp.Body)
	r.FieldsPerRecord = -1 // baris boleh tidak rata, dipad belakangan
	records, err := r.ReadAll()
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], "\uFEFF")
	}
	return records, nil
}

// FetchHeader ambil baris header saja (probe ringan, timeout pendek).
// Hasil di-cache per (sheet, gid).
func (f *Fetcher) FetchHeader(ctx context.Context, sheetID, gid string) ([]string, error) {
	key := CacheKey("header", sheetID, gid)
	if v, ok := f.cache.Get(key); ok {
		return append([]string(nil), v.([]string)...), nil
	}

	records, err := f.fetchCSV(ctx, f.exportURL(sheetID, gid), configs.HeaderFetchTimeout)
	if err != nil {
		return nil, err
	}
	var header []string
	if len(records) > 0 {
		header = records[0]
	}
	f.cache.Set(key, header)
	return append([]string(nil), header...), nil
}

// FetchTable ambil tabel penuh. usecols membatasi kolom yang dikembalikan;
// bila ada nama usecols yang tidak ditemukan di header, fallback ke semua
// kolom. Hasil di-cache per (sheet, gid, kolom).
func (f *Fetcher) FetchTable(ctx context.Context, sheetID, gid string, usecols []string) (*model.Table, error) {
	key := CacheKey("table", sheetID, gid, strings.Join(usecols, ","))
	if v, ok := f.cache.Get(key); ok {
		return v.(*model.Table).Clone(), nil
	}

	records, err := f.fetchCSV(ctx, f.exportURL(sheetID, gid), configs.TableFetchTimeout)
	if err != nil {
		return nil, err
	}

	table := buildTable(records, usecols)
	f.cache.Set(key, table)
	return table.Clone(), nil
}

// Invalidate buang cache header+tabel satu spreadsheet, dipanggil setelah
// sheet-nya diubah supaya pembacaan berikut tidak basi.
func (f *Fetcher) Invalidate(sheetID string) {
	f.cache.InvalidatePrefix(CacheKey("header", sheetID))
	f.cache.InvalidatePrefix(CacheKey("table", sheetID))
}

func buildTable(records [][]string, usecols []string) *model.Table {
	if len(records) == 0 {
		return &model.Table{}
	}
	header := records[0]

	// proyeksi kolom: urutan mengikuti header asli
	selected := make([]int, 0, len(header))
	if len(usecols) > 0 && allPresent(header, usecols) {
		want := make(map[string]bool, len(usecols))
		for _, c := range usecols {
			want[c] = true
		}
		for i, h := range header {
			if want[h] {
				selected = append(selected, i)
			}
		}
	} else {
		for i := range header {
			selected = append(selected, i)
		}
	}

	t := &model.Table{Columns: make([]string, 0, len(selected))}
	for _, i := range selected {
		t.Columns = append(t.Columns, header[i])
	}
	for _, rec := range records[1:] {
		row := make(map[string]string, len(selected))
		for _, i := range selected {
			if i < len(rec) {
				row[header[i]] = rec[i]
			} else {
				row[header[i]] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func allPresent(header, usecols []string) bool {
	have := make(map[string]bool, len(header))
	for _, h := range header {
		have[h] = true
	}
	for _, c := range usecols {
		if !have[c] {
			return false
		}
	}
	return true
}
