package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"plnulp_backend/internals/configs"
	"plnulp_backend/internals/constants"
	"plnulp_backend/internals/features/analysis/model"
	sheetsvc "plnulp_backend/internals/features/sheets/service"
)

// =======================
// 🧵 Pipeline analisis (fetch → classify → compute → filter → join → bin)
// =======================

// ErrEmptyPeriod periode terpilih kosong; validasi, pipeline berhenti.
var ErrEmptyPeriod = errors.New("pilih setidaknya 1 kolom untuk Periode 1 dan Periode 2")

// MissingIDColumnError kolom identitas tidak ditemukan dan tidak ada kandidat.
type MissingIDColumnError struct {
	Sheet string
}

func (e *MissingIDColumnError) Error() string {
	return fmt.Sprintf("kolom %s tidak ditemukan di sheet %s; sesuaikan nama kolom", constants.IDColumn, e.Sheet)
}

type Service struct {
	fetcher *sheetsvc.Fetcher
}

func NewService(fetcher *sheetsvc.Fetcher) *Service {
	return &Service{fetcher: fetcher}
}

// RunParams parameter satu interaksi analisis; dibuat ulang tiap request,
// tidak ada state lintas panggilan.
type RunParams struct {
	Mode       string
	Operator   string
	Threshold  float64
	Tolerance  float64
	CustomerID string
	Period1    []string
	Period2    []string
	// Categories: nama kategori LBKB -> nilai terpilih. Kategori yang tidak
	// ada di map tidak membatasi.
	Categories map[string][]string
}

type RunResult struct {
	Rows           []model.AnalysisRow
	DisplayColumns []string
	ExportColumns  []string
	FoundColumns   []string // kolom LBKB aktual, urut kategori
	PeriodLabel    string
	Warnings       []string
	Distribution   *model.Distribution
}

// SortedReadingColumns probe header sheet konsumsi dan kembalikan kolom REK
// terurut kronologis (untuk pilihan bulan di UI).
func (s *Service) SortedReadingColumns(ctx context.Context) ([]model.MonthColumn, error) {
	header, err := s.fetcher.FetchHeader(ctx, configs.SheetIDCons, configs.GIDCons)
	if err != nil {
		return nil, err
	}
	return SortReadingColumns(ClassifyReadingColumns(header)), nil
}

// Preset pilih otomatis dua periode dari n bulan terakhir.
func (s *Service) Preset(ctx context.Context, n int) (p1, p2 []model.MonthColumn, label string, err error) {
	sorted, err := s.SortedReadingColumns(ctx)
	if err != nil {
		return nil, nil, "", err
	}
	p1, p2 = ApplyPreset(sorted, n)
	return p1, p2, MakeRangeLabel(p1, p2), nil
}

// Run jalankan seluruh pipeline untuk satu interaksi.
func (s *Service) Run(ctx context.Context, p RunParams) (*RunResult, error) {
	usePenurunan := p.Mode == ModePenurunan || p.Mode == ModeGabungan
	useLBKB := p.Mode == ModeLBKB || p.Mode == ModeGabungan

	res := &RunResult{}

	var filtered []model.AnalysisRow
	var consColumns []string

	if usePenurunan {
		if len(p.Period1) == 0 || len(p.Period2) == 0 {
			return nil, ErrEmptyPeriod
		}

		header, err := s.fetcher.FetchHeader(ctx, configs.SheetIDCons, configs.GIDCons)
		if err != nil {
			return nil, err
		}
		rekCols := ClassifyReadingColumns(header)

		usecols := dedupe(append(IDCandidateColumns(header), ColumnNames(rekCols)...))
		table, err := s.fetcher.FetchTable(ctx, configs.SheetIDCons, configs.GIDCons, usecols)
		if err != nil {
			return nil, err
		}

		if warn, err := ensureIDColumn(table, "konsumsi"); err != nil {
			return nil, err
		} else if warn != "" {
			res.Warnings = append(res.Warnings, warn)
		}

		rows, err := ComputePeriodAverages(table, p.Period1, p.Period2)
		if err != nil {
			return nil, err
		}
		filtered = FilterByThreshold(rows, p.Operator, p.Threshold, p.Tolerance)
		consColumns = table.Columns

		byName := make(map[string]model.MonthColumn, len(rekCols))
		for _, c := range rekCols {
			byName[c.Name] = c
		}
		res.PeriodLabel = MakeRangeLabel(lookupColumns(byName, p.Period1), lookupColumns(byName, p.Period2))
	}

	var lbkbRows []map[string]string
	var lbkbColumns []string

	if useLBKB {
		headerLBKB, err := s.fetcher.FetchHeader(ctx, configs.SheetIDLBKB, configs.GIDLBKB)
		if err != nil {
			return nil, err
		}

		var selections []CategorySelection
		for _, cat := range constants.LBKBCategories {
			values, selected := p.Categories[cat.Name]
			if !selected || len(values) == 0 {
				continue
			}
			col, ok := FindColumnByKeywords(headerLBKB, cat.Keywords)
			if !ok {
				return nil, &CategoryColumnNotFoundError{Category: cat.Name}
			}
			selections = append(selections, CategorySelection{Category: cat.Name, Column: col, Values: values})
			res.FoundColumns = append(res.FoundColumns, col)
		}

		if len(selections) == 0 {
			res.Warnings = append(res.Warnings, "Tidak ada kolom LBKB yang akan diambil (tidak ada kategori dipilih).")
		} else {
			usecols := make([]string, 0, len(selections)+1)
			if idCands := IDCandidateColumns(headerLBKB); len(idCands) > 0 {
				usecols = append(usecols, idCands[0])
			}
			usecols = dedupe(append(usecols, res.FoundColumns...))

			table, err := s.fetcher.FetchTable(ctx, configs.SheetIDLBKB, configs.GIDLBKB, usecols)
			if err != nil {
				return nil, err
			}
			if !table.HasColumn(constants.IDColumn) {
				if cands := IDCandidateColumns(table.Columns); len(cands) > 0 {
					table.RenameColumn(cands[0], constants.IDColumn)
					res.Warnings = append(res.Warnings,
						fmt.Sprintf("Menggunakan kolom '%s' sebagai %s di LBKB", cands[0], constants.IDColumn))
				} else {
					res.Warnings = append(res.Warnings,
						"Tidak menemukan kolom ID di LBKB; operasi gabungan dapat menghasilkan data kosong.")
				}
			}
			lbkbRows = FilterChecklist(table, selections)
			lbkbColumns = table.Columns
		}
	}

	// gabung sesuai mode
	switch p.Mode {
	case ModeLBKB:
		res.Rows = WrapChecklistRows(lbkbRows)
	case ModeGabungan:
		joined, warns := JoinByCustomerID(filtered, lbkbRows, res.FoundColumns)
		res.Rows = joined
		res.Warnings = append(res.Warnings, warns...)
	default: // ModePenurunan
		res.Rows = filtered
	}

	res.Rows = FilterByCustomerID(res.Rows, p.CustomerID)

	// urut penurunan terbesar dulu bila metrik ada
	sort.SliceStable(res.Rows, func(i, j int) bool {
		a, b := res.Rows[i].SelisihRata2, res.Rows[j].SelisihRata2
		if a == nil || b == nil {
			return false
		}
		return *a > *b
	})

	res.DisplayColumns, res.ExportColumns = resultColumns(p.Mode, consColumns, lbkbColumns, res.FoundColumns)

	if p.Mode != ModeLBKB && len(res.Rows) > 0 {
		values := make([]float64, 0, len(res.Rows))
		for _, r := range res.Rows {
			if r.SelisihRata2 != nil {
				values = append(values, *r.SelisihRata2)
			}
		}
		res.Distribution = BinDistribution(values, p.Operator, p.Threshold, p.Tolerance)
	}

	return res, nil
}

// ensureIDColumn pastikan tabel punya IDPEL; fallback ganti nama kandidat
// pertama yang mengandung "ID". Tanpa kandidat sama sekali -> fatal.
func ensureIDColumn(table *model.Table, sheetLabel string) (warning string, err error) {
	if table.HasColumn(constants.IDColumn) {
		return "", nil
	}
	cands := IDCandidateColumns(table.Columns)
	if len(cands) == 0 {
		return "", &MissingIDColumnError{Sheet: sheetLabel}
	}
	table.RenameColumn(cands[0], constants.IDColumn)
	return fmt.Sprintf("Kolom '%s' tidak ditemukan, menggunakan kandidat: %s", constants.IDColumn, cands[0]), nil
}

func resultColumns(mode string, consColumns, lbkbColumns, foundColumns []string) (display, export []string) {
	switch mode {
	case ModeLBKB:
		display = presentOnly(append([]string{constants.IDColumn, constants.NameColumn}, foundColumns...), lbkbColumns)
		export = lbkbColumns
	case ModeGabungan:
		available := append(append(append([]string{}, consColumns...), computedColumns()...), foundColumns...)
		display = presentOnly(dedupe(append([]string{
			constants.IDColumn, constants.NameColumn,
			constants.ColAvgPeriod1, constants.ColAvgPeriod2, constants.ColPctChange,
		}, foundColumns...)), available)
		export = dedupe(available)
	default:
		display = presentOnly([]string{
			constants.IDColumn, constants.NameColumn,
			constants.ColAvgPeriod1, constants.ColAvgPeriod2, constants.ColPctChange,
		}, append(append([]string{}, consColumns...), computedColumns()...))
		export = append(append([]string{}, consColumns...), computedColumns()...)
	}
	return display, export
}

func computedColumns() []string {
	return []string{constants.ColAvgPeriod1, constants.ColAvgPeriod2, constants.ColPctChange}
}

func presentOnly(wanted, available []string) []string {
	have := make(map[string]bool, len(available))
	for _, c := range available {
		have[c] = true
	}
	out := make([]string, 0, len(wanted))
	for _, c := range wanted {
		if have[c] {
			out = append(out, c)
		}
	}
	return out
}

func lookupColumns(byName map[string]model.MonthColumn, names []string) []model.MonthColumn {
	out := make([]model.MonthColumn, 0, len(names))
	for _, n := range names {
		if c, ok := byName[n]; ok {
			out = append(out, c)
		} else {
			out = append(out, model.MonthColumn{Name: n})
		}
	}
	return out
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
