package service

import (
	"testing"

	"plnulp_backend/internals/features/analysis/model"
)

func TestJoinByCustomerID(t *testing.T) {
	penurunan := []model.AnalysisRow{
		rowWithPct(" 111 ", 25), // IDPEL di-trim sebelum join
		rowWithPct("222", 30),
		rowWithPct("999", 40),
	}
	lbkb := []map[string]string{
		{"IDPEL": "111", "KONDISI BANGUNAN": "Tidak Terawat"},
		{"IDPEL": "222 ", "KONDISI BANGUNAN": "Terawat"},
		{"IDPEL": "222", "KONDISI BANGUNAN": "Tidak Terawat"}, // duplikat: fan-out
		{"IDPEL": "333", "KONDISI BANGUNAN": "Terawat"},
	}

	joined, warnings := JoinByCustomerID(penurunan, lbkb, []string{"KONDISI BANGUNAN"})
	if len(warnings) != 0 {
		t.Fatalf("tidak boleh ada warning: %v", warnings)
	}
	if len(joined) != 3 {
		t.Fatalf("expected 3 baris join (1 + fan-out 2), got %d", len(joined))
	}
	if joined[0].Cells["KONDISI BANGUNAN"] != "Tidak Terawat" {
		t.Errorf("kolom LBKB tidak tertempel: %v", joined[0].Cells)
	}
	if *joined[0].SelisihRata2 != 25 {
		t.Errorf("metrik sisi penurunan hilang: %v", *joined[0].SelisihRata2)
	}
	if joined[1].Cells["KONDISI BANGUNAN"] == joined[2].Cells["KONDISI BANGUNAN"] {
		t.Error("duplikat IDPEL harus menghasilkan dua baris berbeda")
	}
}

func TestJoinByCustomerIDEmptySides(t *testing.T) {
	joined, warnings := JoinByCustomerID(nil, []map[string]string{{"IDPEL": "1"}}, nil)
	if joined != nil || len(warnings) != 1 {
		t.Errorf("sisi penurunan kosong: joined=%v warnings=%v", joined, warnings)
	}

	joined, warnings = JoinByCustomerID([]model.AnalysisRow{rowWithPct("1", 10)}, nil, nil)
	if joined != nil || len(warnings) != 1 {
		t.Errorf("sisi LBKB kosong: joined=%v warnings=%v", joined, warnings)
	}

	_, warnings = JoinByCustomerID(nil, nil, nil)
	if len(warnings) != 2 {
		t.Errorf("dua sisi kosong harus dua warning, got %v", warnings)
	}
}

func TestFilterByCustomerID(t *testing.T) {
	rows := []model.AnalysisRow{
		rowWithPct("511230001", 10),
		rowWithPct("511230999", 20),
		rowWithPct("422000123", 30),
	}
	got := FilterByCustomerID(rows, "51123")
	if len(got) != 2 {
		t.Errorf("substring filter: got %d, want 2", len(got))
	}
	if got := FilterByCustomerID(rows, ""); len(got) != 3 {
		t.Errorf("filter kosong harus no-op, got %d", len(got))
	}
}
