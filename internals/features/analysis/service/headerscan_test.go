package service

import "testing"

func TestParseMonthFromHeader(t *testing.T) {
	cases := []struct {
		name  string
		year  int
		month int
		ok    bool
	}{
		{"REK_2023-11", 2023, 11, true},
		{"REK112023", 2023, 11, true},
		{"REK_Nov_2023", 2023, 11, true},
		{"NOV2023REK", 2023, 11, true},
		{"REK 2024/01", 2024, 1, true},
		{"REK_202401", 2024, 1, true},
		{"REK_1-2024", 2024, 1, true},
		{"Pemakaian December 2022 REK", 2022, 12, true},
		{"REK_TOTAL", 0, 0, false},
		{"IDPEL", 0, 0, false},
		{"REK_13-2023", 2023, 3, true}, // 13 bukan bulan; "3-2023" yang terparse
	}
	for _, c := range cases {
		y, m, ok := ParseMonthFromHeader(c.name)
		if ok != c.ok {
			t.Errorf("%q: ok = %v, want %v", c.name, ok, c.ok)
			continue
		}
		if ok && (y != c.year || m != c.month) {
			t.Errorf("%q: got (%d, %d), want (%d, %d)", c.name, y, m, c.year, c.month)
		}
	}
}

func TestClassifyReadingColumns(t *testing.T) {
	headers := []string{"IDPEL", "NAMA", "REK_2023-01", "rek_2023-02", "ALAMAT", "REK_MISC"}
	cols := ClassifyReadingColumns(headers)
	if len(cols) != 3 {
		t.Fatalf("expected 3 kolom REK, got %d", len(cols))
	}
	if cols[0].Name != "REK_2023-01" || !cols[0].Parsed || cols[0].Month != 1 {
		t.Errorf("kolom pertama salah: %+v", cols[0])
	}
	if cols[1].Name != "rek_2023-02" || !cols[1].Parsed {
		t.Errorf("marker REK harus case-insensitive: %+v", cols[1])
	}
	if cols[2].Name != "REK_MISC" || cols[2].Parsed {
		t.Errorf("kolom tanpa bulan harus Parsed=false: %+v", cols[2])
	}
}

func TestFindColumnByKeywords(t *testing.T) {
	headers := []string{"IDPEL", "KONDISI RUMAH", "KONDISI BANGUNAN", "CATATAN"}

	// semua keyword cocok menang atas cocok sebagian
	col, ok := FindColumnByKeywords(headers, []string{"KONDISI", "BANGUN"})
	if !ok || col != "KONDISI BANGUNAN" {
		t.Errorf("full match: got %q ok=%v", col, ok)
	}

	// fallback: keyword terbanyak, seri dimenangkan kemunculan pertama
	col, ok = FindColumnByKeywords(headers, []string{"KONDISI", "METER"})
	if !ok || col != "KONDISI RUMAH" {
		t.Errorf("partial match: got %q ok=%v", col, ok)
	}

	if _, ok = FindColumnByKeywords(headers, []string{"TERLIHAT", "PEMAKAIAN"}); ok {
		t.Error("tanpa keyword cocok harus false")
	}
}

func TestIDCandidateColumns(t *testing.T) {
	headers := []string{"IDPEL", "NAMA", "ID PELANGGAN", "REK_2023-01"}
	got := IDCandidateColumns(headers)
	if len(got) != 2 || got[0] != "IDPEL" || got[1] != "ID PELANGGAN" {
		t.Errorf("got %v", got)
	}
}
