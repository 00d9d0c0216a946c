package helper

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestBuildWorkbook(t *testing.T) {
	buf, err := BuildWorkbook("Hasil Analisis",
		[]string{"IDPEL", "NAMA", "Selisih_Rata2"},
		[][]any{
			{"111", "BUDI", 20.5},
			{"222", "SITI", 5.0},
		})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("buffer kosong")
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("open hasil: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Hasil Analisis")
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 baris (header + 2), got %d", len(rows))
	}
	if rows[0][0] != "IDPEL" || rows[1][0] != "111" {
		t.Errorf("isi salah: %v", rows[:2])
	}
	if got := f.GetSheetList(); len(got) != 1 {
		t.Errorf("sheet default harus terhapus: %v", got)
	}
}

func TestBuildWorkbookEmptyName(t *testing.T) {
	buf, err := BuildWorkbook("", []string{"A"}, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if got := f.GetSheetList(); len(got) != 1 || got[0] != "Sheet1" {
		t.Errorf("fallback Sheet1: %v", got)
	}
}
