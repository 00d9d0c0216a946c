package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"plnulp_backend/internals/configs"
	sheetsvc "plnulp_backend/internals/features/sheets/service"
)

func TestMain(m *testing.M) {
	configs.SheetIDCons = "cons"
	configs.GIDCons = "0"
	configs.SheetIDLBKB = "lbkb"
	configs.GIDLBKB = "0"
	configs.HeaderFetchTimeout = 5 * time.Second
	configs.TableFetchTimeout = 5 * time.Second
	os.Exit(m.Run())
}

const consCSV = "IDPEL,NAMA,REK_2023-01,REK_2023-02,REK_2023-03,REK_2023-04\n" +
	"111,BUDI,100,100,80,80\n" + // turun 20%
	"222,SITI,100,100,50,50\n" + // turun 50%
	"333,ANI,100,100,95,95\n" // turun 5%

const lbkbCSV = "IDPEL,NAMA,KONDISI BANGUNAN\n" +
	"111,BUDI,Tidak Terawat\n" +
	"333,ANI,Terawat\n"

func newTestService(t *testing.T) *Service {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/d/lbkb/") {
			fmt.Fprint(w, lbkbCSV)
			return
		}
		fmt.Fprint(w, consCSV)
	}))
	t.Cleanup(srv.Close)

	fetcher := sheetsvc.NewFetcher(sheetsvc.NewCache(time.Hour))
	fetcher.BaseURL = srv.URL
	return NewService(fetcher)
}

var testPeriods = struct{ p1, p2 []string }{
	p1: []string{"REK_2023-01", "REK_2023-02"},
	p2: []string{"REK_2023-03", "REK_2023-04"},
}

func TestRunPenurunan(t *testing.T) {
	svc := newTestService(t)
	res, err := svc.Run(context.Background(), RunParams{
		Mode:      ModePenurunan,
		Operator:  OpLE,
		Threshold: 20,
		Tolerance: DefaultTolerance,
		Period1:   testPeriods.p1,
		Period2:   testPeriods.p2,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(res.Rows) != 2 {
		t.Fatalf("expected 2 baris (<=20%%), got %d", len(res.Rows))
	}
	// urut penurunan terbesar dulu
	if res.Rows[0].Cells["IDPEL"] != "111" || res.Rows[1].Cells["IDPEL"] != "333" {
		t.Errorf("urutan salah: %s, %s", res.Rows[0].Cells["IDPEL"], res.Rows[1].Cells["IDPEL"])
	}
	if *res.Rows[0].SelisihRata2 != 20 {
		t.Errorf("selisih 111: %v", *res.Rows[0].SelisihRata2)
	}
	if res.PeriodLabel == "" || !strings.Contains(res.PeriodLabel, "Januari 2023") {
		t.Errorf("label periode: %q", res.PeriodLabel)
	}
	if res.Distribution == nil || res.Distribution.Skipped {
		t.Errorf("distribusi harus ada untuk <=: %+v", res.Distribution)
	}
	if len(res.DisplayColumns) == 0 || res.DisplayColumns[0] != "IDPEL" {
		t.Errorf("display columns: %v", res.DisplayColumns)
	}
}

func TestRunPenurunanEmptyPeriod(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Run(context.Background(), RunParams{Mode: ModePenurunan, Period1: testPeriods.p1})
	if !errors.Is(err, ErrEmptyPeriod) {
		t.Fatalf("expected ErrEmptyPeriod, got %v", err)
	}
}

func TestRunGabungan(t *testing.T) {
	svc := newTestService(t)
	res, err := svc.Run(context.Background(), RunParams{
		Mode:      ModeGabungan,
		Operator:  OpLE,
		Threshold: 20,
		Tolerance: DefaultTolerance,
		Period1:   testPeriods.p1,
		Period2:   testPeriods.p2,
		Categories: map[string][]string{
			"KONDISI BANGUNAN": {"Tidak Terawat"},
		},
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	// 111 dan 333 lolos threshold; hanya 111 yang Tidak Terawat
	if len(res.Rows) != 1 || res.Rows[0].Cells["IDPEL"] != "111" {
		t.Fatalf("hasil gabungan salah: %+v", res.Rows)
	}
	if res.Rows[0].Cells["KONDISI BANGUNAN"] != "Tidak Terawat" {
		t.Errorf("kolom LBKB tidak tertempel: %v", res.Rows[0].Cells)
	}
	if len(res.FoundColumns) != 1 || res.FoundColumns[0] != "KONDISI BANGUNAN" {
		t.Errorf("found columns: %v", res.FoundColumns)
	}
	found := false
	for _, c := range res.DisplayColumns {
		if c == "KONDISI BANGUNAN" {
			found = true
		}
	}
	if !found {
		t.Errorf("kolom LBKB harus tampil: %v", res.DisplayColumns)
	}
}

func TestRunLBKBOnly(t *testing.T) {
	svc := newTestService(t)
	res, err := svc.Run(context.Background(), RunParams{
		Mode: ModeLBKB,
		Categories: map[string][]string{
			"KONDISI BANGUNAN": {"Terawat"},
		},
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(res.Rows) != 1 || res.Rows[0].Cells["IDPEL"] != "333" {
		t.Fatalf("hasil LBKB salah: %+v", res.Rows)
	}
	if res.Rows[0].SelisihRata2 != nil {
		t.Error("mode LBKB tidak punya metrik penurunan")
	}
	if res.Distribution != nil {
		t.Error("mode LBKB tidak punya distribusi")
	}
}

func TestRunLBKBCategoryColumnMissing(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Run(context.Background(), RunParams{
		Mode: ModeLBKB,
		Categories: map[string][]string{
			"ANGKA STAN VS FOTO METER": {"Sesuai"},
		},
	})
	var nf *CategoryColumnNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected CategoryColumnNotFoundError, got %v", err)
	}
	if nf.Category != "ANGKA STAN VS FOTO METER" {
		t.Errorf("kategori salah: %s", nf.Category)
	}
}

func TestRunCustomerIDFilter(t *testing.T) {
	svc := newTestService(t)
	res, err := svc.Run(context.Background(), RunParams{
		Mode:       ModePenurunan,
		Operator:   OpLE,
		Threshold:  50,
		Tolerance:  DefaultTolerance,
		CustomerID: "33",
		Period1:    testPeriods.p1,
		Period2:    testPeriods.p2,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Rows) != 1 || res.Rows[0].Cells["IDPEL"] != "333" {
		t.Fatalf("filter IDPEL: %+v", res.Rows)
	}
}
