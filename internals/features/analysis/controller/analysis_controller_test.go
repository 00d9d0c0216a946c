package controller_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"plnulp_backend/internals/configs"
	"plnulp_backend/internals/features/analysis/route"
	"plnulp_backend/internals/features/analysis/service"
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

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "IDPEL,NAMA,REK_2023-01,REK_2023-02\n111,BUDI,100,80\n")
	}))
	t.Cleanup(srv.Close)

	fetcher := sheetsvc.NewFetcher(sheetsvc.NewCache(time.Hour))
	fetcher.BaseURL = srv.URL

	app := fiber.New()
	api := app.Group("/api/u")
	route.AnalysisUserRoutes(api, service.NewService(fetcher))
	return app
}

func TestGetColumnsEndpoint(t *testing.T) {
	app := newTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/api/u/analysis/columns", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
}

func TestGetPresetInvalid(t *testing.T) {
	app := newTestApp(t)
	for _, n := range []string{"5", "0", "abc"} {
		req := httptest.NewRequest(http.MethodGet, "/api/u/analysis/presets/"+n, nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("preset %q: status %d, want 400", n, resp.StatusCode)
		}
	}
}

func TestPostAnalyzeValidation(t *testing.T) {
	app := newTestApp(t)

	// mode tidak dikenal -> 422 dari validator
	body := `{"mode":"aneh","threshold":20}`
	req := httptest.NewRequest(http.MethodPost, "/api/u/analysis/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("mode invalid: status %d, want 422", resp.StatusCode)
	}

	// mode penurunan tanpa periode -> 422 dari pipeline
	body = `{"mode":"penurunan","threshold":20}`
	req = httptest.NewRequest(http.MethodPost, "/api/u/analysis/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("periode kosong: status %d, want 422", resp.StatusCode)
	}
}
