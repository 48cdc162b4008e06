package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/erpworks/tablescout/internal/cache"
	"github.com/erpworks/tablescout/internal/domain"
	"github.com/erpworks/tablescout/internal/repository/catalog"
	"github.com/erpworks/tablescout/internal/repository/searchlog"
	explainuc "github.com/erpworks/tablescout/internal/usecase/explain"
	healthuc "github.com/erpworks/tablescout/internal/usecase/health"
	keywordsuc "github.com/erpworks/tablescout/internal/usecase/keywords"
	searchuc "github.com/erpworks/tablescout/internal/usecase/search"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	store := catalog.NewMemory([]domain.CatalogRecord{
		{ID: "lfa1", Name: "LFA1", Description: "Vendor master", BusinessPurpose: "Vendor identity", Module: "MM", MigrationClass: domain.ClassBoth, MigrationPriority: 65},
		{ID: "bseg", Name: "BSEG", Description: "Accounting segment", BusinessPurpose: "FI line items", Module: "FI", MigrationClass: domain.ClassDeprecated, MigrationPriority: 95},
	})

	logger := zap.NewNop()
	search := searchuc.New(
		store,
		keywordsuc.New(nil, logger),
		explainuc.New(nil, logger),
		cache.New(5*time.Minute, 100),
		searchlog.NopSink{},
		logger,
	)
	srv := New(search, healthuc.New(store), logger)

	r := chi.NewRouter()
	srv.Routes(r)
	return r
}

func postSearch(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSearchEndpoint_OK(t *testing.T) {
	router := newTestRouter(t)

	rec := postSearch(t, router, `{"query": "vendor master data"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}
	if origin := rec.Header().Get("Access-Control-Allow-Origin"); origin != "*" {
		t.Errorf("CORS origin = %q", origin)
	}

	var resp searchuc.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if !resp.Success {
		t.Errorf("expected success, got %+v", resp)
	}
	if len(resp.Results) == 0 {
		t.Error("expected results for a vendor query")
	}
	if resp.AIExplanation == "" {
		t.Error("explanation missing")
	}
	if resp.Context != "general" {
		t.Errorf("context = %q, want general", resp.Context)
	}
}

func TestSearchEndpoint_MigrationAlert(t *testing.T) {
	router := newTestRouter(t)

	rec := postSearch(t, router, `{"query": "deprecated tables for s4hana migration"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp searchuc.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Context != "migration" {
		t.Errorf("context = %q, want migration", resp.Context)
	}
	if !strings.Contains(resp.MigrationAlert, "S/4HANA") {
		t.Errorf("alert missing: %q", resp.MigrationAlert)
	}
}

func TestSearchEndpoint_EmptyQuery(t *testing.T) {
	router := newTestRouter(t)

	for name, body := range map[string]string{
		"blank query":  `{"query": "   "}`,
		"missing body": ``,
		"bad json":     `{"query": `,
	} {
		t.Run(name, func(t *testing.T) {
			rec := postSearch(t, router, body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}

			var resp searchuc.Response
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if resp.Success {
				t.Error("expected failure envelope")
			}
			if resp.Error != "Search query is required" {
				t.Errorf("error = %q", resp.Error)
			}
			if resp.Results == nil {
				t.Error("results must serialize as an empty list")
			}
		})
	}
}

func TestSearchEndpoint_Preflight(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/search", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if methods := rec.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(methods, "POST") {
		t.Errorf("allow-methods = %q", methods)
	}
	if headers := rec.Header().Get("Access-Control-Allow-Headers"); headers != "Content-Type" {
		t.Errorf("allow-headers = %q", headers)
	}
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var report healthuc.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatal(err)
	}
	if report.Status != healthuc.Healthy {
		t.Errorf("status = %s, want ok", report.Status)
	}
	if report.Checks["catalog"] != healthuc.CheckOK {
		t.Errorf("catalog check = %s", report.Checks["catalog"])
	}
}
