package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"autosales-dashboard/internal/config"
	"autosales-dashboard/internal/controller"
	"autosales-dashboard/internal/dataset"
	"autosales-dashboard/internal/middleware"
	"autosales-dashboard/internal/models"
	"autosales-dashboard/internal/server"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// Test helper to create a controller with test data
func newTestController() *controller.Controller {
	ds := dataset.FromRecords([]models.SalesRecord{
		{Manufacturer: "Toyota", Region: "North", SalesVolume: 100, PriceK: 20, IsSuccess: 1, TimePeriod: "2020-Q1", SalesCategory: "High"},
		{Manufacturer: "Toyota", Region: "South", SalesVolume: 50, PriceK: 15, IsSuccess: 0, TimePeriod: "2020-Q1", SalesCategory: "Low"},
		{Manufacturer: "Honda", Region: "North", SalesVolume: 80, PriceK: 18, IsSuccess: 1, TimePeriod: "2020-Q2", SalesCategory: "Medium"},
		{Manufacturer: "Honda", Region: "South", SalesVolume: 20, PriceK: 10, IsSuccess: 0, TimePeriod: "2020-Q2", SalesCategory: "Low"},
	})
	return controller.New(ds, testLogger())
}

func newTestServer(ctrl *controller.Controller) *server.Server {
	logger := testLogger()
	templateHandlers := &server.TemplateHandlers{Dashboard: dashboardHandler(ctrl, logger)}
	return server.NewServer(ctrl, logger, templateHandlers)
}

// Integration tests for HTTP routes
func TestServer_Routes(t *testing.T) {
	srv := newTestServer(newTestController())

	tests := []struct {
		path           string
		expectedStatus int
		contentType    string
	}{
		{"/", http.StatusOK, "text/html"},
		{"/health", http.StatusOK, "application/json"},
		{"/admin/stats", http.StatusOK, "application/json"},
		{"/api/options", http.StatusOK, "application/json"},
		{"/api/dashboard?manufacturer=Toyota&region=North", http.StatusOK, "application/json"},
		{"/api/dashboard?category=Bogus", http.StatusBadRequest, "application/json"},
		{"/sse/dashboard", http.StatusOK, "text/event-stream"},
		{"/export/chart/trend", http.StatusOK, "image/png"},
		{"/export/chart/unknown", http.StatusNotFound, "application/json"},
		{"/export/xlsx", http.StatusOK, "spreadsheetml"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest("GET", tt.path, nil)

			srv.ServeHTTP(w, r)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}

			ct := w.Header().Get("Content-Type")
			if !strings.Contains(ct, tt.contentType) {
				t.Errorf("content-type = %q, want %q", ct, tt.contentType)
			}

			if tt.contentType == "application/json" {
				var result any
				if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
					t.Errorf("invalid json: %v", err)
				}
			}
		})
	}
}

// Test error handling for invalid methods
func TestServer_ErrorHandling(t *testing.T) {
	srv := newTestServer(newTestController())

	tests := []struct {
		method string
		path   string
		status int
	}{
		{"POST", "/api/dashboard", http.StatusMethodNotAllowed},
		{"PUT", "/", http.StatusMethodNotAllowed},
		{"DELETE", "/health", http.StatusMethodNotAllowed},
		{"PATCH", "/sse/dashboard", http.StatusMethodNotAllowed},
		{"GET", "/does-not-exist", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(tt.method, tt.path, nil)

			srv.ServeHTTP(w, r)

			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
		})
	}
}

// Test dashboard template rendering
func TestDashboardTemplate(t *testing.T) {
	ctrl := newTestController()
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)

	dashboardHandler(ctrl, testLogger())(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}

	body := w.Body.String()
	expected := []string{
		"Automobile Sales Classification Dashboard",
		"Interactive dashboard showcasing sales patterns",
		`id="kpi-total-sales"`,
		`id="kpi-avg-price"`,
		`id="kpi-success-rate"`,
		">250</h3>",
		">$15.8k</h3>",
		">50.0%</h3>",
		`<option value="Honda">Honda</option>`,
		`<option value="North">North</option>`,
		"High Sales",
		"All Categories",
		"data-signals=",
		"@get(&#39;/sse/dashboard&#39;, {filterSignals: {include: /^(manufacturers|regions|category)$/}})",
		`id="chart-region"`,
	}

	for _, component := range expected {
		if !strings.Contains(body, component) {
			t.Errorf("dashboard should contain %q", component)
		}
	}

	if strings.Contains(body, "Dataset unavailable") {
		t.Error("loaded dashboard should not show the degraded banner")
	}
}

func TestDashboardTemplate_Degraded(t *testing.T) {
	ctrl := controller.New(dataset.Empty(), testLogger())
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)

	dashboardHandler(ctrl, testLogger())(w, r)

	body := w.Body.String()
	if !strings.Contains(body, "Dataset unavailable") {
		t.Error("degraded dashboard should show the banner")
	}
	if !strings.Contains(body, ">$0k</h3>") {
		t.Error("degraded dashboard should show empty KPIs")
	}
}

func TestLoadDataset(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "cleaned_data.csv")
	modelPath := filepath.Join(dir, "classification_model.pkl")
	csv := "Manufacturer,Region,SalesVolume,Price_k,Is_Success,TimePeriod,Sales_Category\nToyota,North,100,20,1,1,High\n"
	if err := os.WriteFile(csvPath, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(modelPath, []byte("model"), 0o644); err != nil {
		t.Fatal(err)
	}
	nanPath := filepath.Join(dir, "nan.csv")
	if err := os.WriteFile(nanPath, []byte(strings.Replace(csv, ",20,", ",NaN,", 1)), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name         string
		cfg          config.DatasetConfig
		wantRows     int
		wantDegraded bool
	}{
		{
			name:     "valid files",
			cfg:      config.DatasetConfig{CSVFile: csvPath, ModelFile: modelPath, LoadTimeout: time.Second},
			wantRows: 1,
		},
		{
			name:         "missing model",
			cfg:          config.DatasetConfig{CSVFile: csvPath, ModelFile: filepath.Join(dir, "missing.pkl"), LoadTimeout: time.Second},
			wantDegraded: true,
		},
		{
			name:         "non-finite price",
			cfg:          config.DatasetConfig{CSVFile: nanPath, ModelFile: modelPath, LoadTimeout: time.Second},
			wantDegraded: true,
		},
		{
			name:         "missing data",
			cfg:          config.DatasetConfig{CSVFile: filepath.Join(dir, "missing.csv"), LoadTimeout: time.Second},
			wantDegraded: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := loadDataset(context.Background(), tt.cfg, testLogger())
			if ds.Len() != tt.wantRows {
				t.Errorf("Len() = %d, want %d", ds.Len(), tt.wantRows)
			}
			if ds.Source().Degraded != tt.wantDegraded {
				t.Errorf("Degraded = %v, want %v", ds.Source().Degraded, tt.wantDegraded)
			}
		})
	}
}

// Test the full middleware chain around the server
func TestMiddlewareChain(t *testing.T) {
	cfg := config.Default()
	logger := testLogger()
	srv := newTestServer(newTestController())

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Tracing(logger),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.Security),
		middleware.TrustedProxy(cfg.Security),
		middleware.RateLimit(middleware.NewRateLimiter(cfg.Security), logger),
	)(srv)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/sse/dashboard", nil)
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
	if csp := w.Header().Get("Content-Security-Policy"); !strings.Contains(csp, "cdn.jsdelivr.net") {
		t.Errorf("CSP = %q, should allow the CDN bundles", csp)
	}
	if !strings.Contains(w.Body.String(), "datastar-patch-elements") {
		t.Error("SSE response should pass through the middleware chain")
	}
}
