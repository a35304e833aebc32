package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"autosales-dashboard/internal/controller"
	"autosales-dashboard/internal/dataset"
	"autosales-dashboard/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func createTestController() *controller.Controller {
	ds := dataset.FromRecords([]models.SalesRecord{
		{Manufacturer: "Toyota", Region: "North", SalesVolume: 100, PriceK: 20, IsSuccess: 1, TimePeriod: "2020-Q1", SalesCategory: "High"},
		{Manufacturer: "Toyota", Region: "South", SalesVolume: 50, PriceK: 15, IsSuccess: 0, TimePeriod: "2020-Q1", SalesCategory: "Low"},
		{Manufacturer: "Honda", Region: "North", SalesVolume: 80, PriceK: 18, IsSuccess: 1, TimePeriod: "2020-Q2", SalesCategory: "Medium"},
		{Manufacturer: "Honda", Region: "South", SalesVolume: 20, PriceK: 10, IsSuccess: 0, TimePeriod: "2020-Q2", SalesCategory: "Low"},
	})
	return controller.New(ds, testLogger())
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Success bool            `json:"success"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.NewDecoder(w.Body).Decode(&env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return env
}

func TestParseSelection(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    models.Selection
		wantErr bool
	}{
		{
			name:  "absent means unset",
			query: "",
			want:  models.Selection{},
		},
		{
			name:  "present but empty",
			query: "manufacturer=&region=",
			want:  models.Selection{Manufacturers: []string{}, Regions: []string{}},
		},
		{
			name:  "comma separated and repeated",
			query: "manufacturer=Toyota,Honda&manufacturer=BMW&region=North&category=Low",
			want:  models.Selection{Manufacturers: []string{"Toyota", "Honda", "BMW"}, Regions: []string{"North"}, Category: "Low"},
		},
		{
			name:    "invalid category",
			query:   "category=Extreme",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatal(err)
			}

			got, err := parseSelection(q)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseSelection() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("parseSelection() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAPIHandlers_HandleOptions(t *testing.T) {
	handlers := NewAPIHandlers(createTestController(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/options", nil)
	w := httptest.NewRecorder()
	handlers.HandleOptions(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if cc := w.Header().Get("Cache-Control"); cc != cacheControl {
		t.Errorf("Cache-Control = %q, want %q", cc, cacheControl)
	}

	env := decodeEnvelope(t, w)
	var got controller.Options
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatal(err)
	}
	want := controller.Options{
		Manufacturers: []string{"Honda", "Toyota"},
		Regions:       []string{"North", "South"},
		Categories:    []string{"High", "Medium", "Low", "All"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestAPIHandlers_HandleDashboard(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		wantStatus  int
		wantRows    int
		wantSales   string
		wantNoData  bool
		wantErrCode string
	}{
		{
			name:       "defaults",
			query:      "",
			wantStatus: http.StatusOK,
			wantRows:   4,
			wantSales:  "250",
		},
		{
			name:       "low category",
			query:      "?category=Low",
			wantStatus: http.StatusOK,
			wantRows:   2,
			wantSales:  "70",
		},
		{
			name:       "empty manufacturer set",
			query:      "?manufacturer=",
			wantStatus: http.StatusOK,
			wantRows:   0,
			wantSales:  "0",
			wantNoData: true,
		},
		{
			name:        "invalid category",
			query:       "?category=nope",
			wantStatus:  http.StatusBadRequest,
			wantErrCode: "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlers := NewAPIHandlers(createTestController(), testLogger())

			req := httptest.NewRequest(http.MethodGet, "/api/dashboard"+tt.query, nil)
			w := httptest.NewRecorder()
			handlers.HandleDashboard(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}

			env := decodeEnvelope(t, w)
			if tt.wantErrCode != "" {
				if env.Success || env.Error == nil || env.Error.Code != tt.wantErrCode {
					t.Errorf("unexpected error envelope: %+v", env)
				}
				return
			}

			var got DashboardResponse
			if err := json.Unmarshal(env.Data, &got); err != nil {
				t.Fatal(err)
			}
			if got.RowCount != tt.wantRows {
				t.Errorf("row_count = %d, want %d", got.RowCount, tt.wantRows)
			}
			if got.Charts.KPIs.TotalSales != tt.wantSales {
				t.Errorf("total sales = %q, want %q", got.Charts.KPIs.TotalSales, tt.wantSales)
			}
			if got.Charts.NoData != tt.wantNoData {
				t.Errorf("noData = %v, want %v", got.Charts.NoData, tt.wantNoData)
			}
		})
	}
}

func TestAPIHandlers_HandleHealth(t *testing.T) {
	tests := []struct {
		name string
		ctrl *controller.Controller
		want string
	}{
		{"loaded", createTestController(), "healthy"},
		{"degraded", controller.New(dataset.Empty(), testLogger()), "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlers := NewAPIHandlers(tt.ctrl, testLogger())

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			w := httptest.NewRecorder()
			handlers.HandleHealth(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
			}

			var data map[string]string
			if err := json.Unmarshal(decodeEnvelope(t, w).Data, &data); err != nil {
				t.Fatal(err)
			}
			if data["status"] != tt.want {
				t.Errorf("status = %q, want %q", data["status"], tt.want)
			}
			if data["version"] == "" || data["timestamp"] == "" {
				t.Errorf("health data incomplete: %v", data)
			}
		})
	}
}

func TestAPIHandlers_HandleStats(t *testing.T) {
	handlers := NewAPIHandlers(createTestController(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	w := httptest.NewRecorder()
	handlers.HandleStats(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var stats StatsResponse
	if err := json.Unmarshal(decodeEnvelope(t, w).Data, &stats); err != nil {
		t.Fatal(err)
	}
	if stats.Source.RecordCount != 4 {
		t.Errorf("record_count = %d, want 4", stats.Source.RecordCount)
	}
	if stats.Manufacturers != 2 || stats.Regions != 2 {
		t.Errorf("manufacturers = %d, regions = %d", stats.Manufacturers, stats.Regions)
	}
	if stats.LastSeq != 1 {
		t.Errorf("last_seq = %d, want 1", stats.LastSeq)
	}
	if stats.State != "idle" {
		t.Errorf("state = %q, want idle", stats.State)
	}
}
