package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"autosales-dashboard/internal/config"
	"autosales-dashboard/internal/observability"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = observability.GetRequestID(r.Context())
	}))

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

		if len(seen) != 36 {
			t.Errorf("generated id %q is not a uuid", seen)
		}
		if w.Header().Get("X-Request-ID") != seen {
			t.Errorf("header %q, context %q", w.Header().Get("X-Request-ID"), seen)
		}
	})

	t.Run("propagated", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("X-Request-ID", "abc")
		h.ServeHTTP(httptest.NewRecorder(), r)

		if seen != "abc" {
			t.Errorf("request id = %q, want abc", seen)
		}
	})
}

func TestRecovery(t *testing.T) {
	h := Recovery(testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/api/dashboard", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}

func TestRateLimit(t *testing.T) {
	cfg := config.SecurityConfig{EnableRateLimit: true, RateLimitRPS: 1, RateLimitBurst: 2}
	h := RateLimit(NewRateLimiter(cfg), testLogger())(okHandler)

	codes := make([]int, 0, 3)
	for range 3 {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "10.0.0.1:5000"
		h.ServeHTTP(w, r)
		codes = append(codes, w.Code)
	}

	want := []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}
	for i := range want {
		if codes[i] != want[i] {
			t.Errorf("request %d status = %d, want %d", i, codes[i], want[i])
		}
	}
}

func TestRateLimiter_Disabled(t *testing.T) {
	rl := NewRateLimiter(config.SecurityConfig{EnableRateLimit: false, RateLimitRPS: 1, RateLimitBurst: 1})
	for range 5 {
		if !rl.Allow("10.0.0.1") {
			t.Fatal("disabled limiter should allow every request")
		}
	}
	if rl.Len() != 0 {
		t.Errorf("Len() = %d, want 0", rl.Len())
	}
}

func TestRateLimiter_EvictsIdleVisitors(t *testing.T) {
	rl := NewRateLimiter(config.SecurityConfig{EnableRateLimit: true, RateLimitRPS: 10, RateLimitBurst: 10})
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.Allow("10.0.0.1")
	rl.Allow("10.0.0.2")
	if rl.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", rl.Len())
	}

	now = now.Add(2 * limiterIdleTTL)
	rl.Allow("10.0.0.3")
	if rl.Len() != 1 {
		t.Errorf("Len() = %d after idle sweep, want 1", rl.Len())
	}
}

func TestCORS(t *testing.T) {
	cfg := config.SecurityConfig{AllowedOrigins: []string{"http://localhost:8050"}}
	h := CORS(cfg)(okHandler)

	tests := []struct {
		origin string
		want   string
	}{
		{"http://localhost:8050", "http://localhost:8050"},
		{"http://evil.example", ""},
	}

	for _, tt := range tests {
		r := httptest.NewRequest("GET", "/api/options", nil)
		r.Header.Set("Origin", tt.origin)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.want {
			t.Errorf("origin %q: Allow-Origin = %q, want %q", tt.origin, got, tt.want)
		}
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/options", nil))
	if w.Code != http.StatusOK {
		t.Errorf("preflight status = %d", w.Code)
	}
}

func TestTrustedProxy(t *testing.T) {
	var xff string
	h := TrustedProxy(config.SecurityConfig{TrustedProxies: []string{"127.0.0.1"}})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		xff = r.Header.Get("X-Forwarded-For")
	}))

	tests := []struct {
		remote string
		want   string
	}{
		{"127.0.0.1:1234", "203.0.113.9"},
		{"198.51.100.7:1234", ""},
	}

	for _, tt := range tests {
		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = tt.remote
		r.Header.Set("X-Forwarded-For", "203.0.113.9")
		h.ServeHTTP(httptest.NewRecorder(), r)

		if xff != tt.want {
			t.Errorf("remote %s: X-Forwarded-For = %q, want %q", tt.remote, xff, tt.want)
		}
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded chain", map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.1"}, "127.0.0.1:1", "203.0.113.9"},
		{"real ip", map[string]string{"X-Real-IP": "203.0.113.10"}, "127.0.0.1:1", "203.0.113.10"},
		{"remote addr", nil, "192.0.2.4:8080", "192.0.2.4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := getClientIP(r); got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTracing_PreservesFlusher(t *testing.T) {
	var flushable bool
	h := Tracing(testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, flushable = w.(http.Flusher)
		if observability.GetSpan(r.Context()) == nil {
			t.Error("request context should carry a span")
		}
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/sse/dashboard", nil))
	if !flushable {
		t.Error("wrapped writer should implement http.Flusher")
	}
}
