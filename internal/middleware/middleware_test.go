package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	reqctx "warehouse/loadmap/internal/context"
	"warehouse/loadmap/internal/logging"
	"warehouse/loadmap/internal/metrics"
)

func init() {
	logging.SetLogger(zap.NewNop().Sugar())
}

func TestRequestIDMiddleware_GeneratesAndEchoes(t *testing.T) {
	var seen string
	h := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = reqctx.GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if seen == "" || rec.Header().Get("X-Request-ID") != seen {
		t.Errorf("Expected generated request id echoed, got %q / %q", seen, rec.Header().Get("X-Request-ID"))
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if seen != "abc" {
		t.Errorf("Expected incoming id abc, got %q", seen)
	}
}

func TestMetricsMiddleware_CountsByRoutePattern(t *testing.T) {
	m := metrics.NewMetricsRegistry(prometheus.NewRegistry())
	r := chi.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.Get("/api/loadmaps/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/loadmaps/7", nil))

	got := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("/api/loadmaps/{id}", "GET", "404"))
	if got != 1 {
		t.Errorf("Expected 1 request counted, got %v", got)
	}
}

func TestRateLimiter_RejectsOverBurst(t *testing.T) {
	l := NewRateLimiter(0, 2)
	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.9:5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	if codes[0] != 200 || codes[1] != 200 || codes[2] != http.StatusTooManyRequests {
		t.Errorf("Unexpected codes %v", codes)
	}
}

func TestRateLimiter_LoopbackWhitelisted(t *testing.T) {
	l := NewRateLimiter(0, 0)
	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "127.0.0.1:5555"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("Expected loopback to pass, got %d", rec.Code)
	}
}

func TestEditorSessionMiddleware(t *testing.T) {
	var seen string
	h := EditorSessionMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = reqctx.GetSessionID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ui", nil))
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value != seen {
		t.Fatalf("Expected a new session cookie matching %q, got %v", seen, cookies)
	}

	req := httptest.NewRequest(http.MethodGet, "/ui", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	first := seen
	h.ServeHTTP(rec, req)
	if seen != first || len(rec.Result().Cookies()) != 0 {
		t.Errorf("Expected existing session reused")
	}
}

func TestNormalizeEndpoint(t *testing.T) {
	if got := NormalizeEndpoint("/api/loadmaps/42/export.pdf"); got != "/api/loadmaps/{id}/export.pdf" {
		t.Errorf("Unexpected %s", got)
	}
}
