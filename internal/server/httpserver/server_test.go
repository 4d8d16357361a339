package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/yndnr/rudis-go/internal/telemetry/logger"
	"github.com/yndnr/rudis-go/internal/telemetry/metric"
)

func testRouter(cfg *RouterConfig) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}
	return NewRouter(cfg)
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

// ============================================================================
// Endpoints
// ============================================================================

func TestHealth(t *testing.T) {
	h := testRouter(&RouterConfig{})
	rec := get(t, h, "/health")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID")
	}

	resp := decode(t, rec)
	if resp.Code != "OK" {
		t.Errorf("expected code 'OK', got %q", resp.Code)
	}
	data, ok := resp.Data.(map[string]any)
	if !ok || data["status"] != "healthy" {
		t.Errorf("unexpected data %v", resp.Data)
	}
}

func TestReady(t *testing.T) {
	ready := false
	h := testRouter(&RouterConfig{Ready: func() bool { return ready }})

	rec := get(t, h, "/ready")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 before ready, got %d", rec.Code)
	}
	if code := rec.Header().Get("X-Error-Code"); code != "RD-SYS-5030" {
		t.Errorf("X-Error-Code = %q", code)
	}
	if resp := decode(t, rec); resp.Message != "server not ready" {
		t.Errorf("message = %q", resp.Message)
	}

	ready = true
	if rec := get(t, h, "/ready"); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 once ready, got %d", rec.Code)
	}
}

func TestStats(t *testing.T) {
	h := testRouter(&RouterConfig{
		KeyCounts: func() map[string]int {
			return map[string]int{"string": 3, "zset": 1, "list": 0}
		},
		ActiveConns:    func() int { return 2 },
		BitmapCapacity: 4096,
	})

	rec := get(t, h, "/stats")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body struct {
		Data StatsResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	stats := body.Data

	if stats.KeysTotal != 4 {
		t.Errorf("KeysTotal = %d, want 4", stats.KeysTotal)
	}
	if stats.Keys["zset"] != 1 {
		t.Errorf("Keys[zset] = %d, want 1", stats.Keys["zset"])
	}
	if stats.Connections != 2 {
		t.Errorf("Connections = %d, want 2", stats.Connections)
	}
	if stats.BitmapCapacity != 4096 {
		t.Errorf("BitmapCapacity = %d, want 4096", stats.BitmapCapacity)
	}
	if stats.Version == "" || stats.GoVersion == "" {
		t.Errorf("missing build info: %+v", stats)
	}
	if stats.Uptime == "" {
		t.Error("missing humanized uptime")
	}
}

func TestStats_NoSources(t *testing.T) {
	rec := get(t, testRouter(&RouterConfig{}), "/stats")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestMetrics(t *testing.T) {
	reg := metric.NewRegistry()
	reg.RecordCommand("get", true, time.Millisecond)
	h := testRouter(&RouterConfig{Metrics: reg})

	rec := get(t, h, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `rudis_commands_total{command="get",result="ok"} 1`) {
		t.Error("metrics output missing command counter")
	}
}

func TestUnknownRouteAndMethod(t *testing.T) {
	h := testRouter(&RouterConfig{})

	if rec := get(t, h, "/nope"); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/health", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}

// ============================================================================
// Middleware
// ============================================================================

func TestRequestID_Propagates(t *testing.T) {
	h := testRouter(&RouterConfig{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-fixed")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "req-fixed" {
		t.Errorf("X-Request-ID = %q", got)
	}
	if resp := decode(t, rec); resp.RequestID != "req-fixed" {
		t.Errorf("body request_id = %q", resp.RequestID)
	}
}

func TestRecover(t *testing.T) {
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	h := Chain(panicking, RequestID(), Recover(logger.Nop()))

	rec := get(t, h, "/")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if resp := decode(t, rec); resp.Code != "RD-SYS-5000" {
		t.Errorf("code = %q", resp.Code)
	}
}

func TestLogging_RecordsRequests(t *testing.T) {
	reg := metric.NewRegistry()
	h := testRouter(&RouterConfig{Metrics: reg})

	get(t, h, "/health")
	get(t, h, "/health")
	get(t, h, "/does/not/exist")

	if got := testutil.ToFloat64(reg.HTTPRequestsTotal.WithLabelValues("/health", "200")); got != 2 {
		t.Errorf("/health 200 = %v, want 2", got)
	}
	if got := testutil.ToFloat64(reg.HTTPRequestsTotal.WithLabelValues("other", "404")); got != 1 {
		t.Errorf("other 404 = %v, want 1", got)
	}
}

func TestChain_Order(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}), mark("a"), mark("b"))
	get(t, h, "/")

	if strings.Join(order, ",") != "a,b" {
		t.Errorf("order = %v", order)
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name   string
		header map[string]string
		remote string
		want   string
	}{
		{"forwarded", map[string]string{"X-Forwarded-For": "10.0.0.1, 10.0.0.2"}, "1.1.1.1:80", "10.0.0.1"},
		{"real ip", map[string]string{"X-Real-IP": "10.0.0.3"}, "1.1.1.1:80", "10.0.0.3"},
		{"ipv6 remote", nil, "[::1]:8080", "::1"},
		{"no port", nil, "192.168.1.1", "192.168.1.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			if got := getClientIP(req); got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ============================================================================
// Server
// ============================================================================

func TestServer_StartAndShutdown(t *testing.T) {
	s := New("127.0.0.1:0", testRouter(&RouterConfig{}))
	if s.Addr() != nil {
		t.Fatal("Addr should be nil before Start")
	}

	if err := s.Start(nil); err != nil {
		t.Fatalf("Start: %v", err)
	}

	resp, err := http.Get("http://" + s.Addr().String() + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown error: %v", err)
	}
}

func TestServer_StartListenError(t *testing.T) {
	s := New("bad-address", http.NotFoundHandler())
	if err := s.Start(nil); err == nil {
		t.Fatal("expected listen error")
	}
}
