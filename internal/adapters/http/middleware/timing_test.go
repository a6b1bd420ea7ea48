package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// captureLogs redirects the default logger for the duration of a test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

// TestTimingMiddleware_CapturesStatusCode verifies the status code is logged and passed through.
func TestTimingMiddleware_CapturesStatusCode(t *testing.T) {
	logs := captureLogs(t)
	handler := Timing(time.Hour)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/api/members/missing", nil))

	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
	if !strings.Contains(logs.String(), "status=404") {
		t.Errorf("log does not contain status: %s", logs.String())
	}
	if rr.Header().Get(RequestIDHeader) == "" {
		t.Error("missing request id header")
	}
}

// TestTimingMiddleware_SlowRequest verifies requests over the threshold log a warning.
func TestTimingMiddleware_SlowRequest(t *testing.T) {
	logs := captureLogs(t)
	handler := Timing(time.Nanosecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Millisecond)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/reports/statistics", nil))

	if !strings.Contains(logs.String(), "slow_request") {
		t.Errorf("expected slow_request warning, got: %s", logs.String())
	}
}

// TestTimingMiddleware_UniqueRequestIDs verifies request ids increase.
func TestTimingMiddleware_UniqueRequestIDs(t *testing.T) {
	handler := Timing(0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest("GET", "/healthz", nil))
		id := rr.Header().Get(RequestIDHeader)
		if seen[id] {
			t.Fatalf("duplicate request id %s", id)
		}
		seen[id] = true
	}
}

type recordingObserver struct {
	route, method string
	status        int
}

func (o *recordingObserver) Observe(route, method string, status int, d time.Duration) {
	o.route, o.method, o.status = route, method, status
}

func TestObserve_ReportsRouteAndStatus(t *testing.T) {
	obs := &recordingObserver{}
	handler := Observe(obs, func(*http.Request) string { return "/api/members/{id}" })(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("DELETE", "/api/members/7", nil))

	if obs.route != "/api/members/{id}" || obs.method != "DELETE" || obs.status != http.StatusTeapot {
		t.Errorf("observed %+v", obs)
	}
}
