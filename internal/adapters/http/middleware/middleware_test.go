package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// TestRateLimiter verifies the bucket empties and refills.
func TestRateLimiter(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }

	if !rl.Allow("1.2.3.4") || !rl.Allow("1.2.3.4") {
		t.Fatal("first two requests must pass")
	}
	if rl.Allow("1.2.3.4") {
		t.Error("third request within the interval must be rejected")
	}
	if !rl.Allow("5.6.7.8") {
		t.Error("other IPs have their own bucket")
	}

	now = now.Add(time.Minute)
	if !rl.Allow("1.2.3.4") {
		t.Error("bucket must refill after the interval")
	}

	now = now.Add(10 * time.Minute)
	rl.Sweep(5 * time.Minute)
	if len(rl.visitors) != 0 {
		t.Errorf("visitors = %d after sweep, want 0", len(rl.visitors))
	}
}

// TestRateLimit_Middleware verifies 429 responses.
func TestRateLimit_Middleware(t *testing.T) {
	handler := RateLimit(NewRateLimiter(1, time.Hour), writeError)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	for i, want := range []int{http.StatusOK, http.StatusTooManyRequests} {
		req := httptest.NewRequest("POST", "/api/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != want {
			t.Errorf("request %d status = %d, want %d", i, rr.Code, want)
		}
	}
}

// TestCORS verifies allowed origins and preflight handling.
func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) })
	handler := CORS([]string{"https://iglesia.example"})(next)

	req := httptest.NewRequest("GET", "/api/members", nil)
	req.Header.Set("Origin", "https://iglesia.example")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Header().Get("Access-Control-Allow-Origin") != "https://iglesia.example" {
		t.Errorf("allow origin = %q", rr.Header().Get("Access-Control-Allow-Origin"))
	}

	req = httptest.NewRequest("GET", "/api/members", nil)
	req.Header.Set("Origin", "https://evil.example")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("unknown origin must not be allowed")
	}

	req = httptest.NewRequest("OPTIONS", "/api/members", nil)
	req.Header.Set("Origin", "https://iglesia.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", rr.Code)
	}
}

// TestChain verifies the first middleware is outermost.
func TestChain(t *testing.T) {
	var order []string
	mw := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}), mw("a"), mw("b"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Errorf("order = %v, want [a b]", order)
	}
}
