package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func writeError(w http.ResponseWriter, status int, msg string) {
	http.Error(w, msg, status)
}

// TestTokens_IssueVerify verifies the round trip and expiry handling.
func TestTokens_IssueVerify(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	tokens := NewTokens("secret", 0)
	tokens.now = func() time.Time { return now }

	raw, err := tokens.Issue("admin")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	subject, err := tokens.Verify(raw)
	if err != nil || subject != "admin" {
		t.Fatalf("Verify = %q, %v", subject, err)
	}

	now = now.Add(DefaultTokenTTL + time.Minute)
	if _, err := tokens.Verify(raw); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired token err = %v, want ErrInvalidToken", err)
	}
}

// TestTokens_RejectsForeignTokens verifies other secrets and algorithms are rejected.
func TestTokens_RejectsForeignTokens(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)

	other, _ := NewTokens("other", time.Hour).Issue("admin")
	if _, err := tokens.Verify(other); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("foreign secret err = %v", err)
	}

	unsigned, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if _, err := tokens.Verify(unsigned); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("alg none err = %v", err)
	}

	if _, err := tokens.Verify("garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("garbage err = %v", err)
	}
}

// TestRequireBearer verifies the middleware gate.
func TestRequireBearer(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)
	valid, _ := tokens.Issue("admin")

	var gotSubject string
	handler := RequireBearer(tokens, writeError)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSubject, _ = SubjectFromContext(r.Context())
	}))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized},
		{"invalid", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer " + valid, http.StatusOK},
		{"lowercase scheme", "bearer " + valid, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotSubject = ""
			req := httptest.NewRequest("GET", "/api/members", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)
			if rr.Code != tt.want {
				t.Errorf("status = %d, want %d", rr.Code, tt.want)
			}
			if tt.want == http.StatusOK && gotSubject != "admin" {
				t.Errorf("subject = %q, want admin", gotSubject)
			}
		})
	}
}
