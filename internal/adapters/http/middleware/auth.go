package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

const subjectContextKey contextKey = "subject"

// DefaultTokenTTL is how long an access token stays valid.
const DefaultTokenTTL = 24 * time.Hour

// TokenType is the scheme returned to clients and expected in the Authorization header.
const TokenType = "bearer"

var (
	ErrMissingToken = errors.New("not authenticated")
	ErrInvalidToken = errors.New("could not validate credentials")
)

// Claims is the JWT payload. Subject carries the username.
type Claims struct {
	jwt.RegisteredClaims
}

// Tokens issues and verifies HS256 access tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokens creates a token service.
// PRE: secret is non-empty
// POST: ttl <= 0 falls back to DefaultTokenTTL
func NewTokens(secret string, ttl time.Duration) *Tokens {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for subject.
// PRE: subject is non-empty
// POST: Returns a token expiring after the configured TTL
func (t *Tokens) Issue(subject string) (string, error) {
	now := t.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify parses a token and returns its subject.
// PRE: none
// POST: Returns ErrInvalidToken for bad signatures, other algorithms, expired tokens or empty subjects
func (t *Tokens) Verify(raw string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims,
		func(token *jwt.Token) (any, error) {
			return t.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// RequireBearer returns middleware that rejects requests without a valid bearer token
// and stores the token subject in the request context.
func RequireBearer(tokens *Tokens, onError func(w http.ResponseWriter, status int, msg string)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				w.Header().Set("WWW-Authenticate", "Bearer")
				onError(w, http.StatusUnauthorized, ErrMissingToken.Error())
				return
			}
			subject, err := tokens.Verify(raw)
			if err != nil {
				slog.Info("auth_event", "event", "token_rejected", "path", r.URL.Path, "error", err)
				w.Header().Set("WWW-Authenticate", "Bearer")
				onError(w, http.StatusUnauthorized, ErrInvalidToken.Error())
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithSubject(r.Context(), subject)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, TokenType) {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// SubjectFromContext returns the authenticated username.
func SubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(subjectContextKey).(string)
	return subject, ok
}

// ContextWithSubject returns a context carrying the authenticated username.
func ContextWithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectContextKey, subject)
}
