package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DrOldGuy/builder-pattern/internal/common/auth"
	"github.com/DrOldGuy/builder-pattern/internal/common/config"
	"github.com/DrOldGuy/builder-pattern/internal/common/middleware"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

func TestJWTAuthMiddlewarePublicPath(t *testing.T) {
	cfg := config.AuthConfig{
		Enabled:     true,
		JWTSecret:   "secret",
		PublicPaths: []string{"/healthz"},
	}
	h := JWTAuthMiddleware(cfg, nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on public path, got %d", rec.Code)
	}
}

func TestJWTAuthMiddlewareMissingToken(t *testing.T) {
	cfg := config.AuthConfig{Enabled: true, JWTSecret: "secret"}
	h := JWTAuthMiddleware(cfg, nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/v1/listings", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
}

func TestJWTAuthMiddlewareValidToken(t *testing.T) {
	cfg := config.AuthConfig{Enabled: true, JWTSecret: "secret"}

	token, _, err := auth.GenerateAccessToken(cfg, "u-1", []string{"admin"}, time.Hour)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	var got AuthInfo
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = AuthFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	h := JWTAuthMiddleware(cfg, nil)(inner)

	req := httptest.NewRequest(http.MethodGet, "/v1/listings", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid token, got %d", rec.Code)
	}
	if got.Subject != "u-1" {
		t.Fatalf("expected auth info in ctx, got %#v", got)
	}
}

func TestJWTAuthMiddlewareRBAC(t *testing.T) {
	cfg := config.AuthConfig{
		Enabled:   true,
		JWTSecret: "secret",
		RBAC:      map[string][]string{"/v1/listings": {"admin"}},
	}

	token, _, err := auth.GenerateAccessToken(cfg, "u-2", []string{"viewer"}, time.Hour)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	h := JWTAuthMiddleware(cfg, nil)(okHandler())
	req := httptest.NewRequest(http.MethodDelete, "/v1/listings", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for missing role, got %d", rec.Code)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	h := RateLimitMiddleware(middleware.NewTokenBucket(1, 1))(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/v1/listings", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected first request allowed, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 once bucket is drained, got %d", rec.Code)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	h := RecoveryMiddleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/listings", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 after panic, got %d", rec.Code)
	}
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) HTTPMiddleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(okHandler(), mw("a"), mw("b"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("unexpected middleware order: %v", order)
	}
}
