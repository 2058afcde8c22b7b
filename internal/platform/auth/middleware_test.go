package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/praxiscommerce/catalog-api/internal/domain"
)

type stubVerifier struct {
	identity *Identity
	err      error
}

func (s *stubVerifier) Verify(_ string) (*Identity, error) {
	return s.identity, s.err
}

func TestBearerMiddlewareAnonymousPassThrough(t *testing.T) {
	var caller domain.Caller
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller = CallerFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	handler := BearerMiddleware(&stubVerifier{err: errors.New("must not be called")})(next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/products", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !caller.Anonymous() {
		t.Fatalf("expected anonymous caller, got %+v", caller)
	}
}

func TestBearerMiddlewareMalformedHeader(t *testing.T) {
	handler := BearerMiddleware(&stubVerifier{})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatalf("next handler must not run")
	}))

	r := httptest.NewRequest("GET", "/products", nil)
	r.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body["error"] != "unauthenticated" || body["status"] != float64(http.StatusUnauthorized) {
		t.Fatalf("expected the shared error envelope, got %#v", body)
	}
}

func TestBearerMiddlewareInvalidToken(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"expired", ErrTokenExpired},
		{"invalid", ErrTokenInvalid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := BearerMiddleware(&stubVerifier{err: tc.err})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				t.Fatalf("next handler must not run")
			}))

			r := httptest.NewRequest("GET", "/products", nil)
			r.Header.Set("Authorization", "Bearer token")
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, r)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestBearerMiddlewareInjectsIdentity(t *testing.T) {
	identity := &Identity{Subject: "acc_1", Kind: domain.KindAccount, Tier: domain.TierAdmin}

	var got domain.Caller
	handler := BearerMiddleware(&stubVerifier{identity: identity})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = CallerFromContext(r.Context())
	}))

	r := httptest.NewRequest("GET", "/products", nil)
	r.Header.Set("Authorization", "Bearer token")
	handler.ServeHTTP(httptest.NewRecorder(), r)

	if got.ID != "acc_1" || got.Tier != domain.TierAdmin {
		t.Fatalf("unexpected caller: %+v", got)
	}
}

func TestRequireTier(t *testing.T) {
	cases := []struct {
		name     string
		identity *Identity
		minimum  string
		want     int
	}{
		{"anonymous rejected", nil, "admin", http.StatusUnauthorized},
		{"insufficient tier", &Identity{Subject: "acc_1", Tier: domain.TierSelfService}, "admin", http.StatusForbidden},
		{"exact tier admitted", &Identity{Subject: "acc_1", Tier: domain.TierAdmin}, "admin", http.StatusOK},
		{"higher tier admitted", &Identity{Subject: "acc_1", Tier: domain.TierMain}, "admin", http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := RequireTier(tc.minimum)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			r := httptest.NewRequest("GET", "/admin", nil)
			if tc.identity != nil {
				r = r.WithContext(WithIdentity(r.Context(), tc.identity))
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, r)

			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
		})
	}
}
