package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/praxiscommerce/catalog-api/internal/platform/httpx"
)

// BearerMiddleware verifies the Authorization bearer token when one is
// present. Requests without an Authorization header proceed as anonymous;
// requests with a malformed or invalid token are rejected.
func BearerMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := strings.TrimSpace(r.Header.Get("Authorization"))
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			tokenStr, ok := extractBearerToken(header)
			if !ok {
				respondAuthError(w, r, http.StatusUnauthorized, "unauthenticated", "authorization header malformed")
				return
			}
			if verifier == nil {
				respondAuthError(w, r, http.StatusUnauthorized, "unauthenticated", "authorization service unavailable")
				return
			}

			identity, err := verifier.Verify(tokenStr)
			if err != nil {
				respondVerificationError(w, r, err)
				return
			}

			ctx := WithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireTier rejects requests whose identity does not satisfy the given
// minimum privilege tier. Anonymous requests are rejected outright.
func RequireTier(minimum string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				respondAuthError(w, r, http.StatusUnauthorized, "unauthenticated", "authentication required")
				return
			}
			if !tierSatisfies(string(identity.Tier), minimum) {
				respondAuthError(w, r, http.StatusForbidden, "insufficient_tier", "identity does not have required tier")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

var tierRank = map[string]int{
	"self-service": 0,
	"admin":        1,
	"main":         2,
}

func tierSatisfies(tier, minimum string) bool {
	have, ok := tierRank[strings.ToLower(strings.TrimSpace(tier))]
	if !ok {
		return false
	}
	want, ok := tierRank[strings.ToLower(strings.TrimSpace(minimum))]
	if !ok {
		return false
	}
	return have >= want
}

func extractBearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}

func respondAuthError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	httpx.WriteError(r.Context(), w, httpx.NewError(code, message, status))
}

func respondVerificationError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrTokenExpired):
		respondAuthError(w, r, http.StatusUnauthorized, "token_expired", "bearer token expired")
	case errors.Is(err, ErrTokenInvalid):
		respondAuthError(w, r, http.StatusUnauthorized, "invalid_token", "bearer token invalid")
	default:
		respondAuthError(w, r, http.StatusUnauthorized, "invalid_token", "bearer token verification failed")
	}
}
