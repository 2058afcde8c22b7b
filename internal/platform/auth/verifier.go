package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/praxiscommerce/catalog-api/internal/domain"
)

const (
	kindClaim = "kind"
	tierClaim = "tier"
)

var (
	// ErrTokenExpired signals that the provided bearer token has expired.
	ErrTokenExpired = errors.New("auth: token expired")
	// ErrTokenInvalid signals that the provided bearer token is invalid for other reasons.
	ErrTokenInvalid = errors.New("auth: token invalid")
)

// TokenVerifier validates a bearer token and returns the identity it asserts.
type TokenVerifier interface {
	Verify(token string) (*Identity, error)
}

// HMACVerifier verifies HS256-signed tokens issued by the accounts service.
type HMACVerifier struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewHMACVerifier constructs a verifier for the given shared secret. When
// issuer is non-empty, tokens must carry a matching iss claim.
func NewHMACVerifier(secret, issuer string) *HMACVerifier {
	return &HMACVerifier{
		secret: []byte(secret),
		issuer: strings.TrimSpace(issuer),
		now:    time.Now,
	}
}

// Verify implements the TokenVerifier interface.
func (v *HMACVerifier) Verify(tokenStr string) (*Identity, error) {
	if v == nil || len(v.secret) == 0 {
		return nil, fmt.Errorf("%w: verifier not configured", ErrTokenInvalid)
	}

	claims := jwt.MapClaims{}
	// Time claims are checked against the verifier's own clock below, so the
	// parser only handles signature and algorithm validation.
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	_, err := parser.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	now := v.now().Unix()
	if !claims.VerifyExpiresAt(now, false) {
		return nil, ErrTokenExpired
	}
	if !claims.VerifyNotBefore(now, false) {
		return nil, fmt.Errorf("%w: token not yet valid", ErrTokenInvalid)
	}

	if v.issuer != "" {
		if !claims.VerifyIssuer(v.issuer, true) {
			return nil, fmt.Errorf("%w: unexpected issuer", ErrTokenInvalid)
		}
	}

	subject := claimAsString(claims, "sub")
	if subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrTokenInvalid)
	}

	kind, ok := domain.ParseAccountKind(claimAsString(claims, kindClaim))
	if !ok {
		kind = domain.KindAccount
	}
	tier, ok := domain.ParsePrivilegeTier(claimAsString(claims, tierClaim))
	if !ok {
		tier = domain.TierSelfService
	}

	return &Identity{
		Subject: subject,
		Kind:    kind,
		Tier:    tier,
	}, nil
}

func claimAsString(claims jwt.MapClaims, key string) string {
	raw, ok := claims[key]
	if !ok {
		return ""
	}
	if str, ok := raw.(string); ok {
		return strings.TrimSpace(str)
	}
	return ""
}
