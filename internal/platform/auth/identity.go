package auth

import (
	"context"

	"github.com/praxiscommerce/catalog-api/internal/domain"
)

// Identity captures the authenticated principal details extracted from a bearer token.
type Identity struct {
	Subject string
	Kind    domain.AccountKind
	Tier    domain.PrivilegeTier
}

// Caller converts the identity into the domain caller shape. A nil identity
// maps to the anonymous caller.
func (i *Identity) Caller() domain.Caller {
	if i == nil {
		return domain.Caller{}
	}
	return domain.Caller{
		ID:   i.Subject,
		Kind: i.Kind,
		Tier: i.Tier,
	}
}

// Privileged reports whether the identity carries an admin or main tier.
func (i *Identity) Privileged() bool {
	if i == nil {
		return false
	}
	return i.Tier.Privileged()
}

type contextKey string

const identityContextKey contextKey = "github.com/praxiscommerce/catalog-api/internal/platform/auth/identity"

// WithIdentity stores the identity within the context for downstream handlers.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}

// IdentityFromContext retrieves the identity previously stored in context.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(*Identity)
	if !ok || identity == nil {
		return nil, false
	}
	return identity, true
}

// CallerFromContext resolves the domain caller for the request, anonymous when
// no identity is present.
func CallerFromContext(ctx context.Context) domain.Caller {
	identity, ok := IdentityFromContext(ctx)
	if !ok {
		return domain.Caller{}
	}
	return identity.Caller()
}
