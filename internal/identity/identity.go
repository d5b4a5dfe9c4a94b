package identity

import "context"

// Principal is an authenticated caller identity.
//
// The actor identifier is opaque to the ledger: it is whatever the
// authenticating transport resolved the caller to. Core code reads the
// principal from the context and never from request payload fields, so a
// caller cannot claim a different identity by naming one in the payload.
type Principal struct {
	Actor string
}

// ctxKey is unexported so only this package can bind principals.
type ctxKey struct{}

// WithPrincipal returns a context carrying the authenticated principal.
// Transports call this exactly once, after authentication succeeds.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// FromContext extracts the authenticated principal from the context.
// Returns ok=false if no transport bound one.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxKey{}).(Principal)
	return p, ok
}
