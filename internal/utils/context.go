package utils

import "context"

type ctxKey struct{}

// Principal is the authenticated caller decoded from the bearer token.
type Principal struct {
	UserID int
	Role   string
}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxKey{}).(Principal)
	return p, ok
}
