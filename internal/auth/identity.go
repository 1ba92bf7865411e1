package auth

import "context"

// Identity is the authenticated caller resolved by the transport layer.
// Ownership checks compare UserID with the post's UserID; there is no
// other equality contract.
type Identity struct {
	UserID int64
	Name   string
}

type ctxKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok && id.UserID > 0
}
