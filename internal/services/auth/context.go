package auth

import "context"

type identityContextKey string

const identityKey identityContextKey = "auth_identity"

// Identity is the authenticated caller. SubjectID is the acting user for every matching call.
type Identity struct {
	SubjectID int64
	TokenID   string
}

func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	if !ok || identity.SubjectID <= 0 {
		return Identity{}, false
	}
	return identity, true
}
