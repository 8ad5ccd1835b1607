package auth

import (
	"context"
	"strings"
)

type userIDContextKey struct{}

// ContextWithUserID attaches the acting user's identifier to the context.
// The authn middleware calls this once per request after decoding the
// session cookie; resolver handlers only ever read it back.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ctx
	}
	return context.WithValue(ctx, userIDContextKey{}, userID)
}

// UserIDFromContext extracts the acting user's identifier from the context.
func UserIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	v, ok := ctx.Value(userIDContextKey{}).(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
