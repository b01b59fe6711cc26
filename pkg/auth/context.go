package auth

import "context"

type contextKey struct{}

var userKey = contextKey{}

// ContextWithUser returns a context carrying the authenticated username
func ContextWithUser(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, userKey, username)
}

// UserFromContext extracts the authenticated username from a context
func UserFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(userKey).(string)
	return username, ok && username != ""
}
