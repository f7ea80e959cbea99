package api

import (
	"context"
)

type keyType string

const (
	userIDKey keyType = "userID"
)

// ctxWithUserID adds a user ID to the context
func ctxWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// ctxUserID retrieves the authenticated user ID from the context, if any.
func ctxUserID(ctx context.Context) (string, bool) {
	value, ok := ctx.Value(userIDKey).(string)
	return value, ok && value != ""
}
