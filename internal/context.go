package internal

import (
	"context"
	"time"
)

type ctxKey string

const ContextUserKey ctxKey = "userID"

const defaultTimeout = 5 * time.Second

// ContextWithUserID stores the authenticated user's id for request-scoped use.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ContextUserKey, userID)
}

// UserIDFromContext returns the stored user id, or "" for anonymous requests.
func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	userID, _ := ctx.Value(ContextUserKey).(string)
	return userID
}

// WithTimeout wraps ctx with the given timeout, substituting a 5 second
// default when the duration is not positive.
func WithTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = defaultTimeout
	}
	return context.WithTimeout(ctx, d)
}
