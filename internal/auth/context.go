package auth

import "context"

type ctxKey string

const userContextKey ctxKey = "authUser"

// WithUser stores the authenticated user in the request context.
func WithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext returns the authenticated user, or (nil, false) for
// anonymous requests.
func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(userContextKey).(*User)
	return user, ok && user != nil
}
