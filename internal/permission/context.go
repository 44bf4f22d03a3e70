package permission

import "context"

type ctxKey string

const callerContextKey ctxKey = "permissionCaller"

// WithCaller stores the resolved caller for downstream handlers. Set by
// the authentication middleware alongside the full user record.
func WithCaller(ctx context.Context, caller *Caller) context.Context {
	return context.WithValue(ctx, callerContextKey, caller)
}

// CallerFromContext returns the caller, or nil for anonymous requests.
func CallerFromContext(ctx context.Context) *Caller {
	caller, _ := ctx.Value(callerContextKey).(*Caller)
	return caller
}
