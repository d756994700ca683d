package proto

import "context"

// ContextKeyUser is the context key for the authenticated user.
var ContextKeyUser = &struct{ string }{"user"}

// UserFromContext returns the authenticated user from the context, or nil.
func UserFromContext(ctx context.Context) *User {
	if u, ok := ctx.Value(ContextKeyUser).(*User); ok {
		return u
	}
	return nil
}

// WithUserContext returns a new context with the authenticated user.
func WithUserContext(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ContextKeyUser, u)
}
