package auth

import "context"

type contextKeyRole struct{}

// Role returns the authenticated role, or "" when unauthenticated.
func Role(ctx context.Context) string {
	role, _ := ctx.Value(contextKeyRole{}).(string)
	return role
}

func withRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, contextKeyRole{}, role)
}
