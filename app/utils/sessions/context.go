package sessions

import "context"

type contextKey string

const contextKeyAdmin contextKey = "admin"

func WithAdmin(ctx context.Context, admin *Admin) context.Context {
	return context.WithValue(ctx, contextKeyAdmin, admin)
}

func AdminFromContext(ctx context.Context) (*Admin, bool) {
	admin, ok := ctx.Value(contextKeyAdmin).(*Admin)
	return admin, ok && admin != nil
}

// ContextToken hands the API client the token of the admin stored in the
// request context.
type ContextToken struct{}

func (ContextToken) Token(ctx context.Context) (string, error) {
	if admin, ok := AdminFromContext(ctx); ok {
		return admin.Token, nil
	}
	return "", nil
}
