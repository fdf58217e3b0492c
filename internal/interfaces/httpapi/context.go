package httpapi

import (
	"context"
	"fmt"

	"github.com/riskibarqy/knight-arena/internal/domain/user"
	"github.com/riskibarqy/knight-arena/internal/usecase"
)

type principalKey struct{}

func withPrincipal(ctx context.Context, p user.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func principalFromContext(ctx context.Context) (user.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(user.Principal)
	return p, ok && p.UserID != ""
}

// requirePrincipal is for handlers mounted behind RequireAuth.
func requirePrincipal(ctx context.Context) (user.Principal, error) {
	if p, ok := principalFromContext(ctx); ok {
		return p, nil
	}
	return user.Principal{}, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized)
}

// viewerID is "" for anonymous requests.
func viewerID(ctx context.Context) string {
	p, _ := principalFromContext(ctx)
	return p.UserID
}
