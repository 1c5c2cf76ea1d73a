package auth

import (
	"context"

	"github.com/oggyb/accountadate/internal/domain"
)

type accountKey struct{}

// WithAccount stores the authenticated account id in ctx.
func WithAccount(ctx context.Context, accountID uint64) context.Context {
	return context.WithValue(ctx, accountKey{}, accountID)
}

// AccountFromContext returns the authenticated account id, if any.
func AccountFromContext(ctx context.Context) (uint64, bool) {
	id, ok := ctx.Value(accountKey{}).(uint64)
	return id, ok && id != 0
}

// RequireAccount is AccountFromContext for handlers that need a caller.
func RequireAccount(ctx context.Context) (uint64, error) {
	id, ok := AccountFromContext(ctx)
	if !ok {
		return 0, domain.ErrUnauthenticated
	}
	return id, nil
}
