package middleware

import (
	"context"

	"github.com/MaksTishchuk/OnlineShop-version-2/internal/cart"
)

type contextKey string

const (
	ctxOwner  contextKey = "cart_owner"
	ctxUserID contextKey = "user_id"
)

// OwnerFromContext returns the cart owner resolved by the Identity middleware.
func OwnerFromContext(ctx context.Context) (cart.Owner, bool) {
	if ctx == nil {
		return cart.Owner{}, false
	}
	owner, ok := ctx.Value(ctxOwner).(cart.Owner)
	return owner, ok
}

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

// WithOwner injects the resolved cart owner into the context.
func WithOwner(ctx context.Context, owner cart.Owner) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxOwner, owner)
}

// WithUserID injects the user identifier into the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxUserID, userID)
}
