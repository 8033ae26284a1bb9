// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values.
//
// Middleware sets these values; services read them. Keeping the package free
// of net/http lets services import only what they need.
//
// Usage in services (read values):
//
//	account := requestcontext.Account(ctx)
//	now := requestcontext.Now(ctx)
//
// Usage in tests (inject values):
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
//	ctx = requestcontext.WithAccount(ctx, "acct-a")
package requestcontext

import (
	"context"
	"time"

	id "namevault/pkg/domain"
)

type (
	accountKey     struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

// Exported context keys for tests that need raw context.WithValue.
var (
	ContextKeyAccount     = accountKey{}
	ContextKeyRequestID   = requestIDKey{}
	ContextKeyRequestTime = requestTimeKey{}
)

// WithAccount stores the authenticated caller account in context.
func WithAccount(ctx context.Context, account id.Account) context.Context {
	return context.WithValue(ctx, ContextKeyAccount, account)
}

// Account returns the authenticated caller account, or the zero account when
// the request is unauthenticated.
func Account(ctx context.Context) id.Account {
	if a, ok := ctx.Value(ContextKeyAccount).(id.Account); ok {
		return a
	}
	return id.ZeroAccount
}

// WithRequestID stores the request correlation ID in context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// RequestID returns the request correlation ID, or "" when absent.
func RequestID(ctx context.Context) string {
	if v, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return v
	}
	return ""
}

// WithTime pins the request time, letting tests control clocks.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}

// Now returns the pinned request time, falling back to the wall clock.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}
