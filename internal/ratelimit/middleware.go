package ratelimit

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"namevault/pkg/requestcontext"
)

// Middleware limits requests per authenticated account. Fail-open: if the
// store errors, the request proceeds and the error is logged, because the
// limiter protects throughput, not correctness.
func Middleware(store Store, limit int, window time.Duration, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			account := requestcontext.Account(ctx)
			if account.IsZero() {
				// RequireAuth runs first; an anonymous request here will be
				// rejected downstream anyway.
				next.ServeHTTP(w, r)
				return
			}

			result, err := store.Allow(ctx, account.String(), limit, window)
			if err != nil {
				logger.ErrorContext(ctx, "rate limit check failed",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
			if !result.Allowed {
				w.Header().Set("Retry-After", strconv.Itoa(int(time.Until(result.ResetAt).Seconds())+1))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"rate_limited","message":"too many claim attempts"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
