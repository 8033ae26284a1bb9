package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	id "namevault/pkg/domain"
	"namevault/pkg/requestcontext"
)

// TokenValidator validates a bearer token and extracts the caller account.
type TokenValidator interface {
	ValidateToken(tokenString string) (id.Account, error)
}

// RequireAuth rejects requests without a valid bearer token and stores the
// authenticated account in context.
func RequireAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			authHeader := r.Header.Get("Authorization")
			const bearerPrefix = "Bearer "
			token, ok := strings.CutPrefix(authHeader, bearerPrefix)
			if !ok {
				unauthorized(w)
				return
			}
			account, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				unauthorized(w)
				return
			}
			next.ServeHTTP(w, r.WithContext(requestcontext.WithAccount(ctx, account)))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"Invalid or expired token"}`))
}
