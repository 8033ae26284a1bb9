package testutil

import (
	"net/http"
	"time"

	id "namevault/pkg/domain"
	"namevault/pkg/requestcontext"
)

// WithAccount adds the caller account to the request context. This simulates
// what the auth middleware does for authenticated requests.
func WithAccount(req *http.Request, account id.Account) *http.Request {
	return req.WithContext(requestcontext.WithAccount(req.Context(), account))
}

// WithRequestID adds a correlation ID to the request context.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}

// WithTime pins the request time, letting tests control clocks.
func WithTime(req *http.Request, t time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), t))
}
