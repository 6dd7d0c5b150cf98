// Package middleware holds the HTTP middleware of the admin API.
package middleware

import (
	"log/slog"
	"net/http"
)

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Admin returns the admin API stack, outermost first: request id, access
// log, panic recovery. Recovery sits inside the access log so a recovered
// panic is logged as a 500.
func Admin(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return RequestID(Logger(logger)(Recovery(logger)(next)))
	}
}
