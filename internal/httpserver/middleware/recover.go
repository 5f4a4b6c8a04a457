package middleware

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/davidbz/chargeflow/internal/observability"
)

const internalErrorBody = `{"error":"internal server error"}` + "\n"

// Recover turns a panicking handler into a 500 response and logs the panic
// with the request's trace fields. http.ErrAbortHandler is re-raised so the
// server can abort the connection as usual.
func Recover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				observability.FromContext(r.Context()).Error("panic recovered",
					observability.String("method", r.Method),
					observability.String("path", r.URL.Path),
					observability.Any("panic", rec),
					zap.Stack("stacktrace"))

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(internalErrorBody))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
