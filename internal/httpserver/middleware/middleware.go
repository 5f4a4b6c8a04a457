package middleware

import (
	"net/http"

	"github.com/davidbz/chargeflow/internal/config"
	"github.com/davidbz/chargeflow/internal/observability"
)

// Middleware decorates an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain composes middlewares so that the first one listed sees the request
// first.
func Chain(middlewares ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			final = middlewares[i](final)
		}
		return final
	}
}

// BuildMiddlewareChain wires the server's request pipeline:
// CORS, Trace, Metrics, Recover, then the router.
//
// Metrics reads the matched route from the request after the router ran, so
// nothing between it and the router may replace *http.Request. Recover sits
// inside Metrics so that recovered panics are counted as 500s.
func BuildMiddlewareChain(corsConfig *config.CORSConfig, metrics *observability.Metrics) Middleware {
	return Chain(
		CORS(corsConfig),
		Trace(),
		Metrics(metrics),
		Recover(),
	)
}
