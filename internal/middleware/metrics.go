package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/plannerhq/planner-api/internal/metrics"
)

// NewMetricsHandler returns a middleware that observes request latency into
// the Prometheus histogram, labelled by method, chi route pattern, and
// status. The route pattern ("/trips/{tripID}/invites") is used instead of
// the raw path to keep label cardinality bounded.
func NewMetricsHandler() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}
			metrics.RequestDuration.WithLabelValues(
				r.Method, route, strconv.Itoa(ww.Status()),
			).Observe(time.Since(start).Seconds())
		})
	}
}
