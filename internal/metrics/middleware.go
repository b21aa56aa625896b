package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// Label value used when a request carries no tenant (health, metrics, rejected requests).
const noTenant = "none"

var (
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dimreg",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Registry HTTP request latency by route and tenant",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "route", "status", "tenant"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dimreg",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Registry HTTP requests by route, status and tenant",
		},
		[]string{"method", "route", "status", "tenant"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestDuration, httpRequestsTotal)
}

// TenantLabel extracts the tenant label of a request. Tenants come from
// configuration, so the label set stays bounded.
type TenantLabel func(r *http.Request) string

// Middleware records request latency and count. It must run after the
// middleware that puts the tenant into the request context.
func Middleware(tenantOf TenantLabel) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			tenant := noTenant
			if tenantOf != nil {
				if t := tenantOf(r); t != "" {
					tenant = t
				}
			}
			labels := []string{r.Method, routeOf(r), strconv.Itoa(status), tenant}

			httpRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
			httpRequestsTotal.WithLabelValues(labels...).Inc()
		})
	}
}

// routeOf returns the matched chi route pattern so raw URLs never become labels.
func routeOf(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return "unmatched"
	}
	return normalizePath(rctx.RoutePattern())
}

func normalizePath(pattern string) string {
	if pattern == "" {
		return "unmatched"
	}
	return pattern
}
