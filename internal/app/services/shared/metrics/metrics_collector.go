package metrics

import (
	"medimarket-service/internal/app/models"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "medimarket"

// Collector owns the service metrics. It satisfies the enrichment and
// submission observers so core packages never import prometheus.
type Collector struct {
	registry            *prometheus.Registry
	resolutionsTotal    *prometheus.CounterVec
	submissionsTotal    *prometheus.CounterVec
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		resolutionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "enrichment_resolutions_total",
				Help:      "Settled content resolutions by entity kind and outcome",
			},
			[]string{"kind", "status"},
		),
		submissionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "wizard_submissions_total",
				Help:      "Ledger submissions by wizard flow and outcome",
			},
			[]string{"flow", "outcome"},
		),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status_code"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.resolutionsTotal,
		c.submissionsTotal,
		c.httpRequestsTotal,
		c.httpRequestDuration,
	)
	return c
}

func (c *Collector) ObserveResolution(kind models.EntityKind, status models.ResolutionStatus) {
	c.resolutionsTotal.WithLabelValues(string(kind), string(status)).Inc()
}

func (c *Collector) ObserveSubmission(flow string, outcome string) {
	c.submissionsTotal.WithLabelValues(flow, outcome).Inc()
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Middleware records request counts and latency labelled by the chi route
// pattern, which keeps path parameters out of the label set.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		c.httpRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		c.httpRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
