package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "campusradius",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "campusradius",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path"})

	httpResponseSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "campusradius",
		Subsystem: "http",
		Name:      "response_size_bytes",
		Help:      "HTTP response size in bytes",
		Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
	}, []string{"method", "path"})

	// Eligibility metrics
	ChecksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "campusradius",
		Subsystem: "eligibility",
		Name:      "checks_total",
		Help:      "Total eligibility checks by campus and outcome",
	}, []string{"campus", "outcome"})

	CheckDistance = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "campusradius",
		Subsystem: "eligibility",
		Name:      "distance_km",
		Help:      "Distance between campus and postcode for evaluated checks",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 150, 200, 250, 500, 1000, 5000},
	}, []string{"campus"})

	// Postcode lookup metrics
	LookupDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "campusradius",
		Subsystem: "postcode",
		Name:      "lookup_duration_seconds",
		Help:      "Duration of upstream postcode lookups",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"resolver"})

	LookupErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "campusradius",
		Subsystem: "postcode",
		Name:      "lookup_errors_total",
		Help:      "Total postcode lookup failures by kind",
	}, []string{"resolver", "kind"})

	ActiveWebSockets = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "campusradius",
		Subsystem: "ws",
		Name:      "active_connections",
		Help:      "Current number of active WebSocket map sessions",
	})

	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "campusradius",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Total cache hits",
	}, []string{"operation"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "campusradius",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Total cache misses",
	}, []string{"operation"})

	// Database pool metrics
	DBPoolConnsOpen = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "campusradius",
		Subsystem: "db",
		Name:      "pool_conns_open",
		Help:      "Total connections open in the database pool",
	})

	DBPoolConnsAcquired = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "campusradius",
		Subsystem: "db",
		Name:      "pool_conns_acquired",
		Help:      "Connections currently acquired from the database pool",
	})

	DBPoolConnsIdle = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "campusradius",
		Subsystem: "db",
		Name:      "pool_conns_idle",
		Help:      "Idle connections in the database pool",
	})
)

// Outcome labels a check for ChecksTotal.
func Outcome(eligible bool) string {
	if eligible {
		return "eligible"
	}
	return "not_eligible"
}

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())
		// route pattern keeps label cardinality bounded (/v1/campuses/:id)
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(duration)
		httpResponseSize.WithLabelValues(method, path).Observe(float64(len(c.Response().Body())))

		return err
	}
}

// Handler returns a Fiber handler serving Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := promhttp.Handler()
	return func(c *fiber.Ctx) error {
		fasthttpadaptor.NewFastHTTPHandler(handler)(c.Context())
		return nil
	}
}

// UpdateDBPoolMetrics updates database pool gauges from pgxpool stats.
func UpdateDBPoolMetrics(stat interface{}) {
	// matches *pgxpool.Stat without importing pgx here
	type poolStat interface {
		AcquiredConns() int32
		IdleConns() int32
		TotalConns() int32
	}

	if s, ok := stat.(poolStat); ok {
		DBPoolConnsAcquired.Set(float64(s.AcquiredConns()))
		DBPoolConnsIdle.Set(float64(s.IdleConns()))
		DBPoolConnsOpen.Set(float64(s.TotalConns()))
	}
}
