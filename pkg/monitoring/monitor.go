package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	CanvasRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "canvas_api_requests_total",
			Help: "Upstream Canvas API requests by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	ItemFailureCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aggregation_item_failures_total",
			Help: "Per-item failures tolerated during grade aggregation",
		},
		[]string{"stage"},
	)

	RefreshDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "calendar_refresh_duration_seconds",
			Help:    "Duration of full calendar refreshes",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60},
		},
	)

	RecordsEmitted = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "calendar_records_current",
			Help: "Records in the current calendar snapshot",
		},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(CanvasRequestCounter)
	prometheus.MustRegister(ItemFailureCounter)
	prometheus.MustRegister(RefreshDuration)
	prometheus.MustRegister(RecordsEmitted)
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
