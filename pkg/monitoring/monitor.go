package monitoring

import (
	"okr_backend/internal/progress"
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

	// KeyResultStatus 每次计算得出的节奏状态
	KeyResultStatus = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "okr_key_result_status_total",
			Help: "Pace status produced by key result evaluations",
		},
		[]string{"type", "status"},
	)

	PaceGap = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "okr_key_result_pace_gap",
			Help:    "Ideal minus actual progress in percentage points",
			Buckets: []float64{-50, -20, -10, 0, 10, 20, 50, 100},
		},
		[]string{"type"},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(KeyResultStatus)
	prometheus.MustRegister(PaceGap)
}

// RecordEvaluation 记录一次关键结果计算
func RecordEvaluation(t progress.KeyResultType, r progress.Result) {
	label := string(t)
	if !t.IsKnown() {
		label = "other"
	}
	KeyResultStatus.WithLabelValues(label, string(r.Status)).Inc()
	PaceGap.WithLabelValues(label).Observe(r.Gap())
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
