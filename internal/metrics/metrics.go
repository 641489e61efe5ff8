package metrics

import (
	"strconv"
	"time"

	"eshop_backend/internal/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Kết quả của gate cho mỗi request
const (
	GateExempt          = "exempt"
	GateAdmitted        = "admitted"
	GateUnauthenticated = "unauthenticated"
	GateForbidden       = "forbidden"
	GateError           = "error"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	gateDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eshop_auth_gate_decisions_total",
			Help: "Authorization gate decisions by outcome",
		},
		[]string{"outcome"},
	)

	uploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eshop_uploads_total",
			Help: "Uploaded image files by storage driver and result",
		},
		[]string{"driver", "result"},
	)

	logEntriesDropped = promauto.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "eshop_log_entries_dropped",
			Help: "Log entries dropped because the async hook buffer was full",
		},
		func() float64 { return float64(logger.DroppedEntries()) },
	)
)

// ObserveHTTP ghi nhận một request HTTP đã xử lý xong
func ObserveHTTP(method, path string, status int, elapsed time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// GateDecision ghi nhận kết quả của gate
func GateDecision(outcome string) {
	gateDecisionsTotal.WithLabelValues(outcome).Inc()
}

// Upload ghi nhận một lần lưu file (result: ok | rejected | failed)
func Upload(driver, result string) {
	uploadsTotal.WithLabelValues(driver, result).Inc()
}
