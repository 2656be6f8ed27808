package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	InFlightGauge   prometheus.Gauge

	PatientsCreatedTotal prometheus.Counter
	AppointmentsTotal    *prometheus.CounterVec

	NotificationsSentTotal    prometheus.Counter
	NotificationFailuresTotal prometheus.Counter

	AdminViewCacheHits   prometheus.Counter
	AdminViewCacheMisses prometheus.Counter
}

func NewCollector(serviceName string) *Collector {
	return &Collector{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, path, and status code.",
		}, []string{"method", "path", "status"}),

		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency distribution.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"method", "path", "status"}),

		InFlightGauge: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),

		PatientsCreatedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "booking",
			Name:      "patients_created_total",
			Help:      "Total number of patient records registered.",
		}),

		AppointmentsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "booking",
			Name:      "appointments_total",
			Help:      "Total appointment writes by resulting status.",
		}, []string{"status"}),

		NotificationsSentTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "notify",
			Name:      "sms_sent_total",
			Help:      "Total SMS notices confirmed by the provider.",
		}),

		NotificationFailuresTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "notify",
			Name:      "sms_failures_total",
			Help:      "Total SMS notices that were not confirmed. Best-effort, never retried.",
		}),

		AdminViewCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "cache",
			Name:      "admin_view_hits_total",
			Help:      "Admin view reads served from cache.",
		}),

		AdminViewCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "cache",
			Name:      "admin_view_misses_total",
			Help:      "Admin view reads that fell through to the store.",
		}),
	}
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
