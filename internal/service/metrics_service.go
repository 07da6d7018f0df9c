package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the API.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	ingestOutcomes  *prometheus.CounterVec
}

// NewMetricsService registers the core collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	ingestOutcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "batch_ingest_items_total",
		Help: "Batch ingest items partitioned by outcome",
	}, []string{"outcome"})

	registry.MustRegister(requestDuration, requestTotal, ingestOutcomes)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		ingestOutcomes:  ingestOutcomes,
	}
}

// ObserveHTTPRequest records one served request.
func (s *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	labels := []string{method, path, strconv.Itoa(status)}
	s.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
	s.requestTotal.WithLabelValues(labels...).Inc()
}

// ObserveIngest records the outcome partition of one batch call.
func (s *MetricsService) ObserveIngest(success, failed, skipped int) {
	s.ingestOutcomes.WithLabelValues("accepted").Add(float64(success))
	s.ingestOutcomes.WithLabelValues("rejected").Add(float64(failed))
	s.ingestOutcomes.WithLabelValues("skipped").Add(float64(skipped))
}

// Handler exposes the Prometheus exposition endpoint.
func (s *MetricsService) Handler() http.Handler {
	return s.handler
}
