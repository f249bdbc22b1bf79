package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors for the client. Following the
// explicit dependency injection pattern, the struct is passed to components
// that record metrics; a nil *Metrics disables recording entirely.
type Metrics struct {
	// Provider API metrics
	apiRequestsTotal   *prometheus.CounterVec
	apiRequestDuration *prometheus.HistogramVec
	apiRetriesTotal    *prometheus.CounterVec
	rateLimitHits      *prometheus.CounterVec

	// Transaction metrics
	transactionsRejectedTotal *prometheus.CounterVec

	// Callback metrics
	callbackVerificationsTotal *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance and registers all collectors.
// If registry is nil, prometheus.DefaultRegisterer is used.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	factory := promauto.With(registry)

	return &Metrics{
		apiRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pawapay_api_requests_total",
				Help: "Total number of provider API requests by endpoint, method and status class",
			},
			[]string{"endpoint", "method", "status"},
		),
		apiRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pawapay_api_request_duration_seconds",
				Help:    "Duration of provider API requests in seconds, including retries",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
			},
			[]string{"endpoint", "method"},
		),
		apiRetriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pawapay_api_retries_total",
				Help: "Total number of retry attempts against the provider API",
			},
			[]string{"endpoint", "reason"},
		),
		rateLimitHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pawapay_api_rate_limit_hits_total",
				Help: "Total number of provider rate limit responses (HTTP 429)",
			},
			[]string{"endpoint"},
		),
		transactionsRejectedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pawapay_transactions_rejected_total",
				Help: "Total number of transactions the provider declined at submission",
			},
			[]string{"kind"},
		),
		callbackVerificationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pawapay_callback_verifications_total",
				Help: "Total number of callback signature verifications by result",
			},
			[]string{"result"},
		),
	}
}

// RecordAPIRequest records one logical provider API call with its duration.
func (m *Metrics) RecordAPIRequest(endpoint, method, status string, duration float64) {
	m.apiRequestsTotal.WithLabelValues(endpoint, method, status).Inc()
	m.apiRequestDuration.WithLabelValues(endpoint, method).Observe(duration)
}

// RecordRetry records a retry attempt and the reason for it.
func (m *Metrics) RecordRetry(endpoint, reason string) {
	m.apiRetriesTotal.WithLabelValues(endpoint, reason).Inc()
}

// RecordRateLimitHit records a 429 response from the provider.
func (m *Metrics) RecordRateLimitHit(endpoint string) {
	m.rateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordTransactionRejected records a business-level decline.
// kind is "deposit" or "payout".
func (m *Metrics) RecordTransactionRejected(kind string) {
	m.transactionsRejectedTotal.WithLabelValues(kind).Inc()
}

// RecordCallbackVerification records a signature verification attempt.
// result is "ok", "mismatch" or "no_secret".
func (m *Metrics) RecordCallbackVerification(result string) {
	m.callbackVerificationsTotal.WithLabelValues(result).Inc()
}

// StatusCodeClass groups an HTTP status code into a label value ("2xx",
// "4xx", ...) to keep cardinality bounded.
func StatusCodeClass(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500 && code < 600:
		return "5xx"
	default:
		return "unknown"
	}
}
