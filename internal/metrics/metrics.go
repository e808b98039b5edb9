// Package metrics exposes Prometheus collectors for the quiz engine and
// the HTTP layer. All methods are safe to call on a nil *Metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	sessionsStarted  *prometheus.CounterVec
	sessionsFinished *prometheus.CounterVec
	answers          *prometheus.CounterVec
	feedback         *prometheus.CounterVec
	requests         *prometheus.HistogramVec
}

// New registers the collectors on a fresh registry so tests can build as
// many instances as they like.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		sessionsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "naijaprep",
			Name:      "quiz_sessions_started_total",
			Help:      "Quiz batches started, by selection mode.",
		}, []string{"mode"}),
		sessionsFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "naijaprep",
			Name:      "quiz_sessions_finished_total",
			Help:      "Quiz batches finished, by reason.",
		}, []string{"reason"}),
		answers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "naijaprep",
			Name:      "quiz_answers_total",
			Help:      "Answers recorded in the response ledger.",
		}, []string{"correct"}),
		feedback: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "naijaprep",
			Name:      "feedback_requests_total",
			Help:      "AI feedback requests, by outcome.",
		}, []string{"outcome"}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "naijaprep",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "status"}),
	}

	m.registry.MustRegister(m.sessionsStarted, m.sessionsFinished, m.answers, m.feedback, m.requests)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) SessionStarted(mode string) {
	if m == nil {
		return
	}
	m.sessionsStarted.WithLabelValues(mode).Inc()
}

// SessionFinished records why a batch ended: "completed", "timed_out" or
// "abandoned".
func (m *Metrics) SessionFinished(reason string) {
	if m == nil {
		return
	}
	m.sessionsFinished.WithLabelValues(reason).Inc()
}

func (m *Metrics) AnswerRecorded(correct bool) {
	if m == nil {
		return
	}
	m.answers.WithLabelValues(strconv.FormatBool(correct)).Inc()
}

func (m *Metrics) FeedbackServed(outcome string) {
	if m == nil {
		return
	}
	m.feedback.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveRequest(method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
