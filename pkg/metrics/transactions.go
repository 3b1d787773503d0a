package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// TransactionMetrics records outcomes of record-store transactions per document.
type TransactionMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewTransactionMetrics registers the transaction metrics on the provided registerer.
func NewTransactionMetrics(reg prometheus.Registerer) *TransactionMetrics {
	if reg == nil {
		return &TransactionMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "document_txn_duration_seconds",
		Help:    "Duration of record-store transactions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"document"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "document_txn_success",
		Help: "Committed record-store transactions.",
	}, []string{"document"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "document_txn_failure",
		Help: "Rolled-back record-store transactions.",
	}, []string{"document"})
	reg.MustRegister(duration, success, failure)
	return &TransactionMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// ObserveDuration records the duration of a transaction on the named document.
func (t *TransactionMetrics) ObserveDuration(document string, duration time.Duration) {
	if t == nil || t.duration == nil {
		return
	}
	t.duration.WithLabelValues(normalizeLabel(document)).Observe(duration.Seconds())
}

// IncSuccess increments the committed-transaction counter for the named document.
func (t *TransactionMetrics) IncSuccess(document string) {
	if t == nil || t.success == nil {
		return
	}
	t.success.WithLabelValues(normalizeLabel(document)).Inc()
}

// IncFailure increments the rolled-back-transaction counter for the named document.
func (t *TransactionMetrics) IncFailure(document string) {
	if t == nil || t.failure == nil {
		return
	}
	t.failure.WithLabelValues(normalizeLabel(document)).Inc()
}

func normalizeLabel(document string) string {
	if document == "" {
		return "unknown"
	}
	return document
}
