package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	apperrors "stockroom/internal/errors"
)

const (
	ResultSuccess  = "success"
	ResultRejected = "rejected"
	ResultConflict = "conflict"
	ResultError    = "error"
)

// ComponentMetrics records component operations and checkout latency.
type ComponentMetrics struct {
	operations      *prometheus.CounterVec
	checkoutLatency prometheus.Histogram
	checkoutRetries prometheus.Counter
}

// NewComponentMetrics registers the metrics on reg. A nil registerer yields a no-op recorder.
func NewComponentMetrics(reg prometheus.Registerer) *ComponentMetrics {
	if reg == nil {
		return &ComponentMetrics{}
	}
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "component_operations_total",
		Help: "Component operations by operation and result.",
	}, []string{"operation", "result"})
	checkoutLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "component_checkout_duration_seconds",
		Help:    "Duration of component checkouts including lock retries.",
		Buckets: prometheus.DefBuckets,
	})
	checkoutRetries := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "component_checkout_retries_total",
		Help: "Checkout attempts retried after a deadlock or lock wait timeout.",
	})
	reg.MustRegister(operations, checkoutLatency, checkoutRetries)
	return &ComponentMetrics{
		operations:      operations,
		checkoutLatency: checkoutLatency,
		checkoutRetries: checkoutRetries,
	}
}

func (m *ComponentMetrics) IncOperation(operation, result string) {
	if m == nil || m.operations == nil {
		return
	}
	m.operations.WithLabelValues(operation, result).Inc()
}

func (m *ComponentMetrics) ObserveCheckout(d time.Duration) {
	if m == nil || m.checkoutLatency == nil {
		return
	}
	m.checkoutLatency.Observe(d.Seconds())
}

func (m *ComponentMetrics) IncCheckoutRetry() {
	if m == nil || m.checkoutRetries == nil {
		return
	}
	m.checkoutRetries.Inc()
}

// ResultFor classifies an operation outcome for the result label.
func ResultFor(err error) string {
	if err == nil {
		return ResultSuccess
	}
	if _, ok := apperrors.IsConflictError(err); ok {
		return ResultConflict
	}
	if _, ok := apperrors.IsDeadlockError(err); ok {
		return ResultConflict
	}
	if _, ok := apperrors.IsValidationError(err); ok {
		return ResultRejected
	}
	if _, ok := apperrors.IsForbiddenError(err); ok {
		return ResultRejected
	}
	if _, ok := apperrors.IsNotFoundError(err); ok {
		return ResultRejected
	}
	return ResultError
}
