package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Route labels for delegate invocations.
const (
	RouteOverride = "override"
	RouteForward  = "forward"
	RouteNone     = "none"
)

// OperationUnknown replaces caller-supplied names that are not part of the
// capability, keeping the operation label bounded.
const OperationUnknown = "unknown"

// Outcome labels shared by the recorders.
const (
	OutcomeOK          = "ok"
	OutcomeError       = "error"
	OutcomeRejected    = "rejected"
	OutcomeUnsupported = "unsupported"
	OutcomeListener    = "listener_failure"
)

var (
	registerOnce sync.Once

	delegateInvocations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "capkit",
			Subsystem: "delegate",
			Name:      "invocations_total",
			Help:      "Delegate operation invocations by dispatch route.",
		},
		[]string{"capability", "operation", "route", "outcome"},
	)
	busNotifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "capkit",
			Subsystem: "changebus",
			Name:      "notifications_total",
			Help:      "Change bus broadcasts.",
		},
		[]string{"property"},
	)
	busListenerFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "capkit",
			Subsystem: "changebus",
			Name:      "listener_failures_total",
			Help:      "Listener failures isolated during a broadcast.",
		},
		[]string{"property", "listener"},
	)
	propertyWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "capkit",
			Subsystem: "property",
			Name:      "writes_total",
			Help:      "Property cell writes by interceptor kind.",
		},
		[]string{"kind", "outcome"},
	)
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "capkit",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"node", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "capkit",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node", "method", "path", "status"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			delegateInvocations,
			busNotifications,
			busListenerFailures,
			propertyWrites,
			httpRequests,
			httpDuration,
		)
	})
}

func RecordDelegateInvocation(capability, operation, route string, err error) {
	RegisterMetrics()
	delegateInvocations.WithLabelValues(capability, operation, route, outcomeOf(err)).Inc()
}

func RecordNotification(property string) {
	RegisterMetrics()
	busNotifications.WithLabelValues(property).Inc()
}

func RecordListenerFailure(property, listener string) {
	RegisterMetrics()
	busListenerFailures.WithLabelValues(property, listener).Inc()
}

func RecordPropertyWrite(kind, outcome string) {
	RegisterMetrics()
	propertyWrites.WithLabelValues(kind, outcome).Inc()
}

func RecordHTTPRequest(node, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(node, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(node, method, path, statusLabel).Observe(duration.Seconds())
}

func outcomeOf(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeOK
}
