// Package metrics exposes Prometheus collectors for the platform bridge.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// RequestsSent counts outbound requests by message type.
	RequestsSent = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "arcaid",
		Subsystem: "bridge",
		Name:      "requests_total",
		Help:      "Outbound platform requests.",
	}, []string{"type"})

	// ResponsesReceived counts correlated responses by outcome.
	ResponsesReceived = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "arcaid",
		Subsystem: "bridge",
		Name:      "responses_total",
		Help:      "Correlated platform responses.",
	}, []string{"outcome"})

	// RequestTimeouts counts pending requests evicted by timeout.
	RequestTimeouts = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "arcaid",
		Subsystem: "bridge",
		Name:      "request_timeouts_total",
		Help:      "Requests that never received a matching response.",
	})

	// EventsDispatched counts unsolicited platform events by type.
	EventsDispatched = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "arcaid",
		Subsystem: "bridge",
		Name:      "events_total",
		Help:      "Unsolicited platform events dispatched to modules.",
	}, []string{"type"})

	// DroppedMessages counts inbound messages dropped at the boundary.
	DroppedMessages = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "arcaid",
		Subsystem: "bridge",
		Name:      "dropped_messages_total",
		Help:      "Inbound messages dropped before routing.",
	}, []string{"reason"})

	// PendingRequests tracks the size of the outstanding request table.
	PendingRequests = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "arcaid",
		Subsystem: "bridge",
		Name:      "pending_requests",
		Help:      "Requests awaiting a platform response.",
	})
)

func init() {
	prometheus.MustRegister(
		RequestsSent,
		ResponsesReceived,
		RequestTimeouts,
		EventsDispatched,
		DroppedMessages,
		PendingRequests,
	)
}
