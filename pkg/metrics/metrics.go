package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Webhook outcomes recorded in WebhookEventsTotal.
const (
	OutcomeRejectedSignature = "rejected_signature"
	OutcomeInvalidJSON       = "invalid_json"
	OutcomeTooLarge          = "too_large"
	OutcomeStoreFailed       = "store_failed"
	OutcomeDuplicate         = "duplicate"
	OutcomeProcessed         = "processed"
	OutcomeFailed            = "failed"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rampsync_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "endpoint", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rampsync_http_request_duration_seconds",
		Help:    "Request latency",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"method", "endpoint"})

	WebhookEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rampsync_webhook_events_total",
		Help: "Provider webhook deliveries by event category and outcome",
	}, []string{"category", "outcome"})

	WebhookProcessingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rampsync_webhook_processing_duration_seconds",
		Help:    "Time spent routing and handling a stored webhook event",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15},
	}, []string{"category"})

	WebhookBacklog = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rampsync_webhook_unprocessed_events",
		Help: "Stored webhook events still waiting to be processed",
	})

	ProvisioningFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rampsync_onboarding_provisioning_failures_total",
		Help: "Onboarding provisioning step failures",
	}, []string{"step"})
)
