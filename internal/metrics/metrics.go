package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outdoor_chat_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "outdoor_chat_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// TurnsTotal cuenta turnos por resultado: ok, invalid_input, missing_bindings, store_error, model_error.
	TurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outdoor_chat_turns_total",
			Help: "Total chat turns handled",
		},
		[]string{"outcome"},
	)

	// EmptyReplies cuenta respuestas del modelo que no traian texto y se guardaron vacias.
	EmptyReplies = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "outdoor_chat_empty_replies_total",
			Help: "Model replies degraded to an empty assistant message",
		},
	)

	ModelLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "outdoor_chat_model_latency_seconds",
			Help:    "Language model invocation latency",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	StoreLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "outdoor_chat_store_latency_seconds",
			Help:    "Transcript store operation latency",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5},
		},
		[]string{"op"},
	)
)
