// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	IntentsDetected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nlu_intents_detected_total",
			Help: "Total number of intents detected by kind",
		},
		[]string{"intent"},
	)

	IntentDetectionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "nlu_intent_detection_duration_seconds",
			Help: "Duration of intent detection in seconds",
		},
		[]string{"intent"},
	)

	ResponsesParsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nlu_responses_parsed_total",
			Help: "Total number of oracle responses parsed by method and outcome",
		},
		[]string{"method", "outcome"},
	)

	ResponseParseDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "nlu_response_parse_duration_seconds",
			Help: "Duration of oracle response parsing in seconds",
		},
		[]string{"outcome"},
	)

	BooksParsed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nlu_books_parsed_total",
			Help: "Total number of book records extracted from oracle responses",
		},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nlu_cache_lookups_total",
			Help: "Parse-result cache lookups by outcome (hit, miss, error)",
		},
		[]string{"outcome"},
	)
)
