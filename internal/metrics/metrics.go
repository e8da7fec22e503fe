package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	answersTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "placements_answers_total",
		Help: "Answers returned by the chatbot pipeline, by source",
	}, []string{"source"})

	generationFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "placements_generation_failures_total",
		Help: "Completion failures converted to canned answers, by failure class",
	}, []string{"class"})

	statsFallbacks = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "placements_stats_fallback_total",
		Help: "Stats lookups that failed and were replaced by an empty context",
	})

	retrievalLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "placements_retrieval_latency_ms",
		Help:    "Latency of context retrieval calls in milliseconds",
		Buckets: []float64{5, 10, 25, 50, 100, 200, 400, 800, 1600, 3200},
	}, []string{"source"})
)

func ensureRegistered() {
	once.Do(func() {
		prometheus.MustRegister(answersTotal, generationFailures, statsFallbacks, retrievalLatency)
	})
}

func ObserveAnswer(source string) {
	ensureRegistered()
	answersTotal.WithLabelValues(source).Inc()
}

func ObserveGenerationFailure(class string) {
	ensureRegistered()
	generationFailures.WithLabelValues(class).Inc()
}

func ObserveStatsFallback() {
	ensureRegistered()
	statsFallbacks.Inc()
}

// ObserveRetrieval records how long a retrieval branch ("vector" or "stats") took.
func ObserveRetrieval(source string, start time.Time) {
	ensureRegistered()
	retrievalLatency.WithLabelValues(source).Observe(float64(time.Since(start).Milliseconds()))
}

// Register exposes the collectors before the first observation.
func Register() {
	ensureRegistered()
}
