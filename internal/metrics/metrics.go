// Package metrics exposes Prometheus collectors for the miner service.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	minerTasksTotal           *prometheus.CounterVec
	minerAcquireFallbackTotal prometheus.Counter
	minerLLMFailuresTotal     prometheus.Counter
	minerDatesUnparsedTotal   prometheus.Counter

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		minerTasksTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "miner_tasks_total",
				Help: "Total number of article tasks processed, labeled by outcome.",
			},
			[]string{"outcome"},
		)

		minerAcquireFallbackTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "miner_acquire_fallback_total",
				Help: "Times the static HTTP strategy was used after the headless strategy yielded nothing.",
			},
		)

		minerLLMFailuresTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "miner_llm_failures_total",
				Help: "LLM dispatch failures absorbed into the empty feature default.",
			},
		)

		minerDatesUnparsedTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "miner_dates_unparsed_total",
				Help: "Date strings that defeated every parser and were kept as-is.",
			},
		)
	})
}

// TaskProcessed records one finished task with its outcome label.
func TaskProcessed(outcome string) {
	if minerTasksTotal != nil {
		minerTasksTotal.WithLabelValues(outcome).Inc()
	}
}

// AcquireFallback records one use of the static fallback strategy.
func AcquireFallback() {
	if minerAcquireFallbackTotal != nil {
		minerAcquireFallbackTotal.Inc()
	}
}

// LLMFailure records one absorbed LLM dispatch failure.
func LLMFailure() {
	if minerLLMFailuresTotal != nil {
		minerLLMFailuresTotal.Inc()
	}
}

// DateUnparsed records one date preserved un-normalized.
func DateUnparsed() {
	if minerDatesUnparsedTotal != nil {
		minerDatesUnparsedTotal.Inc()
	}
}
