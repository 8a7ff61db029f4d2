// Package metrics collects Prometheus counters for the review service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/vocab-tools/tg-vocab-review/pkg/review"
)

// Collector implements review.MetricsRecorder on Prometheus counters.
type Collector struct {
	outcomes          *prometheus.CounterVec
	dueQueries        prometheus.Counter
	initialized       prometheus.Counter
	cacheInvalidation prometheus.Counter
}

var _ review.MetricsRecorder = (*Collector)(nil)

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vocabreview_outcomes_total",
			Help: "Recorded recall outcomes by result.",
		}, []string{"result"}),
		dueQueries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vocabreview_due_queries_total",
			Help: "Due-word selection queries served.",
		}),
		initialized: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vocabreview_progress_initialized_total",
			Help: "Progress rows created by bulk initialization.",
		}),
		cacheInvalidation: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vocabreview_cache_invalidation_failures_total",
			Help: "Stats cache invalidations that failed and were swallowed.",
		}),
	}

	reg.MustRegister(
		c.outcomes,
		c.dueQueries,
		c.initialized,
		c.cacheInvalidation,
	)

	return c
}

func (c *Collector) RecordOutcome(correct bool) {
	result := "incorrect"
	if correct {
		result = "correct"
	}
	c.outcomes.WithLabelValues(result).Inc()
}

func (c *Collector) RecordDueQuery() {
	c.dueQueries.Inc()
}

func (c *Collector) RecordInitialized(count int64) {
	c.initialized.Add(float64(count))
}

func (c *Collector) RecordCacheInvalidationFailure() {
	c.cacheInvalidation.Inc()
}
