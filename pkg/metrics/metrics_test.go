package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollectorCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordOutcome(true)
	c.RecordOutcome(true)
	c.RecordOutcome(false)
	c.RecordDueQuery()
	c.RecordInitialized(7)
	c.RecordCacheInvalidationFailure()

	if got := testutil.ToFloat64(c.outcomes.WithLabelValues("correct")); got != 2 {
		t.Errorf("expected 2 correct outcomes, got %v", got)
	}
	if got := testutil.ToFloat64(c.outcomes.WithLabelValues("incorrect")); got != 1 {
		t.Errorf("expected 1 incorrect outcome, got %v", got)
	}
	if got := testutil.ToFloat64(c.dueQueries); got != 1 {
		t.Errorf("expected 1 due query, got %v", got)
	}
	if got := testutil.ToFloat64(c.initialized); got != 7 {
		t.Errorf("expected 7 initialized, got %v", got)
	}
	if got := testutil.ToFloat64(c.cacheInvalidation); got != 1 {
		t.Errorf("expected 1 cache failure, got %v", got)
	}
}

func TestCollectorRegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCollector(reg)

	defer func() {
		if recover() == nil {
			t.Fatal("expected duplicate registration to panic")
		}
	}()
	NewCollector(reg)
}
