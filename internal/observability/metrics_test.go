package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewCollector_CountsQueries(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}

	c.ObserveStateQuery("MINUTE")
	c.ObserveStateQuery("MINUTE")
	c.ObserveStateQuery("HOUR")

	if got := testutil.ToFloat64(c.StateQueries.WithLabelValues("MINUTE")); got != 2 {
		t.Errorf("MINUTE queries = %g, want 2", got)
	}
	if got := testutil.ToFloat64(c.StateQueries.WithLabelValues("HOUR")); got != 1 {
		t.Errorf("HOUR queries = %g, want 1", got)
	}

	c.AddSearchSteps(1441)
	if got := testutil.ToFloat64(c.SearchSteps); got != 1441 {
		t.Errorf("search steps = %g, want 1441", got)
	}

	c.AddSearchWindows("LOCMIN", 22)
	if got := testutil.ToFloat64(c.SearchWindows.WithLabelValues("LOCMIN")); got != 22 {
		t.Errorf("LOCMIN windows = %g, want 22", got)
	}
}

func TestNewCollector_ReusesExistingRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewCollector(reg); err != nil {
		t.Fatalf("first NewCollector: %v", err)
	}
	if _, err := NewCollector(reg); err != nil {
		t.Fatalf("second NewCollector should reuse collectors: %v", err)
	}
}

func TestCollector_NilReceiverIsSafe(t *testing.T) {
	var c *Collector
	c.ObserveStateQuery("MINUTE")
	c.AddSearchSteps(10)
	c.AddSearchWindows("=", 44)
	c.ObserveRefinement(27)
}

func TestCollector_HandlerServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}
	c.ObserveStateQuery("MINUTE")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	c.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("metrics endpoint returned %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "clock_store_state_queries_total") {
		t.Error("metrics output missing clock_store_state_queries_total")
	}
}
