package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the Prometheus metrics the harness emits: trajectory
// store traffic and event-search effort. All observation helpers tolerate a
// nil receiver so components can run unmetered.
type Collector struct {
	gatherer prometheus.Gatherer

	StateQueries     *prometheus.CounterVec
	SearchSteps      prometheus.Counter
	SearchWindows    *prometheus.CounterVec
	RefineIterations prometheus.Histogram
}

// NewCollector registers the harness metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	queries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "clock_store_state_queries_total",
		Help: "Total state-vector queries against the trajectory store, labeled by target body.",
	}, []string{"body"})
	queries, err := registerCounterVec(reg, queries, "clock_store_state_queries_total")
	if err != nil {
		return nil, err
	}

	steps, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "clock_search_steps_total",
		Help: "Total sampling steps taken by event searches.",
	}), "clock_search_steps_total")
	if err != nil {
		return nil, err
	}

	windows := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "clock_search_windows_total",
		Help: "Total event windows found, labeled by search relation.",
	}, []string{"relation"})
	windows, err = registerCounterVec(reg, windows, "clock_search_windows_total")
	if err != nil {
		return nil, err
	}

	refine, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "clock_search_refine_iterations",
		Help:    "Bisection iterations per refined event bracket.",
		Buckets: prometheus.LinearBuckets(0, 5, 12),
	}), "clock_search_refine_iterations")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:         gatherer,
		StateQueries:     queries,
		SearchSteps:      steps,
		SearchWindows:    windows,
		RefineIterations: refine,
	}, nil
}

// Handler exposes the collector's registry over HTTP.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

// ObserveStateQuery counts one store state query for the named body.
func (c *Collector) ObserveStateQuery(body string) {
	if c == nil {
		return
	}
	c.StateQueries.WithLabelValues(body).Inc()
}

// AddSearchSteps counts sampling steps taken by one search.
func (c *Collector) AddSearchSteps(n int) {
	if c == nil {
		return
	}
	c.SearchSteps.Add(float64(n))
}

// AddSearchWindows counts windows found by one search.
func (c *Collector) AddSearchWindows(relation string, n int) {
	if c == nil {
		return
	}
	c.SearchWindows.WithLabelValues(relation).Add(float64(n))
}

// ObserveRefinement records the iteration count of one bracket refinement.
func (c *Collector) ObserveRefinement(iters int) {
	if c == nil {
		return
	}
	c.RefineIterations.Observe(float64(iters))
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerCounter(reg prometheus.Registerer, c prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return c, nil
}

func registerHistogram(reg prometheus.Registerer, h prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return h, nil
}
