package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds all Prometheus metrics for the service. Every method is
// safe to call on a nil *Collector, which records nothing.
type Collector struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Query metrics
	Queries       *prometheus.CounterVec
	QueryDuration *prometheus.HistogramVec

	// Entry metrics
	EntryFetches   *prometheus.CounterVec
	CoalescedReads *prometheus.CounterVec
	ConceptMisses  *prometheus.CounterVec

	// Graph metrics
	GraphBuilds   *prometheus.CounterVec
	GraphDuration prometheus.Histogram
	GraphNodes    prometheus.Histogram
	GraphEdges    prometheus.Histogram

	// Store metrics
	StoreOperations *prometheus.CounterVec
	StoreDuration   *prometheus.HistogramVec
	BreakerState    *prometheus.GaugeVec

	// Cache metrics
	CacheRequests *prometheus.CounterVec
}

// NewCollector creates a collector with its own registry, so several
// collectors can coexist in one process (tests in particular).
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		Queries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "queries_total",
				Help:      "Queries dispatched through the query bus by type and status",
			},
			[]string{"query", "status"},
		),
		QueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "query_duration_seconds",
				Help:      "Query handling duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"query"},
		),
		EntryFetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "entry_fetches_total",
				Help:      "Entry fetches by dictionary and result (found, missing, error)",
			},
			[]string{"dictionary", "result"},
		),
		CoalescedReads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "entry_fetches_coalesced_total",
				Help:      "Entry fetches answered by an in-flight fetch for the same entry",
			},
			[]string{"dictionary"},
		),
		ConceptMisses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "concept_lookup_misses_total",
				Help:      "Concept ids that could not be resolved",
			},
			[]string{"dictionary"},
		),
		GraphBuilds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "graph_builds_total",
				Help:      "Relationship graph builds by status",
			},
			[]string{"status"},
		),
		GraphDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "graph_build_duration_seconds",
				Help:      "Relationship graph build duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),
		GraphNodes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "graph_nodes",
				Help:      "Number of nodes in built relationship graphs",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		GraphEdges: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "graph_edges",
				Help:      "Number of edges in built relationship graphs",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 14),
			},
		),
		StoreOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "store_operations_total",
				Help:      "Total number of entry store operations",
			},
			[]string{"operation", "status"},
		),
		StoreDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "store_operation_duration_seconds",
				Help:      "Entry store operation duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		BreakerState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "circuit_breaker_state",
				Help:      "Circuit breaker state (0 closed, 1 half-open, 2 open)",
			},
			[]string{"name"},
		),
		CacheRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_requests_total",
				Help:      "Cache lookups by tier and result (hit, miss, error)",
			},
			[]string{"tier", "result"},
		),
	}

	registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.Queries,
		c.QueryDuration,
		c.EntryFetches,
		c.CoalescedReads,
		c.ConceptMisses,
		c.GraphBuilds,
		c.GraphDuration,
		c.GraphNodes,
		c.GraphEdges,
		c.StoreOperations,
		c.StoreDuration,
		c.BreakerState,
		c.CacheRequests,
	)

	return c
}

// Registry returns the Prometheus registry for this collector
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// Handler serves the collector's metrics in the Prometheus text format
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// RecordHTTPRequest records one served request
func (c *Collector) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if c == nil {
		return
	}
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordQuery records one dispatched query
func (c *Collector) RecordQuery(query string, duration time.Duration, err error) {
	if c == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	c.Queries.WithLabelValues(query, status).Inc()
	c.QueryDuration.WithLabelValues(query).Observe(duration.Seconds())
}

// RecordEntryFetch records the outcome of fetching one entry
func (c *Collector) RecordEntryFetch(dictionary, result string, coalesced bool) {
	if c == nil {
		return
	}
	c.EntryFetches.WithLabelValues(dictionary, result).Inc()
	if coalesced {
		c.CoalescedReads.WithLabelValues(dictionary).Inc()
	}
}

// RecordConceptMiss records an unresolved concept id
func (c *Collector) RecordConceptMiss(dictionary string) {
	if c == nil {
		return
	}
	c.ConceptMisses.WithLabelValues(dictionary).Inc()
}

// RecordGraphBuild records one relationship graph build
func (c *Collector) RecordGraphBuild(duration time.Duration, nodes, edges int, err error) {
	if c == nil {
		return
	}
	if err != nil {
		c.GraphBuilds.WithLabelValues("error").Inc()
		return
	}
	c.GraphBuilds.WithLabelValues("success").Inc()
	c.GraphDuration.Observe(duration.Seconds())
	c.GraphNodes.Observe(float64(nodes))
	c.GraphEdges.Observe(float64(edges))
}

// RecordStoreOperation records one entry store call
func (c *Collector) RecordStoreOperation(operation string, duration time.Duration, err error) {
	if c == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	c.StoreOperations.WithLabelValues(operation, status).Inc()
	c.StoreDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetBreakerState records the state of a named circuit breaker
func (c *Collector) SetBreakerState(name string, state int) {
	if c == nil {
		return
	}
	c.BreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordCacheResult records a cache lookup
func (c *Collector) RecordCacheResult(tier, result string) {
	if c == nil {
		return
	}
	c.CacheRequests.WithLabelValues(tier, result).Inc()
}
