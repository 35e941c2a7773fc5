// Package metrics collects solver observations into a private Prometheus
// registry and writes them in the node-exporter textfile format.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Label names.
const (
	PartLabel    = "part"
	OutcomeLabel = "outcome"
	ResultLabel  = "result"
	Hit          = "hit"
	Miss         = "miss"
)

// Collector implements solver.Recorder.
type Collector struct {
	registry   *prometheus.Registry
	machines   *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	candidates *prometheus.GaugeVec
	cache      *prometheus.CounterVec

	mu      sync.Mutex
	maxSeen map[string]int
}

// New registers the joltage collectors on a fresh registry.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		machines: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "joltage_machines_total",
				Help: "Machines processed, by part and outcome",
			},
			[]string{PartLabel, OutcomeLabel},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "joltage_solve_duration_seconds",
				Help:    "Time spent solving one machine",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{PartLabel},
		),
		candidates: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "joltage_candidates_max",
				Help: "Largest candidate set seen during propagation",
			},
			[]string{PartLabel},
		),
		cache: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "joltage_cache_requests_total",
				Help: "Result cache lookups, by part and result",
			},
			[]string{PartLabel, ResultLabel},
		),
		maxSeen: make(map[string]int),
	}
	c.registry.MustRegister(c.machines, c.duration, c.candidates, c.cache)

	return c
}

// Registry exposes the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveSolve counts a machine and records its duration.
func (c *Collector) ObserveSolve(part, outcome string, elapsed time.Duration) {
	c.machines.WithLabelValues(part, outcome).Inc()
	c.duration.WithLabelValues(part).Observe(elapsed.Seconds())
}

// ObserveCandidates raises the candidate gauge when n is a new maximum.
func (c *Collector) ObserveCandidates(part string, n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n <= c.maxSeen[part] {
		return
	}
	c.maxSeen[part] = n
	c.candidates.WithLabelValues(part).Set(float64(n))
}

// ObserveCache counts a cache lookup.
func (c *Collector) ObserveCache(part string, hit bool) {
	result := Miss
	if hit {
		result = Hit
	}
	c.cache.WithLabelValues(part, result).Inc()
}

// WriteTextfile writes every metric to path atomically.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}
