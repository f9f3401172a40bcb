// Package metrics registers the small set of Prometheus counters and
// gauges the engine exposes, the way
// toffguy77-arbitr/internal/infra/metrics/metrics.go registers its own
// global collectors against a private registry and serves them over
// promhttp.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

var (
	NodesExpandedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "graphcoloring_nodes_expanded_total",
		Help: "Search-tree nodes passed to SearchNode.Expand, across every process.",
	})
	UpperBoundImprovementsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "graphcoloring_ub_improvements_total",
		Help: "Accepted (non-stale) IMPROVED messages handled by the coordinator.",
	})
	CurrentUpperBound = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "graphcoloring_current_upper_bound",
		Help: "The coordinator's live upper bound on the chromatic number.",
	})
	WorkersDoneTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "graphcoloring_workers_done_total",
		Help: "DONE messages received by the coordinator.",
	})
)

// Init registers every collector above plus the standard Go/process
// collectors against a fresh registry and returns it.
func Init(logger zerolog.Logger) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	toRegister := []prometheus.Collector{
		NodesExpandedTotal, UpperBoundImprovementsTotal, CurrentUpperBound, WorkersDoneTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	}
	for _, c := range toRegister {
		if err := reg.Register(c); err != nil {
			logger.Warn().Err(err).Msg("metrics: collector registration failed")
		}
	}
	logger.Info().Msg("prometheus metrics initialized")
	return reg
}

// Handler returns the HTTP handler serving reg in the Prometheus text
// exposition format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
