package runtime

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics are host-side statistics about a run, deliberately outside
// pkg/mis: the node core's only observable surface is mis.Outcome, never
// a metrics client. A Supervisor reports into these on every terminal
// node so a /metrics endpoint can be mounted by a demo host.
var (
	Registry = prometheus.NewRegistry()

	NodesTerminalTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "distributed_mis",
			Name:      "nodes_terminal_total",
			Help:      "Total number of nodes that reached a terminal state, by state.",
		},
		[]string{"state"},
	)

	RoundsOrPhasesUsed = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "distributed_mis",
			Name:      "rounds_or_phases_used",
			Help:      "Rounds or phases elapsed before a node reached a terminal state.",
			Buckets:   prometheus.LinearBuckets(0, 2, 20),
		},
		[]string{"algorithm"},
	)

	NodesReportedInFlight = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "distributed_mis",
			Name:      "nodes_reported",
			Help:      "Number of nodes that have reported terminal in the current run.",
		},
		[]string{"run"},
	)
)

func init() {
	Registry.MustRegister(NodesTerminalTotal, RoundsOrPhasesUsed, NodesReportedInFlight)
}

// MetricsHandler exposes /metrics. Mount it with mux.Handle("/metrics", runtime.MetricsHandler()).
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
