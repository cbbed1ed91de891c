// Package telemetry holds the Prometheus collectors and OpenTelemetry
// tracer shared by every Trust Graph Core package. It registers metrics
// on the default registry without serving them over HTTP; exporting
// them is the embedding application's concern, not this library's.
package telemetry

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Tracer is the shared tracer used to instrument Path Analyzer searches
// and Metrics Engine network computations. The embedding application is
// responsible for installing a TracerProvider via otel.SetTracerProvider;
// absent one, spans are no-ops.
var Tracer trace.Tracer = otel.Tracer("github.com/trustgraph/trustcore")

var (
	// TrustUpdatesTotal counts update_trust calls by merge mode and outcome.
	TrustUpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trustcore_trust_updates_total",
		Help: "Total number of trust edge updates processed.",
	}, []string{"mode", "outcome"})

	// TrustEdgesGauge tracks the live edge count of the store.
	TrustEdgesGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "trustcore_trust_edges",
		Help: "Current number of trust edges held by the store.",
	})

	// TrustAgentsGauge tracks the live agent (node) count of the store.
	TrustAgentsGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "trustcore_trust_agents",
		Help: "Current number of agents held by the store.",
	})

	// DecayRunsTotal counts apply_decay invocations.
	DecayRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trustcore_decay_runs_total",
		Help: "Total number of apply_decay invocations.",
	})

	// DecayedEdgesTotal counts edges decayed across all runs.
	DecayedEdgesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trustcore_decayed_edges_total",
		Help: "Total number of edges decayed across all apply_decay runs.",
	})

	// CleanupRemovedTotal counts edges removed by cleanup_expired_edges.
	CleanupRemovedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trustcore_cleanup_removed_edges_total",
		Help: "Total number of expired edges removed by cleanup runs.",
	})

	// PathSearchDuration measures Path Analyzer query latency.
	PathSearchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "trustcore_path_search_duration_seconds",
		Help:    "Duration of Path Analyzer best-first searches.",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14),
	})

	// NetworkMetricsDuration measures Metrics Engine network computation latency.
	NetworkMetricsDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "trustcore_network_metrics_duration_seconds",
		Help:    "Duration of network-wide metrics computation.",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14),
	})

	// CacheResultsTotal counts cache hits/misses by cache name.
	CacheResultsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trustcore_cache_results_total",
		Help: "Cache hit/miss counts by cache name.",
	}, []string{"cache", "result"})
)
