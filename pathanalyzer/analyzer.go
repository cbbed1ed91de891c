package pathanalyzer

import (
	"log/slog"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/trustgraph/trustcore/graph"
)

// Analyzer answers path and cluster queries against a read-only view
// of a *graph.Store.
type Analyzer struct {
	store *graph.Store

	maxPathLength int
	maxPaths      int
	minConfidence float64
	decayFactor   float64
	minTrust      float64
	cacheTTL      time.Duration

	pathCache    *ristretto.Cache[string, *SearchResult]
	clusterCache *ristretto.Cache[string, []Cluster]

	logger *slog.Logger
	now    func() time.Time
}

// Option configures an Analyzer at construction time.
type Option func(*Analyzer)

func WithMaxPathLength(n int) Option    { return func(a *Analyzer) { a.maxPathLength = n } }
func WithMaxPaths(n int) Option         { return func(a *Analyzer) { a.maxPaths = n } }
func WithMinConfidence(v float64) Option { return func(a *Analyzer) { a.minConfidence = v } }
func WithDecayFactor(v float64) Option  { return func(a *Analyzer) { a.decayFactor = v } }
func WithMinTrust(v float64) Option     { return func(a *Analyzer) { a.minTrust = v } }
func WithCacheTTL(d time.Duration) Option { return func(a *Analyzer) { a.cacheTTL = d } }
func WithLogger(logger *slog.Logger) Option { return func(a *Analyzer) { a.logger = logger } }

// withClock overrides the analyzer's time source for deterministic tests.
func withClock(clock func() time.Time) Option {
	return func(a *Analyzer) { a.now = clock }
}

// NewAnalyzer builds a Path Analyzer over store. Caches are bounded
// Ristretto instances sized for a few thousand entries, matching the
// TTL-and-bounded-count cache policy of spec.md §5's resource policy.
func NewAnalyzer(store *graph.Store, opts ...Option) *Analyzer {
	a := &Analyzer{
		store:         store,
		maxPathLength: DefaultMaxPathLength,
		maxPaths:      DefaultMaxPaths,
		minConfidence: DefaultMinConfidence,
		decayFactor:   DefaultDecayFactor,
		minTrust:      DefaultMinTrust,
		cacheTTL:      DefaultCacheTTLSeconds * time.Second,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	pathCache, err := ristretto.NewCache(&ristretto.Config[string, *SearchResult]{
		NumCounters:        10000,
		MaxCost:            2000,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err == nil {
		a.pathCache = pathCache
	}

	clusterCache, err := ristretto.NewCache(&ristretto.Config[string, []Cluster]{
		NumCounters:        1000,
		MaxCost:            200,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err == nil {
		a.clusterCache = clusterCache
	}

	return a
}

func (a *Analyzer) log() *slog.Logger {
	if a.logger != nil {
		return a.logger
	}
	return slog.Default()
}

// ClearCache drops every cached search and cluster result.
func (a *Analyzer) ClearCache() {
	if a.pathCache != nil {
		a.pathCache.Clear()
	}
	if a.clusterCache != nil {
		a.clusterCache.Clear()
	}
}
