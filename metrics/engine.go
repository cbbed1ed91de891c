package metrics

import (
	"log/slog"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/trustgraph/trustcore/behavior"
	"github.com/trustgraph/trustcore/graph"
	"github.com/trustgraph/trustcore/pathanalyzer"
)

// DefaultCacheTTL matches the Analyzer's 1 h cache lifetime (spec.md
// §3.3).
const DefaultCacheTTL = time.Hour

// Engine computes agent-level and network-level trust metrics. The
// Behavior Model is optional; when nil, behavioral overlays are simply
// omitted from agent metrics.
type Engine struct {
	store    *graph.Store
	analyzer *pathanalyzer.Analyzer
	behavior *behavior.Model

	cacheTTL time.Duration

	agentCache   *ristretto.Cache[string, AgentMetrics]
	networkCache *ristretto.Cache[string, NetworkMetrics]

	logger *slog.Logger
	now    func() time.Time
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithBehaviorModel attaches a Behavior Model for behavioral overlays
// on agent metrics.
func WithBehaviorModel(m *behavior.Model) Option {
	return func(e *Engine) { e.behavior = m }
}

// WithCacheTTL overrides DefaultCacheTTL.
func WithCacheTTL(d time.Duration) Option {
	return func(e *Engine) { e.cacheTTL = d }
}

// WithLogger installs a structured logger; nil falls back to
// slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// withClock overrides the engine's time source for deterministic tests.
func withClock(clock func() time.Time) Option {
	return func(e *Engine) { e.now = clock }
}

// NewEngine builds a Metrics Engine over store and analyzer.
func NewEngine(store *graph.Store, analyzer *pathanalyzer.Analyzer, opts ...Option) *Engine {
	e := &Engine{
		store:    store,
		analyzer: analyzer,
		cacheTTL: DefaultCacheTTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	agentCache, err := ristretto.NewCache(&ristretto.Config[string, AgentMetrics]{
		NumCounters:        10000,
		MaxCost:            2000,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err == nil {
		e.agentCache = agentCache
	}
	networkCache, err := ristretto.NewCache(&ristretto.Config[string, NetworkMetrics]{
		NumCounters:        100,
		MaxCost:            10,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err == nil {
		e.networkCache = networkCache
	}

	return e
}

func (e *Engine) log() *slog.Logger {
	if e.logger != nil {
		return e.logger
	}
	return slog.Default()
}

// ClearCache drops every cached agent and network metric result.
func (e *Engine) ClearCache() {
	if e.agentCache != nil {
		e.agentCache.Clear()
	}
	if e.networkCache != nil {
		e.networkCache.Clear()
	}
}
