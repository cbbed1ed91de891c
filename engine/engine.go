package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/trustgraph/trustcore/behavior"
	"github.com/trustgraph/trustcore/graph"
	"github.com/trustgraph/trustcore/metrics"
	"github.com/trustgraph/trustcore/pathanalyzer"
)

// Engine owns one instance of each subsystem: Trust Graph Store,
// Behavior Model, Path Analyzer, Metrics Engine, wired together per
// spec.md §2's dependency order, plus the background decay/cleanup
// scheduler depicted in the architecture diagram.
type Engine struct {
	Store    *graph.Store
	Behavior *behavior.Model
	Analyzer *pathanalyzer.Analyzer
	Metrics  *metrics.Engine

	cfg    *Config
	logger *slog.Logger

	wg       sync.WaitGroup
	cancel   context.CancelFunc
	stopOnce sync.Once
}

// New builds an Engine from cfg, wiring every subsystem's options from
// the config's tunables.
func New(cfg *Config) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	logger := NewLogger(cfg.LogLevel)

	store := graph.NewStore(
		graph.WithDecayRate(cfg.DecayRate),
		graph.WithDefaultTTLHours(cfg.DefaultTTLHours),
		graph.WithLogger(logger),
	)
	behaviorModel := behavior.NewModel(behavior.WithLogger(logger))
	analyzer := pathanalyzer.NewAnalyzer(store,
		pathanalyzer.WithMaxPathLength(cfg.MaxPathLength),
		pathanalyzer.WithMaxPaths(cfg.MaxPaths),
		pathanalyzer.WithMinConfidence(cfg.MinConfidence),
		pathanalyzer.WithDecayFactor(cfg.DecayFactor),
		pathanalyzer.WithMinTrust(cfg.MinTrust),
		pathanalyzer.WithCacheTTL(cfg.CacheTTL),
		pathanalyzer.WithLogger(logger),
	)
	metricsEngine := metrics.NewEngine(store, analyzer,
		metrics.WithBehaviorModel(behaviorModel),
		metrics.WithCacheTTL(cfg.CacheTTL),
		metrics.WithLogger(logger),
	)

	return &Engine{
		Store:    store,
		Behavior: behaviorModel,
		Analyzer: analyzer,
		Metrics:  metricsEngine,
		cfg:      cfg,
		logger:   logger,
	}
}

// Logger returns the engine's structured logger.
func (e *Engine) Logger() *slog.Logger { return e.logger }

// Start launches the background decay and cleanup loops. Call Stop to
// shut them down gracefully.
func (e *Engine) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	e.cancel = cancel

	e.wg.Add(1)
	go e.runTicker(ctx, "decay", e.cfg.DecayInterval, func(runID string) {
		decayed := e.Store.ApplyDecay()
		e.logger.Info("maintenance run complete", "run_id", runID, "kind", "decay", "edges_decayed", decayed)
	})

	e.wg.Add(1)
	go e.runTicker(ctx, "cleanup", e.cfg.CleanupInterval, func(runID string) {
		removed := e.Store.CleanupExpiredEdges()
		e.logger.Info("maintenance run complete", "run_id", runID, "kind", "cleanup", "edges_removed", removed)
	})
}

// runTicker runs fn on every tick of a context-cancelable ticker until
// ctx is done, the same select-on-ticker-and-ctx.Done shape as the
// teacher's runBlockGeneration loop. Each run gets its own uuid
// correlation id for log grepping; the id never enters the wire format.
func (e *Engine) runTicker(ctx context.Context, name string, interval time.Duration, fn func(runID string)) {
	defer e.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	e.logger.Info("maintenance loop started", "kind", name, "interval", interval)
	for {
		select {
		case <-ctx.Done():
			e.logger.Info("maintenance loop stopped", "kind", name)
			return
		case <-ticker.C:
			fn(uuid.NewString())
		}
	}
}

// Stop cancels the background loops and waits for them to exit.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() {
		if e.cancel != nil {
			e.cancel()
		}
		e.wg.Wait()
	})
}

// SaveSnapshot persists the graph and behavior model to cfg.DataDir.
// Save failures are logged and returned; per spec.md §7 kind 4, the
// caller decides whether a save failure is fatal.
func (e *Engine) SaveSnapshot() error {
	if err := e.Store.SaveToFile(e.cfg.GraphSnapshotPath()); err != nil {
		return err
	}
	return e.Behavior.SaveToFile(e.cfg.BehaviorModelPath())
}

// LoadSnapshot restores the graph and behavior model from cfg.DataDir.
// A missing or unreadable graph snapshot is not fatal; the engine
// simply starts from an empty graph, per spec.md §7 kind 4's "leave
// empty on failed load" policy.
func (e *Engine) LoadSnapshot() {
	if err := e.Store.LoadFromFile(e.cfg.GraphSnapshotPath()); err != nil {
		e.logger.Warn("starting with an empty trust graph", "error", err)
	}
	if err := e.Behavior.LoadFromFile(e.cfg.BehaviorModelPath()); err != nil {
		e.logger.Warn("starting with an empty behavior model", "error", err)
	}
}
