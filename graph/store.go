// Package graph implements the Trust Graph Store: a directed, weighted
// graph of per-agent trust assessments with a weighted-average update
// algebra, time decay, and TTL-based expiry.
//
// Internally the store is an arena-plus-index (a slice of edges plus a
// map keyed by (from, to) to the edge's slice position) rather than a
// pointer-linked graph, per the "Aggregates vs. pointer graphs" design
// note: it matches the workload (bulk scan for decay/cycle-detection,
// occasional random access for point reads) and maps directly onto the
// snapshot file format.
package graph

import (
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/trustgraph/trustcore/telemetry"
)

type edgeKey struct {
	from string
	to   string
}

// Store owns every Agent and TrustEdge in the graph. All mutating and
// reading operations execute under a single lock held for the whole
// operation, a coarse reentrant-lock model upgraded to a RWMutex so
// concurrent readers don't serialize on each other, per spec.md §5's
// explicit allowance.
type Store struct {
	mu sync.RWMutex

	agents map[string]*Agent
	edges  []TrustEdge
	index  map[edgeKey]int

	decayRate       float64
	defaultTTLHours float64
	logger          *slog.Logger
	now             func() time.Time
}

// Option configures a Store at construction time.
type Option func(*Store)

// WithDecayRate overrides DefaultDecayRate.
func WithDecayRate(rate float64) Option {
	return func(s *Store) { s.decayRate = rate }
}

// WithDefaultTTLHours overrides DefaultTTLHours for edges that don't
// specify their own.
func WithDefaultTTLHours(hours float64) Option {
	return func(s *Store) { s.defaultTTLHours = hours }
}

// WithLogger installs a structured logger; nil falls back to
// slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// withClock overrides the store's time source. Unexported: it exists so
// this package's own tests can exercise expiry and decay deterministically
// without time.Sleep.
func withClock(clock func() time.Time) Option {
	return func(s *Store) { s.now = clock }
}

// NewStore creates an empty Trust Graph Store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		agents:          make(map[string]*Agent),
		edges:           make([]TrustEdge, 0),
		index:           make(map[edgeKey]int),
		decayRate:       DefaultDecayRate,
		defaultTTLHours: DefaultTTLHours,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return slog.Default()
}

// AddAgent registers a new agent with optional metadata. Returns false
// without modifying state if the agent already exists.
func (s *Store) AddAgent(id string, metadata map[string]any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.agents[id]; exists {
		return false
	}
	now := s.now()
	s.agents[id] = &Agent{
		AgentID:   id,
		CreatedAt: now,
		UpdatedAt: now,
		Metadata:  cloneMetadata(metadata),
	}
	telemetry.TrustAgentsGauge.Set(float64(len(s.agents)))
	return true
}

// ensureAgent returns the agent with the given id, creating it with
// defaults if absent. Caller must hold s.mu for writing.
func (s *Store) ensureAgent(id string) *Agent {
	if a, ok := s.agents[id]; ok {
		return a
	}
	now := s.now()
	a := &Agent{AgentID: id, CreatedAt: now, UpdatedAt: now}
	s.agents[id] = a
	telemetry.TrustAgentsGauge.Set(float64(len(s.agents)))
	return a
}

// RemoveAgent deletes an agent and every edge incident to it (in either
// direction). Returns false if the agent was absent.
func (s *Store) RemoveAgent(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.agents[id]; !exists {
		return false
	}
	delete(s.agents, id)

	kept := s.edges[:0:0]
	for _, e := range s.edges {
		if e.FromAgent == id || e.ToAgent == id {
			continue
		}
		kept = append(kept, e)
	}
	s.edges = kept
	s.rebuildIndex()

	telemetry.TrustAgentsGauge.Set(float64(len(s.agents)))
	telemetry.TrustEdgesGauge.Set(float64(len(s.edges)))
	return true
}

func (s *Store) rebuildIndex() {
	s.index = make(map[edgeKey]int, len(s.edges))
	for i, e := range s.edges {
		s.index[edgeKey{e.FromAgent, e.ToAgent}] = i
	}
}

// UpdateTrust records a new trust observation from -> to, merging it
// into any existing edge via the weighted-average algebra of spec.md
// §4.1. Out-of-range score/confidence are clamped silently; self-loops
// and non-finite inputs are rejected without error, matching §3.2
// invariant 5 ("never manufactured by the Store").
func (s *Store) UpdateTrust(from, to string, score, confidence float64, metadata map[string]any) bool {
	if from == to {
		return false
	}
	if math.IsNaN(score) || math.IsInf(score, 0) || math.IsNaN(confidence) || math.IsInf(confidence, 0) {
		s.log().Warn("rejected non-finite trust update", "from", from, "to", to)
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureAgent(from)
	toAgent := s.ensureAgent(to)

	score = clamp(score, -1.0, 1.0)
	confidence = clamp(confidence, 0.0, 1.0)
	now := s.now()

	key := edgeKey{from, to}
	idx, exists := s.index[key]
	if !exists {
		e := TrustEdge{
			FromAgent:        from,
			ToAgent:          to,
			TrustScore:       score,
			Confidence:       confidence,
			InteractionCount: 1,
			CreatedAt:        now,
			UpdatedAt:        now,
			TTLHours:         s.defaultTTLHours,
			Metadata:         cloneMetadata(metadata),
		}
		s.index[key] = len(s.edges)
		s.edges = append(s.edges, e)
		telemetry.TrustEdgesGauge.Set(float64(len(s.edges)))
	} else {
		e := &s.edges[idx]
		n := float64(e.InteractionCount)
		w := 1.0 / (n + 1.0)
		e.TrustScore = clamp(e.TrustScore*(1-w)+score*w, -1.0, 1.0)
		e.Confidence = clamp(e.Confidence*(1-w)+confidence*w, 0.0, 1.0)
		e.InteractionCount++
		e.UpdatedAt = now
		e.Metadata = mergeMetadata(e.Metadata, metadata)
	}

	bumpNodeCounters(toAgent, score, now)

	outcome := "neutral"
	switch {
	case score > 0:
		outcome = "success"
	case score < 0:
		outcome = "failure"
	}
	telemetry.TrustUpdatesTotal.WithLabelValues("normal", outcome).Inc()
	s.log().Debug("updated trust edge", "from", from, "to", to, "score", score, "confidence", confidence)
	return true
}

func bumpNodeCounters(a *Agent, score float64, now time.Time) {
	a.TotalInteractions++
	switch {
	case score > 0:
		a.SuccessfulInteractions++
	case score < 0:
		a.FailedInteractions++
	}
	a.UpdatedAt = now
}

// TrustUpdate is one item of a batch passed to UpdateTrustBatch.
type TrustUpdate struct {
	From       string
	To         string
	Score      float64
	Confidence float64
	Metadata   map[string]any
}

// UpdateTrustBatch applies a batch of updates under a single lock
// acquisition and returns the count actually applied. In high-performance
// mode the weighted-average merge and node counter bookkeeping are
// skipped in favor of direct assignment, trading fidelity for the
// throughput budgets of spec.md §5/§8; per-item failures (self-loops,
// non-finite values) are only logged outside high-performance mode.
func (s *Store) UpdateTrustBatch(updates []TrustUpdate, highPerf bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	applied := 0
	now := s.now()
	for _, u := range updates {
		if u.From == u.To {
			if !highPerf {
				s.log().Warn("skipped self-loop update in batch", "agent", u.From)
			}
			continue
		}
		if math.IsNaN(u.Score) || math.IsInf(u.Score, 0) || math.IsNaN(u.Confidence) || math.IsInf(u.Confidence, 0) {
			if !highPerf {
				s.log().Warn("skipped non-finite update in batch", "from", u.From, "to", u.To)
			}
			continue
		}

		s.ensureAgent(u.From)
		toAgent := s.ensureAgent(u.To)

		score := clamp(u.Score, -1.0, 1.0)
		confidence := clamp(u.Confidence, 0.0, 1.0)

		key := edgeKey{u.From, u.To}
		idx, exists := s.index[key]
		if !exists {
			e := TrustEdge{
				FromAgent:        u.From,
				ToAgent:          u.To,
				TrustScore:       score,
				Confidence:       confidence,
				InteractionCount: 1,
				CreatedAt:        now,
				UpdatedAt:        now,
				TTLHours:         s.defaultTTLHours,
				Metadata:         cloneMetadata(u.Metadata),
			}
			s.index[key] = len(s.edges)
			s.edges = append(s.edges, e)
		} else {
			e := &s.edges[idx]
			if highPerf {
				e.TrustScore = score
				e.Confidence = confidence
				e.InteractionCount++
			} else {
				n := float64(e.InteractionCount)
				w := 1.0 / (n + 1.0)
				e.TrustScore = clamp(e.TrustScore*(1-w)+score*w, -1.0, 1.0)
				e.Confidence = clamp(e.Confidence*(1-w)+confidence*w, 0.0, 1.0)
				e.InteractionCount++
			}
			e.UpdatedAt = now
			e.Metadata = mergeMetadata(e.Metadata, u.Metadata)
		}

		if !highPerf {
			bumpNodeCounters(toAgent, score, now)
		}
		applied++
	}

	telemetry.TrustEdgesGauge.Set(float64(len(s.edges)))
	mode := "normal"
	if highPerf {
		mode = "high_perf"
	}
	telemetry.TrustUpdatesTotal.WithLabelValues(mode, "batch").Add(float64(applied))
	s.log().Debug("applied trust update batch", "requested", len(updates), "applied", applied, "highPerf", highPerf)
	return applied
}

// GetTrustScore returns the current trust score from -> to, or false if
// the pair is unknown or the edge has expired.
func (s *Store) GetTrustScore(from, to string) (float64, bool) {
	e, ok := s.GetEdge(from, to)
	if !ok {
		return 0, false
	}
	return e.TrustScore, true
}

// GetEdge returns a copy of the edge from -> to, or false if absent or
// expired.
func (s *Store) GetEdge(from, to string) (TrustEdge, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.index[edgeKey{from, to}]
	if !ok {
		return TrustEdge{}, false
	}
	e := s.edges[idx]
	if e.expired(s.now()) {
		return TrustEdge{}, false
	}
	e.Metadata = cloneMetadata(e.Metadata)
	return e, true
}

// GetNeighbors returns the out-neighbors of id with non-expired edges.
// Returns an empty slice for an unknown or edge-less agent.
func (s *Store) GetNeighbors(id string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	out := make([]string, 0)
	for _, e := range s.edges {
		if e.FromAgent == id && !e.expired(now) {
			out = append(out, e.ToAgent)
		}
	}
	return out
}

// GetOutEdges returns non-expired copies of every edge leaving id.
func (s *Store) GetOutEdges(id string) []TrustEdge {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	out := make([]TrustEdge, 0)
	for _, e := range s.edges {
		if e.FromAgent == id && !e.expired(now) {
			c := e
			c.Metadata = cloneMetadata(e.Metadata)
			out = append(out, c)
		}
	}
	return out
}

// GetInEdges returns non-expired copies of every edge arriving at id.
func (s *Store) GetInEdges(id string) []TrustEdge {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	in := make([]TrustEdge, 0)
	for _, e := range s.edges {
		if e.ToAgent == id && !e.expired(now) {
			c := e
			c.Metadata = cloneMetadata(e.Metadata)
			in = append(in, c)
		}
	}
	return in
}

// GetAgent returns a copy of the agent record.
func (s *Store) GetAgent(id string) (Agent, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.agents[id]
	if !ok {
		return Agent{}, false
	}
	cp := *a
	cp.Metadata = cloneMetadata(a.Metadata)
	return cp, true
}

// AgentIDs returns every known agent id, in no particular order.
func (s *Store) AgentIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.agents))
	for id := range s.agents {
		ids = append(ids, id)
	}
	return ids
}

// AgentCount returns the number of known agents.
func (s *Store) AgentCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.agents)
}

// EdgeCount returns the number of stored edges, including expired ones
// not yet cleaned up.
func (s *Store) EdgeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.edges)
}

// AllEdges returns copies of every non-expired edge in the store.
func (s *Store) AllEdges() []TrustEdge {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	out := make([]TrustEdge, 0, len(s.edges))
	for _, e := range s.edges {
		if e.expired(now) {
			continue
		}
		c := e
		c.Metadata = cloneMetadata(e.Metadata)
		out = append(out, c)
	}
	return out
}

// SetEdgeVerified flips the reserved "verified" metadata key on an
// edge, a promote/demote provenance transition (see SPEC_FULL.md §8).
// Returns false if the edge doesn't exist.
func (s *Store) SetEdgeVerified(from, to string, verified bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.index[edgeKey{from, to}]
	if !ok {
		return false
	}
	e := &s.edges[idx]
	if e.Metadata == nil {
		e.Metadata = make(map[string]any, 1)
	}
	e.Metadata[verifiedMetadataKey] = verified
	s.log().Debug("set edge verification", "from", from, "to", to, "verified", verified)
	return true
}

// GetEdges returns non-expired copies of every edge, optionally
// restricted to verified ones.
func (s *Store) GetEdges(onlyVerified bool) []TrustEdge {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	out := make([]TrustEdge, 0, len(s.edges))
	for _, e := range s.edges {
		if e.expired(now) {
			continue
		}
		if onlyVerified && !e.Verified() {
			continue
		}
		c := e
		c.Metadata = cloneMetadata(e.Metadata)
		out = append(out, c)
	}
	return out
}

// setEdgeTimestamps overwrites an edge's CreatedAt/UpdatedAt, used by
// this package's tests to simulate aged edges without sleeping.
func (s *Store) setEdgeTimestamps(from, to string, created, updated time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.index[edgeKey{from, to}]
	if !ok {
		return false
	}
	s.edges[idx].CreatedAt = created
	s.edges[idx].UpdatedAt = updated
	return true
}
