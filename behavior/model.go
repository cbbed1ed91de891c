package behavior

import (
	"log/slog"
	"sync"
	"time"
)

// Model owns every agent's personality traits and behavioral patterns.
// Like the Trust Graph Store it is guarded by a single RWMutex:
// updates take it exclusively, reads share it.
type Model struct {
	mu     sync.RWMutex
	agents map[string]*AgentBehavior
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Model at construction time.
type Option func(*Model)

// WithLogger installs a structured logger; nil falls back to
// slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) { m.logger = logger }
}

// withClock overrides the model's time source for deterministic tests.
func withClock(clock func() time.Time) Option {
	return func(m *Model) { m.now = clock }
}

// NewModel creates an empty Behavior Model.
func NewModel(opts ...Option) *Model {
	m := &Model{
		agents: make(map[string]*AgentBehavior),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Model) log() *slog.Logger {
	if m.logger != nil {
		return m.logger
	}
	return slog.Default()
}

// RegisterAgent seeds a new agent with the standard trait and pattern
// sets at neutral values. Returns false without modifying state if the
// agent is already registered.
func (m *Model) RegisterAgent(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.agents[id]; exists {
		return false
	}
	now := m.now()

	traits := make(map[string]*PersonalityTrait, len(StandardTraits))
	for _, name := range StandardTraits {
		traits[name] = &PersonalityTrait{Name: name, Value: 0, Confidence: 0, LastUpdated: now}
	}
	patterns := make(map[string]*BehavioralPattern, len(StandardPatterns))
	for _, name := range StandardPatterns {
		patterns[name] = &BehavioralPattern{
			Name: name, Frequency: 0, Strength: 0, Context: "general",
			Confidence: 0, FirstObserved: now, LastObserved: now,
		}
	}

	m.agents[id] = &AgentBehavior{
		AgentID:            id,
		PersonalityTraits:  traits,
		BehavioralPatterns: patterns,
		Specializations:    make(map[string]bool),
	}
	return true
}

// ensure returns the agent record, registering it with defaults if
// absent. Caller must hold m.mu for writing.
func (m *Model) ensure(id string) *AgentBehavior {
	if a, ok := m.agents[id]; ok {
		return a
	}
	now := m.now()

	traits := make(map[string]*PersonalityTrait, len(StandardTraits))
	for _, name := range StandardTraits {
		traits[name] = &PersonalityTrait{Name: name, Value: 0, Confidence: 0, LastUpdated: now}
	}
	patterns := make(map[string]*BehavioralPattern, len(StandardPatterns))
	for _, name := range StandardPatterns {
		patterns[name] = &BehavioralPattern{
			Name: name, Frequency: 0, Strength: 0, Context: "general",
			Confidence: 0, FirstObserved: now, LastObserved: now,
		}
	}

	a := &AgentBehavior{
		AgentID:            id,
		PersonalityTraits:  traits,
		BehavioralPatterns: patterns,
		Specializations:    make(map[string]bool),
	}
	m.agents[id] = a
	return a
}

// UpdateTrait folds a new observation into a named trait via weighted
// moving average, the same w=1/(n+1) shape as the Store's edge merge.
// Unlike the edge merge, the result is NOT clamped after blending, see
// SPEC_FULL.md §3's Open-Question resolution, preserved deliberately.
// Inputs are clamped at the boundary.
func (m *Model) UpdateTrait(agentID, trait string, value, confidence float64, metadata map[string]any) bool {
	value = clamp(value, -1, 1)
	confidence = clamp(confidence, 0, 1)

	m.mu.Lock()
	defer m.mu.Unlock()

	a := m.ensure(agentID)
	t, ok := a.PersonalityTraits[trait]
	if !ok {
		t = &PersonalityTrait{Name: trait}
		a.PersonalityTraits[trait] = t
	}

	n := float64(t.EvidenceCount)
	w := 1.0 / (n + 1.0)
	t.Value = t.Value*(1-w) + value*w
	t.Confidence = t.Confidence*(1-w) + confidence*w
	t.EvidenceCount++
	t.LastUpdated = m.now()
	if metadata != nil {
		if t.Metadata == nil {
			t.Metadata = make(map[string]any, len(metadata))
		}
		for k, v := range metadata {
			t.Metadata[k] = v
		}
	}
	return true
}

// UpdatePattern folds a new observation into a named behavioral
// pattern, same unclamped weighted-average rule as UpdateTrait.
func (m *Model) UpdatePattern(agentID, pattern string, frequency, strength, confidence float64, context string) bool {
	frequency = clamp(frequency, 0, 1)
	strength = clamp(strength, -1, 1)
	confidence = clamp(confidence, 0, 1)
	if context == "" {
		context = "general"
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	a := m.ensure(agentID)
	p, ok := a.BehavioralPatterns[pattern]
	if !ok {
		p = &BehavioralPattern{Name: pattern, Context: context, FirstObserved: m.now()}
		a.BehavioralPatterns[pattern] = p
	}

	n := float64(p.ObservationCount)
	w := 1.0 / (n + 1.0)
	p.Frequency = p.Frequency*(1-w) + frequency*w
	p.Strength = p.Strength*(1-w) + strength*w
	p.Confidence = p.Confidence*(1-w) + confidence*w
	p.ObservationCount++
	p.Context = context
	p.LastObserved = m.now()
	return true
}

// RecordInteraction updates an agent's interaction counters. A score
// of exactly 0 updates only the total, matching the Store's own
// policy for the == 0 case (spec.md §3.2 invariant 6).
func (m *Model) RecordInteraction(agentID string, score float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a := m.ensure(agentID)
	a.TotalInteractions++
	switch {
	case score > 0:
		a.SuccessfulInteractions++
	case score < 0:
		a.FailedInteractions++
	}
}

// AddSpecialization tags an agent as specialized in a given context,
// consulted by rule 6 of PredictBehavior.
func (m *Model) AddSpecialization(agentID, context string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a := m.ensure(agentID)
	a.Specializations[context] = true
}

// GetAgentBehavior returns a deep copy of an agent's record.
func (m *Model) GetAgentBehavior(agentID string) (AgentBehavior, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.agents[agentID]
	if !ok {
		return AgentBehavior{}, false
	}
	return cloneBehavior(a), true
}

func cloneBehavior(a *AgentBehavior) AgentBehavior {
	cp := AgentBehavior{
		AgentID:                a.AgentID,
		TotalInteractions:      a.TotalInteractions,
		SuccessfulInteractions: a.SuccessfulInteractions,
		FailedInteractions:     a.FailedInteractions,
		PersonalityTraits:      make(map[string]*PersonalityTrait, len(a.PersonalityTraits)),
		BehavioralPatterns:     make(map[string]*BehavioralPattern, len(a.BehavioralPatterns)),
		Specializations:        make(map[string]bool, len(a.Specializations)),
	}
	for k, v := range a.PersonalityTraits {
		tc := *v
		if v.Metadata != nil {
			tc.Metadata = make(map[string]any, len(v.Metadata))
			for mk, mv := range v.Metadata {
				tc.Metadata[mk] = mv
			}
		}
		cp.PersonalityTraits[k] = &tc
	}
	for k, v := range a.BehavioralPatterns {
		pc := *v
		cp.BehavioralPatterns[k] = &pc
	}
	for k, v := range a.Specializations {
		cp.Specializations[k] = v
	}
	return cp
}

// AgentIDs returns every registered agent id, in no particular order.
func (m *Model) AgentIDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.agents))
	for id := range m.agents {
		ids = append(ids, id)
	}
	return ids
}

// SuccessRate returns successful/total, or 0 if there have been no
// interactions yet.
func (m *Model) SuccessRate(agentID string) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.agents[agentID]
	if !ok || a.TotalInteractions == 0 {
		return 0
	}
	return float64(a.SuccessfulInteractions) / float64(a.TotalInteractions)
}

// ReliabilityScore averages success rate with the normalized
// "consistency" pattern strength when present, falling back to the
// bare success rate otherwise.
func (m *Model) ReliabilityScore(agentID string) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.agents[agentID]
	if !ok {
		return 0
	}
	rate := successRateLocked(a)
	if p, ok := a.BehavioralPatterns["consistency"]; ok && p.ObservationCount > 0 {
		return (rate + normalizeStrength(p.Strength)) / 2
	}
	return rate
}

// PatternScore returns the normalized strength of a named pattern
// ([-1,1] mapped to [0,1]), defaulting to neutral (0.5) if the agent
// has no observations of it yet. Used for collaboration_score and
// adaptability_score.
func (m *Model) PatternScore(agentID, pattern string) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.agents[agentID]
	if !ok {
		return 0.5
	}
	p, ok := a.BehavioralPatterns[pattern]
	if !ok || p.ObservationCount == 0 {
		return 0.5
	}
	return normalizeStrength(p.Strength)
}

func successRateLocked(a *AgentBehavior) float64 {
	if a.TotalInteractions == 0 {
		return 0
	}
	return float64(a.SuccessfulInteractions) / float64(a.TotalInteractions)
}

func normalizeStrength(strength float64) float64 {
	return (strength + 1) / 2
}
