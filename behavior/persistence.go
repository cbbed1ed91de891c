package behavior

import (
	"encoding/json"
	"fmt"
	"os"
)

type modelSnapshot struct {
	Agents []agentSnapshot `json:"agents"`
}

type agentSnapshot struct {
	AgentID                string                        `json:"agent_id"`
	PersonalityTraits      map[string]*PersonalityTrait  `json:"personality_traits"`
	BehavioralPatterns     map[string]*BehavioralPattern `json:"behavioral_patterns"`
	TotalInteractions      int64                          `json:"total_interactions"`
	SuccessfulInteractions int64                          `json:"successful_interactions"`
	FailedInteractions     int64                          `json:"failed_interactions"`
	Specializations        []string                       `json:"specializations"`
}

// SaveToFile writes the model to path as behavior_model.json (spec.md
// §6.1's "parallel" format alongside the graph snapshot).
func (m *Model) SaveToFile(path string) error {
	m.mu.RLock()
	snap := modelSnapshot{Agents: make([]agentSnapshot, 0, len(m.agents))}
	for _, a := range m.agents {
		specs := make([]string, 0, len(a.Specializations))
		for s := range a.Specializations {
			specs = append(specs, s)
		}
		snap.Agents = append(snap.Agents, agentSnapshot{
			AgentID:                a.AgentID,
			PersonalityTraits:      a.PersonalityTraits,
			BehavioralPatterns:     a.BehavioralPatterns,
			TotalInteractions:      a.TotalInteractions,
			SuccessfulInteractions: a.SuccessfulInteractions,
			FailedInteractions:     a.FailedInteractions,
			Specializations:        specs,
		})
	}
	m.mu.RUnlock()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("behavior: failed to marshal model snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		m.log().Warn("failed to save behavior model snapshot", "path", path, "error", err)
		return fmt.Errorf("behavior: failed to write model snapshot: %w", err)
	}
	return nil
}

// LoadFromFile replaces the model's contents with the snapshot at
// path. A failed load leaves the model untouched.
func (m *Model) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("behavior: failed to read model snapshot: %w", err)
	}

	var snap modelSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("behavior: failed to unmarshal model snapshot: %w", err)
	}

	agents := make(map[string]*AgentBehavior, len(snap.Agents))
	for _, a := range snap.Agents {
		specs := make(map[string]bool, len(a.Specializations))
		for _, s := range a.Specializations {
			specs[s] = true
		}
		traits := a.PersonalityTraits
		if traits == nil {
			traits = make(map[string]*PersonalityTrait)
		}
		patterns := a.BehavioralPatterns
		if patterns == nil {
			patterns = make(map[string]*BehavioralPattern)
		}
		agents[a.AgentID] = &AgentBehavior{
			AgentID:                a.AgentID,
			PersonalityTraits:      traits,
			BehavioralPatterns:     patterns,
			TotalInteractions:      a.TotalInteractions,
			SuccessfulInteractions: a.SuccessfulInteractions,
			FailedInteractions:     a.FailedInteractions,
			Specializations:        specs,
		}
	}

	m.mu.Lock()
	m.agents = agents
	m.mu.Unlock()

	m.log().Info("loaded behavior model snapshot", "path", path, "agents", len(agents))
	return nil
}
