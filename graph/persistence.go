package graph

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// snapshotVersion is written into every saved snapshot's metadata.
const snapshotVersion = "1.0"

// snapshot is the exact wire shape of spec.md §6.1.
type snapshot struct {
	Nodes    []snapshotNode    `json:"nodes"`
	Edges    []snapshotEdge    `json:"edges"`
	Metadata snapshotMetadata  `json:"metadata"`
}

type snapshotNode struct {
	AgentID                string         `json:"agent_id"`
	CreatedAt              time.Time      `json:"created_at"`
	UpdatedAt              time.Time      `json:"updated_at"`
	TotalInteractions      int64          `json:"total_interactions"`
	SuccessfulInteractions int64          `json:"successful_interactions"`
	FailedInteractions     int64          `json:"failed_interactions"`
	Metadata               map[string]any `json:"metadata"`
}

type snapshotEdge struct {
	FromAgent        string         `json:"from_agent"`
	ToAgent          string         `json:"to_agent"`
	TrustScore       float64        `json:"trust_score"`
	Confidence       float64        `json:"confidence"`
	InteractionCount int64          `json:"interaction_count"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	TTLHours         float64        `json:"ttl_hours"`
	Metadata         map[string]any `json:"metadata"`
}

type snapshotMetadata struct {
	SavedAt time.Time `json:"saved_at"`
	Version string    `json:"version"`
}

// SaveToFile writes the graph to path as a JSON snapshot (spec.md
// §6.1). I/O failures are returned to the caller but never corrupt the
// in-memory graph; per spec.md §7 kind 4, the caller decides whether a
// failed save is fatal.
func (s *Store) SaveToFile(path string) error {
	s.mu.RLock()
	snap := snapshot{
		Nodes:    make([]snapshotNode, 0, len(s.agents)),
		Edges:    make([]snapshotEdge, 0, len(s.edges)),
		Metadata: snapshotMetadata{SavedAt: s.now().UTC(), Version: snapshotVersion},
	}
	for _, a := range s.agents {
		snap.Nodes = append(snap.Nodes, snapshotNode{
			AgentID:                a.AgentID,
			CreatedAt:              a.CreatedAt.UTC(),
			UpdatedAt:              a.UpdatedAt.UTC(),
			TotalInteractions:      a.TotalInteractions,
			SuccessfulInteractions: a.SuccessfulInteractions,
			FailedInteractions:     a.FailedInteractions,
			Metadata:               a.Metadata,
		})
	}
	for _, e := range s.edges {
		snap.Edges = append(snap.Edges, snapshotEdge{
			FromAgent:        e.FromAgent,
			ToAgent:          e.ToAgent,
			TrustScore:       e.TrustScore,
			Confidence:       e.Confidence,
			InteractionCount: e.InteractionCount,
			CreatedAt:        e.CreatedAt.UTC(),
			UpdatedAt:        e.UpdatedAt.UTC(),
			TTLHours:         e.TTLHours,
			Metadata:         e.Metadata,
		})
	}
	s.mu.RUnlock()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal trust graph snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		s.log().Warn("failed to save trust graph snapshot", "path", path, "error", err)
		return fmt.Errorf("failed to write trust graph snapshot: %w", err)
	}
	return nil
}

// LoadFromFile replaces the graph's contents with the snapshot stored
// at path. A failed load leaves the store untouched, it never
// partially populates the graph (spec.md §7 kind 4). Missing
// ttl_hours defaults to DefaultTTLHours; missing metadata defaults to
// nil; unknown fields are ignored by Go's JSON decoder for free.
func (s *Store) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read trust graph snapshot: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("failed to unmarshal trust graph snapshot: %w", err)
	}

	agents := make(map[string]*Agent, len(snap.Nodes))
	for _, n := range snap.Nodes {
		agents[n.AgentID] = &Agent{
			AgentID:                n.AgentID,
			CreatedAt:              n.CreatedAt,
			UpdatedAt:              n.UpdatedAt,
			TotalInteractions:      n.TotalInteractions,
			SuccessfulInteractions: n.SuccessfulInteractions,
			FailedInteractions:     n.FailedInteractions,
			Metadata:               n.Metadata,
		}
	}

	edges := make([]TrustEdge, 0, len(snap.Edges))
	index := make(map[edgeKey]int, len(snap.Edges))
	for _, e := range snap.Edges {
		ttl := e.TTLHours
		if ttl <= 0 {
			ttl = DefaultTTLHours
		}
		if _, ok := agents[e.FromAgent]; !ok {
			agents[e.FromAgent] = &Agent{AgentID: e.FromAgent, CreatedAt: e.CreatedAt, UpdatedAt: e.UpdatedAt}
		}
		if _, ok := agents[e.ToAgent]; !ok {
			agents[e.ToAgent] = &Agent{AgentID: e.ToAgent, CreatedAt: e.CreatedAt, UpdatedAt: e.UpdatedAt}
		}
		index[edgeKey{e.FromAgent, e.ToAgent}] = len(edges)
		edges = append(edges, TrustEdge{
			FromAgent:        e.FromAgent,
			ToAgent:          e.ToAgent,
			TrustScore:       e.TrustScore,
			Confidence:       e.Confidence,
			InteractionCount: e.InteractionCount,
			CreatedAt:        e.CreatedAt,
			UpdatedAt:        e.UpdatedAt,
			TTLHours:         ttl,
			Metadata:         e.Metadata,
		})
	}

	s.mu.Lock()
	s.agents = agents
	s.edges = edges
	s.index = index
	s.mu.Unlock()

	s.log().Info("loaded trust graph snapshot", "path", path, "agents", len(agents), "edges", len(edges))
	return nil
}
