package graph

import "time"

// AgentTrustSummary is a per-agent rollup of interaction counters and
// incoming/outgoing trust averages, the aggregate view get_agent_trust_summary
// builds from the node and edge maps on every call rather than caching it.
type AgentTrustSummary struct {
	AgentID                string         `json:"agent_id"`
	TotalInteractions      int64          `json:"total_interactions"`
	SuccessfulInteractions int64          `json:"successful_interactions"`
	FailedInteractions     int64          `json:"failed_interactions"`
	SuccessRate            float64        `json:"success_rate"`
	FailureRate            float64        `json:"failure_rate"`
	AvgIncomingTrust       float64        `json:"avg_incoming_trust"`
	AvgOutgoingTrust       float64        `json:"avg_outgoing_trust"`
	IncomingTrustCount     int            `json:"incoming_trust_count"`
	OutgoingTrustCount     int            `json:"outgoing_trust_count"`
	CreatedAt              time.Time      `json:"created_at"`
	UpdatedAt              time.Time      `json:"updated_at"`
	Metadata               map[string]any `json:"metadata"`
}

// AgentTrustSummary reports interaction and trust-average statistics for
// a single agent. Returns false if the agent is unknown.
func (s *Store) AgentTrustSummary(id string) (AgentTrustSummary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.agents[id]
	if !ok {
		return AgentTrustSummary{}, false
	}

	now := s.now()
	var incomingSum, outgoingSum float64
	var incomingCount, outgoingCount int
	for _, e := range s.edges {
		if e.expired(now) {
			continue
		}
		switch {
		case e.ToAgent == id:
			incomingSum += e.TrustScore
			incomingCount++
		case e.FromAgent == id:
			outgoingSum += e.TrustScore
			outgoingCount++
		}
	}

	avgIncoming := 0.0
	if incomingCount > 0 {
		avgIncoming = incomingSum / float64(incomingCount)
	}
	avgOutgoing := 0.0
	if outgoingCount > 0 {
		avgOutgoing = outgoingSum / float64(outgoingCount)
	}

	return AgentTrustSummary{
		AgentID:                id,
		TotalInteractions:      a.TotalInteractions,
		SuccessfulInteractions: a.SuccessfulInteractions,
		FailedInteractions:     a.FailedInteractions,
		SuccessRate:            successRate(a),
		FailureRate:            failureRate(a),
		AvgIncomingTrust:       avgIncoming,
		AvgOutgoingTrust:       avgOutgoing,
		IncomingTrustCount:     incomingCount,
		OutgoingTrustCount:     outgoingCount,
		CreatedAt:              a.CreatedAt,
		UpdatedAt:              a.UpdatedAt,
		Metadata:               cloneMetadata(a.Metadata),
	}, true
}

func successRate(a *Agent) float64 {
	if a.TotalInteractions == 0 {
		return 0
	}
	return float64(a.SuccessfulInteractions) / float64(a.TotalInteractions)
}

func failureRate(a *Agent) float64 {
	if a.TotalInteractions == 0 {
		return 0
	}
	return float64(a.FailedInteractions) / float64(a.TotalInteractions)
}

// Statistics is a store-wide health snapshot, distinct from the Metrics
// Engine's trust-quality metrics: counts and averages, plus a
// circular-reference count.
type Statistics struct {
	TotalAgents         int       `json:"total_agents"`
	TotalEdges          int       `json:"total_edges"`
	ActiveEdges         int       `json:"active_edges"`
	ExpiredEdges        int       `json:"expired_edges"`
	AvgTrustScore       float64   `json:"avg_trust_score"`
	AvgConfidence       float64   `json:"avg_confidence"`
	CircularReferences  int       `json:"circular_references"`
	LastUpdated         time.Time `json:"last_updated"`
}

// Statistics reports counts and averages over the whole store.
// Circular-reference detection runs DFS over the full edge set, so this
// is not meant for a hot path.
func (s *Store) Statistics() Statistics {
	s.mu.RLock()
	edges := make([]TrustEdge, len(s.edges))
	copy(edges, s.edges)
	now := s.now()
	totalAgents := len(s.agents)
	s.mu.RUnlock()

	active := 0
	var trustSum, confidenceSum float64
	for _, e := range edges {
		if e.expired(now) {
			continue
		}
		active++
		trustSum += e.TrustScore
		confidenceSum += e.Confidence
	}

	avgTrust := 0.0
	avgConfidence := 0.0
	if active > 0 {
		avgTrust = trustSum / float64(active)
		avgConfidence = confidenceSum / float64(active)
	}

	return Statistics{
		TotalAgents:        totalAgents,
		TotalEdges:         len(edges),
		ActiveEdges:        active,
		ExpiredEdges:       len(edges) - active,
		AvgTrustScore:      avgTrust,
		AvgConfidence:      avgConfidence,
		CircularReferences: len(s.DetectCircularReferences()),
		LastUpdated:        now,
	}
}
