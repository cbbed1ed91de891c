package graph

import "testing"

func TestAgentTrustSummaryAveragesAndCounters(t *testing.T) {
	s := NewStore()
	s.UpdateTrust("alice", "bob", 0.8, 0.9, nil)
	s.UpdateTrust("carol", "bob", 0.4, 0.5, nil)
	s.UpdateTrust("bob", "alice", 0.6, 0.5, nil)

	summary, ok := s.AgentTrustSummary("bob")
	if !ok {
		t.Fatalf("expected bob to be known")
	}
	if summary.IncomingTrustCount != 2 {
		t.Errorf("incoming_trust_count = %d, want 2", summary.IncomingTrustCount)
	}
	if summary.OutgoingTrustCount != 1 {
		t.Errorf("outgoing_trust_count = %d, want 1", summary.OutgoingTrustCount)
	}
	approxEqual(t, summary.AvgIncomingTrust, 0.6, 1e-9)
	approxEqual(t, summary.AvgOutgoingTrust, 0.6, 1e-9)
	if summary.TotalInteractions != 2 {
		t.Errorf("total_interactions = %d, want 2 (bob is the 'to' agent of two updates)", summary.TotalInteractions)
	}
}

func TestAgentTrustSummaryUnknownAgent(t *testing.T) {
	s := NewStore()
	if _, ok := s.AgentTrustSummary("ghost"); ok {
		t.Errorf("expected unknown agent to report false")
	}
}

func TestStatisticsCountsAndAverages(t *testing.T) {
	s := NewStore()
	s.UpdateTrust("a", "b", 0.5, 0.5, nil)
	s.UpdateTrust("b", "c", 0.5, 0.5, nil)
	s.UpdateTrust("c", "a", 0.5, 0.5, nil)

	stats := s.Statistics()
	if stats.TotalAgents != 3 {
		t.Errorf("total_agents = %d, want 3", stats.TotalAgents)
	}
	if stats.TotalEdges != 3 || stats.ActiveEdges != 3 || stats.ExpiredEdges != 0 {
		t.Errorf("unexpected edge counts: %+v", stats)
	}
	approxEqual(t, stats.AvgTrustScore, 0.5, 1e-9)
	if stats.CircularReferences != 1 {
		t.Errorf("circular_references = %d, want 1 (a->b->c->a)", stats.CircularReferences)
	}
}

func TestStatisticsEmptyStore(t *testing.T) {
	s := NewStore()
	stats := s.Statistics()
	if stats.TotalAgents != 0 || stats.TotalEdges != 0 {
		t.Errorf("expected zero-value statistics for an empty store, got %+v", stats)
	}
}
