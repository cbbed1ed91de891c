package graph

import (
	"math"
	"testing"
	"time"
)

func approxEqual(t *testing.T, got, want, tolerance float64) {
	t.Helper()
	if math.Abs(got-want) > tolerance {
		t.Errorf("got %v, want %v (tolerance %v)", got, want, tolerance)
	}
}

func TestUpdateTrustWeightedMerge(t *testing.T) {
	s := NewStore()
	s.AddAgent("alice", nil)
	s.AddAgent("bob", nil)

	if ok := s.UpdateTrust("alice", "bob", 0.8, 0.9, nil); !ok {
		t.Fatalf("first update rejected")
	}
	if ok := s.UpdateTrust("alice", "bob", -0.3, 0.7, nil); !ok {
		t.Fatalf("second update rejected")
	}

	e, ok := s.GetEdge("alice", "bob")
	if !ok {
		t.Fatalf("edge not found")
	}
	// w = 1/(1+1) = 0.5 -> 0.8*0.5 + (-0.3)*0.5 = 0.25
	approxEqual(t, e.TrustScore, 0.25, 1e-9)
	if e.InteractionCount != 2 {
		t.Errorf("interaction_count = %d, want 2", e.InteractionCount)
	}
}

func TestUpdateTrustClampsOutOfRange(t *testing.T) {
	s := NewStore()
	s.UpdateTrust("alice", "bob", 5.0, -2.0, nil)

	e, ok := s.GetEdge("alice", "bob")
	if !ok {
		t.Fatalf("edge not found")
	}
	if e.TrustScore != 1.0 {
		t.Errorf("trust_score = %v, want clamped to 1.0", e.TrustScore)
	}
	if e.Confidence != 0.0 {
		t.Errorf("confidence = %v, want clamped to 0.0", e.Confidence)
	}
}

func TestUpdateTrustRejectsSelfLoop(t *testing.T) {
	s := NewStore()
	if ok := s.UpdateTrust("alice", "alice", 0.5, 0.5, nil); ok {
		t.Errorf("self-loop update should be rejected")
	}
	if _, ok := s.GetEdge("alice", "alice"); ok {
		t.Errorf("self-loop edge should not exist")
	}
}

func TestUpdateTrustRejectsNonFinite(t *testing.T) {
	s := NewStore()
	if ok := s.UpdateTrust("alice", "bob", math.NaN(), 0.5, nil); ok {
		t.Errorf("NaN score should be rejected")
	}
	if ok := s.UpdateTrust("alice", "bob", math.Inf(1), 0.5, nil); ok {
		t.Errorf("+Inf score should be rejected")
	}
}

func TestGetEdgeUnknownPairReturnsFalse(t *testing.T) {
	s := NewStore()
	if _, ok := s.GetEdge("alice", "ghost"); ok {
		t.Errorf("expected absent sentinel, got an edge")
	}
}

func TestAddAgentDuplicateReturnsFalse(t *testing.T) {
	s := NewStore()
	if ok := s.AddAgent("alice", nil); !ok {
		t.Fatalf("first add should succeed")
	}
	if ok := s.AddAgent("alice", nil); ok {
		t.Errorf("duplicate add should return false")
	}
}

func TestEdgeExpiryOnRead(t *testing.T) {
	frozen := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewStore(withClock(func() time.Time { return frozen }))
	s.UpdateTrust("alice", "bob", 0.5, 0.5, nil)
	s.setEdgeTimestamps("alice", "bob", frozen.Add(-9000*time.Hour), frozen.Add(-9000*time.Hour))

	if _, ok := s.GetEdge("alice", "bob"); ok {
		t.Errorf("edge older than default TTL should read as expired")
	}
	if n := s.EdgeCount(); n != 1 {
		t.Errorf("expired edge should remain in storage until cleanup, EdgeCount = %d", n)
	}
}

func TestCleanupExpiredEdgesRemoves(t *testing.T) {
	frozen := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewStore(withClock(func() time.Time { return frozen }))
	s.UpdateTrust("alice", "bob", 0.5, 0.5, nil)
	s.setEdgeTimestamps("alice", "bob", frozen.Add(-9000*time.Hour), frozen.Add(-9000*time.Hour))

	removed := s.CleanupExpiredEdges()
	if removed != 1 {
		t.Errorf("CleanupExpiredEdges removed = %d, want 1", removed)
	}
	if n := s.EdgeCount(); n != 0 {
		t.Errorf("EdgeCount after cleanup = %d, want 0", n)
	}
}

func TestUpdateTrustBatchHighPerfSkipsMerge(t *testing.T) {
	s := NewStore()
	s.UpdateTrust("alice", "bob", 0.8, 0.9, nil)

	applied := s.UpdateTrustBatch([]TrustUpdate{
		{From: "alice", To: "bob", Score: -0.3, Confidence: 0.7},
	}, true)
	if applied != 1 {
		t.Fatalf("applied = %d, want 1", applied)
	}

	e, _ := s.GetEdge("alice", "bob")
	if e.TrustScore != -0.3 {
		t.Errorf("high-perf batch should overwrite directly, got %v", e.TrustScore)
	}
	if e.InteractionCount != 2 {
		t.Errorf("interaction_count = %d, want 2", e.InteractionCount)
	}
}

func TestRemoveAgentDropsIncidentEdges(t *testing.T) {
	s := NewStore()
	s.UpdateTrust("alice", "bob", 0.5, 0.5, nil)
	s.UpdateTrust("bob", "carol", 0.5, 0.5, nil)

	if ok := s.RemoveAgent("bob"); !ok {
		t.Fatalf("remove should succeed")
	}
	if _, ok := s.GetEdge("alice", "bob"); ok {
		t.Errorf("edge into removed agent should be gone")
	}
	if _, ok := s.GetEdge("bob", "carol"); ok {
		t.Errorf("edge out of removed agent should be gone")
	}
	if _, ok := s.GetAgent("bob"); ok {
		t.Errorf("removed agent should be gone")
	}
}

func TestSetEdgeVerified(t *testing.T) {
	s := NewStore()
	s.UpdateTrust("alice", "bob", 0.5, 0.5, nil)

	if ok := s.SetEdgeVerified("alice", "bob", false); !ok {
		t.Fatalf("should succeed on existing edge")
	}
	e, _ := s.GetEdge("alice", "bob")
	if e.Verified() {
		t.Errorf("edge should report unverified")
	}

	edges := s.GetEdges(true)
	if len(edges) != 0 {
		t.Errorf("verified-only filter should exclude the demoted edge, got %d", len(edges))
	}
}
