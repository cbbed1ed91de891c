package graph

import (
	"testing"
	"time"
)

func TestApplyDecayShrinksTowardZero(t *testing.T) {
	frozen := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := frozen
	s := NewStore(withClock(func() time.Time { return clock }))

	s.UpdateTrust("alice", "bob", 0.8, 0.9, nil)
	clock = frozen.Add(24 * time.Hour)

	decayed := s.ApplyDecay()
	if decayed != 1 {
		t.Fatalf("decayed = %d, want 1", decayed)
	}
	e, _ := s.GetEdge("alice", "bob")
	if e.TrustScore >= 0.8 || e.TrustScore <= 0 {
		t.Errorf("trust_score after one day of decay = %v, want shrunk toward zero but same sign", e.TrustScore)
	}
}

func TestApplyDecaySkipsExpiredEdges(t *testing.T) {
	frozen := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewStore(withClock(func() time.Time { return frozen }), WithDefaultTTLHours(1))
	s.UpdateTrust("alice", "bob", 0.8, 0.9, nil)
	s.setEdgeTimestamps("alice", "bob", frozen.Add(-2*time.Hour), frozen.Add(-2*time.Hour))

	decayed := s.ApplyDecay()
	if decayed != 0 {
		t.Errorf("already-expired edges should be skipped, decayed = %d", decayed)
	}
}
