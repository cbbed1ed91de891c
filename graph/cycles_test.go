package graph

import "testing"

func TestDetectCircularReferencesFindsTriangle(t *testing.T) {
	s := NewStore()
	s.UpdateTrust("a", "b", 0.5, 0.5, nil)
	s.UpdateTrust("b", "c", 0.5, 0.5, nil)
	s.UpdateTrust("c", "a", 0.5, 0.5, nil)

	cycles := s.DetectCircularReferences()
	if len(cycles) != 1 {
		t.Fatalf("got %d cycles, want 1: %v", len(cycles), cycles)
	}
}

func TestDetectCircularReferencesNoCycleInDAG(t *testing.T) {
	s := NewStore()
	s.UpdateTrust("a", "b", 0.5, 0.5, nil)
	s.UpdateTrust("b", "c", 0.5, 0.5, nil)
	s.UpdateTrust("a", "c", 0.5, 0.5, nil)

	cycles := s.DetectCircularReferences()
	if len(cycles) != 0 {
		t.Errorf("got %d cycles in a DAG, want 0: %v", len(cycles), cycles)
	}
}
