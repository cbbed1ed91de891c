package pathanalyzer

import (
	"context"
	"math"
	"testing"

	"github.com/trustgraph/trustcore/graph"
)

func approxEqual(t *testing.T, got, want, tolerance float64) {
	t.Helper()
	if math.Abs(got-want) > tolerance {
		t.Errorf("got %v, want %v (tolerance %v)", got, want, tolerance)
	}
}

func buildSampleGraph() *graph.Store {
	s := graph.NewStore()
	s.UpdateTrust("A", "B", 0.8, 0.9, nil)
	s.UpdateTrust("B", "C", 0.9, 0.8, nil)
	s.UpdateTrust("A", "C", 0.6, 0.7, nil)
	s.UpdateTrust("C", "D", 0.5, 0.5, nil)
	return s
}

func TestFindPathsRanksShorterHigherTrustPathFirst(t *testing.T) {
	s := buildSampleGraph()
	a := NewAnalyzer(s, WithDecayFactor(0.8))

	result, err := a.FindPaths(context.Background(), "A", "D")
	if err != nil {
		t.Fatalf("FindPaths: %v", err)
	}
	if result.BestPath == nil {
		t.Fatalf("expected a best path")
	}
	if len(result.AllPaths) < 2 {
		t.Fatalf("expected at least 2 paths, got %d", len(result.AllPaths))
	}

	want := []string{"A", "C", "D"}
	if !equalSlices(result.BestPath.Nodes, want) {
		t.Errorf("best path = %v, want %v", result.BestPath.Nodes, want)
	}
	// 0.6 * (0.5 * 0.8) = 0.24
	approxEqual(t, result.BestPath.CompositeTrust, 0.24, 1e-9)
}

func TestFindPathsSameSourceTargetEmpty(t *testing.T) {
	s := buildSampleGraph()
	a := NewAnalyzer(s)

	result, err := a.FindPaths(context.Background(), "A", "A")
	if err != nil {
		t.Fatalf("FindPaths: %v", err)
	}
	if len(result.AllPaths) != 0 || result.BestPath != nil {
		t.Errorf("expected no paths for source == target, got %+v", result)
	}
}

func TestFindPathsUnknownAgentsEmpty(t *testing.T) {
	s := buildSampleGraph()
	a := NewAnalyzer(s)

	result, err := a.FindPaths(context.Background(), "ghost", "D")
	if err != nil {
		t.Fatalf("FindPaths: %v", err)
	}
	if len(result.AllPaths) != 0 || result.BestPath != nil {
		t.Errorf("expected empty result for unknown source, got %+v", result)
	}
}

func TestFindPathsCaches(t *testing.T) {
	s := buildSampleGraph()
	a := NewAnalyzer(s)

	first, _ := a.FindPaths(context.Background(), "A", "D")
	a.store.UpdateTrust("C", "D", -0.9, 0.9, nil)
	second, _ := a.FindPaths(context.Background(), "A", "D")

	if first.BestPath.CompositeTrust != second.BestPath.CompositeTrust {
		t.Errorf("expected cached result to be returned unchanged despite graph mutation")
	}
}

func equalSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
