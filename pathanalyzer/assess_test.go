package pathanalyzer

import (
	"context"
	"testing"

	"github.com/trustgraph/trustcore/graph"
)

func TestAssessTrustworthinessCombinesDirectAndIndirect(t *testing.T) {
	s := graph.NewStore()
	s.UpdateTrust("A", "B", 0.9, 0.9, nil)
	a := NewAnalyzer(s)

	assessment, err := a.AssessTrustworthiness(context.Background(), "A", "B")
	if err != nil {
		t.Fatalf("AssessTrustworthiness: %v", err)
	}
	if assessment.DirectTrust == nil || *assessment.DirectTrust != 0.9 {
		t.Errorf("direct_trust = %v, want 0.9", assessment.DirectTrust)
	}
	if assessment.Level != TrustHigh {
		t.Errorf("level = %q, want high", assessment.Level)
	}
	if assessment.Recommendation != "trust" {
		t.Errorf("recommendation = %q, want trust", assessment.Recommendation)
	}
}

func TestAssessTrustworthinessNoRelationship(t *testing.T) {
	s := graph.NewStore()
	s.AddAgent("A", nil)
	s.AddAgent("B", nil)
	a := NewAnalyzer(s)

	assessment, err := a.AssessTrustworthiness(context.Background(), "A", "B")
	if err != nil {
		t.Fatalf("AssessTrustworthiness: %v", err)
	}
	if assessment.Overall != 0 || assessment.Level != TrustVeryLow {
		t.Errorf("expected very_low/0 assessment, got %+v", assessment)
	}
}
