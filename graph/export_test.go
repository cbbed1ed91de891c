package graph

import (
	"strings"
	"testing"
)

func TestExportCSVHeaderAndRow(t *testing.T) {
	s := NewStore()
	s.UpdateTrust("alice", "bob", 0.5, 0.9, nil)

	var sb strings.Builder
	if err := s.ExportCSV(&sb); err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}
	out := sb.String()
	if !strings.HasPrefix(out, "from_agent,to_agent,trust_score,confidence,interaction_count,ttl_hours\n") {
		t.Errorf("unexpected header: %q", out)
	}
	if !strings.Contains(out, "alice,bob,") {
		t.Errorf("missing expected row: %q", out)
	}
}

func TestExportDOTContainsEdges(t *testing.T) {
	s := NewStore()
	s.UpdateTrust("alice", "bob", 0.5, 0.9, nil)

	var sb strings.Builder
	if err := s.ExportDOT(&sb); err != nil {
		t.Fatalf("ExportDOT: %v", err)
	}
	out := sb.String()
	if !strings.HasPrefix(out, "digraph trust_graph {\n") {
		t.Errorf("unexpected header: %q", out)
	}
	if !strings.Contains(out, `"alice" -> "bob"`) {
		t.Errorf("missing expected edge: %q", out)
	}
}
