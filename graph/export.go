package graph

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
)

// ErrUnsupportedFormat is the error for an export format this package
// cannot produce. ExportCSV and ExportDOT each write one fixed format,
// so neither of them returns it.
var ErrUnsupportedFormat = errors.New("graph: unsupported export format")

// ExportCSV writes every non-expired edge to w as CSV with a header
// row, sorted by (from, to) for deterministic output. Grounded on the
// teacher's plain encoding/csv-free, manual-join style in its own
// metrics reporting.
func (s *Store) ExportCSV(w io.Writer) error {
	edges := s.AllEdges()
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].FromAgent != edges[j].FromAgent {
			return edges[i].FromAgent < edges[j].FromAgent
		}
		return edges[i].ToAgent < edges[j].ToAgent
	})

	if _, err := io.WriteString(w, "from_agent,to_agent,trust_score,confidence,interaction_count,ttl_hours\n"); err != nil {
		return fmt.Errorf("graph: writing csv header: %w", err)
	}
	for _, e := range edges {
		row := fmt.Sprintf("%s,%s,%s,%s,%d,%s\n",
			csvEscape(e.FromAgent),
			csvEscape(e.ToAgent),
			strconv.FormatFloat(e.TrustScore, 'f', 6, 64),
			strconv.FormatFloat(e.Confidence, 'f', 6, 64),
			e.InteractionCount,
			strconv.FormatFloat(e.TTLHours, 'f', 2, 64),
		)
		if _, err := io.WriteString(w, row); err != nil {
			return fmt.Errorf("graph: writing csv row: %w", err)
		}
	}
	return nil
}

func csvEscape(s string) string {
	for _, r := range s {
		if r == ',' || r == '"' || r == '\n' {
			return strconv.Quote(s)
		}
	}
	return s
}

// ExportDOT writes the graph to w as a Graphviz DOT digraph, edge
// weight encoded as both a label and a pen width so clusters of strong
// trust are visually obvious, and colored green for a positive score,
// red for a negative one, gray for zero.
func (s *Store) ExportDOT(w io.Writer) error {
	edges := s.AllEdges()
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].FromAgent != edges[j].FromAgent {
			return edges[i].FromAgent < edges[j].FromAgent
		}
		return edges[i].ToAgent < edges[j].ToAgent
	})

	if _, err := io.WriteString(w, "digraph trust_graph {\n"); err != nil {
		return fmt.Errorf("graph: writing dot header: %w", err)
	}
	for _, e := range edges {
		penWidth := 1.0 + 3.0*((e.TrustScore+1.0)/2.0)
		color := "gray"
		switch {
		case e.TrustScore > 0:
			color = "green"
		case e.TrustScore < 0:
			color = "red"
		}
		line := fmt.Sprintf("  %q -> %q [label=%q, penwidth=%s, color=%s];\n",
			e.FromAgent, e.ToAgent,
			strconv.FormatFloat(e.TrustScore, 'f', 2, 64),
			strconv.FormatFloat(penWidth, 'f', 2, 64),
			color,
		)
		if _, err := io.WriteString(w, line); err != nil {
			return fmt.Errorf("graph: writing dot edge: %w", err)
		}
	}
	if _, err := io.WriteString(w, "}\n"); err != nil {
		return fmt.Errorf("graph: writing dot footer: %w", err)
	}
	return nil
}
