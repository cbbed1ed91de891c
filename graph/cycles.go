package graph

// DetectCircularReferences returns cycles in the graph's directed edge
// structure, found via standard DFS coloring (white/gray/black): one
// cycle for each back edge the search meets. The result is non-empty
// iff the graph has a directed cycle, but cycles that close through an
// already-reported back edge are not listed separately. The traversal
// is O(V+E) plus the copy of each reported cycle, and is not meant for
// the hot path. Edge sign
// and expiry are irrelevant here, this is about structural cycles in
// what was asserted, not current trust.
func (s *Store) DetectCircularReferences() [][]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	adjacency := make(map[string][]string, len(s.agents))
	for _, e := range s.edges {
		adjacency[e.FromAgent] = append(adjacency[e.FromAgent], e.ToAgent)
	}

	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(s.agents))
	var path []string
	var cycles [][]string

	var visit func(node string)
	visit = func(node string) {
		color[node] = gray
		path = append(path, node)

		for _, next := range adjacency[node] {
			switch color[next] {
			case white:
				visit(next)
			case gray:
				cycles = append(cycles, extractCycle(path, next))
			}
		}

		path = path[:len(path)-1]
		color[node] = black
	}

	for id := range s.agents {
		if color[id] == white {
			visit(id)
		}
	}
	return cycles
}

// extractCycle returns the suffix of path starting at the first
// occurrence of target, closing the loop back to target.
func extractCycle(path []string, target string) []string {
	for i, node := range path {
		if node == target {
			cycle := make([]string, len(path)-i)
			copy(cycle, path[i:])
			return append(cycle, target)
		}
	}
	return nil
}
