package pathanalyzer

import (
	"fmt"
	"sort"

	"github.com/trustgraph/trustcore/telemetry"
)

// TrustClusters finds connected components of agents linked by edges
// at or above minTrust, treating edges as undirected for this purpose
// (spec.md §4.2). Components of size 1 are not clusters.
func (a *Analyzer) TrustClusters(minTrust float64) []Cluster {
	cacheKey := fmt.Sprintf("%.6f", minTrust)
	if a.clusterCache != nil {
		if cached, ok := a.clusterCache.Get(cacheKey); ok {
			telemetry.CacheResultsTotal.WithLabelValues("cluster", "hit").Inc()
			return cached
		}
		telemetry.CacheResultsTotal.WithLabelValues("cluster", "miss").Inc()
	}

	adjacency := make(map[string]map[string]bool)
	for _, id := range a.store.AgentIDs() {
		adjacency[id] = make(map[string]bool)
	}
	for _, e := range a.store.AllEdges() {
		if e.TrustScore < minTrust {
			continue
		}
		adjacency[e.FromAgent][e.ToAgent] = true
		adjacency[e.ToAgent][e.FromAgent] = true
	}

	visited := make(map[string]bool)
	var clusters []Cluster
	ids := a.store.AgentIDs()
	sort.Strings(ids)

	for _, id := range ids {
		if visited[id] {
			continue
		}
		queue := []string{id}
		visited[id] = true
		var members []string
		for len(queue) > 0 {
			node := queue[0]
			queue = queue[1:]
			members = append(members, node)
			neighbors := make([]string, 0, len(adjacency[node]))
			for n := range adjacency[node] {
				neighbors = append(neighbors, n)
			}
			sort.Strings(neighbors)
			for _, n := range neighbors {
				if !visited[n] {
					visited[n] = true
					queue = append(queue, n)
				}
			}
		}
		if len(members) >= 2 {
			sort.Strings(members)
			clusters = append(clusters, Cluster{Members: members})
		}
	}

	if a.clusterCache != nil {
		a.clusterCache.SetWithTTL(cacheKey, clusters, 1, a.cacheTTL)
		a.clusterCache.Wait()
	}
	return clusters
}
