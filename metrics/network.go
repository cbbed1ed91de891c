package metrics

import (
	"context"
	"math/rand"
	"time"

	"github.com/trustgraph/trustcore/graph"
	"github.com/trustgraph/trustcore/pathanalyzer"
	"github.com/trustgraph/trustcore/telemetry"
)

// maxEfficiencySamples and maxResilienceTrials bound the expensive,
// sampled network-wide metrics so a large graph still completes within
// spec.md §5's throughput budget.
const (
	maxEfficiencySamples = 50
	maxResilienceTrials  = 10
	networkCacheKey      = "network"
)

// NetworkMetrics computes the network-wide metric set of spec.md §4.3.
// A 1 h TTL cache fronts the computation.
func (e *Engine) NetworkMetrics() NetworkMetrics {
	_, span := telemetry.Tracer.Start(context.Background(), "metrics.NetworkMetrics")
	defer span.End()

	if e.networkCache != nil {
		if cached, ok := e.networkCache.Get(networkCacheKey); ok {
			return cached
		}
	}

	start := time.Now()
	m := e.computeNetworkMetrics()
	telemetry.NetworkMetricsDuration.Observe(time.Since(start).Seconds())

	if e.networkCache != nil {
		e.networkCache.SetWithTTL(networkCacheKey, m, 1, e.cacheTTL)
		e.networkCache.Wait()
	}
	return m
}

func (e *Engine) computeNetworkMetrics() NetworkMetrics {
	var m NetworkMetrics

	agentIDs := e.store.AgentIDs()
	edges := e.store.AllEdges()
	m.TotalAgents = len(agentIDs)
	m.TotalEdges = len(edges)

	if m.TotalAgents == 0 {
		return m
	}

	edgeScores := make([]float64, 0, len(edges))
	edgeConfidence := make([]float64, 0, len(edges))
	for _, edge := range edges {
		edgeScores = append(edgeScores, edge.TrustScore)
		edgeConfidence = append(edgeConfidence, edge.Confidence)
	}
	m.AverageTrustScore = mean(edgeScores)
	if m.TotalAgents > 1 {
		m.TrustDensity = float64(m.TotalEdges) / float64(m.TotalAgents*(m.TotalAgents-1))
	}
	m.TrustStability = mean(edgeConfidence)

	centralities := make([]float64, 0, len(agentIDs))
	clusterings := make([]float64, 0, len(agentIDs))
	for _, id := range agentIDs {
		am := e.AgentMetrics(id)
		centralities = append(centralities, am.TrustCentrality)
		if am.TrustClustering > 0 {
			clusterings = append(clusterings, am.TrustClustering)
		}
		switch {
		case am.AverageTrustScore >= 0.7:
			m.HighTrustAgents++
		case am.AverageTrustScore <= 0.3:
			m.LowTrustAgents++
		}
	}
	m.TrustClusteringCoefficient = mean(clusterings)
	m.TrustCentralization = clampUnit(variance(centralities))

	clusters := e.analyzer.TrustClusters(pathanalyzer.DefaultMinTrust)
	m.TrustCommunities = len(clusters)
	m.TrustFragmentation = fragmentation(clusters, m.TotalAgents)

	m.TrustEfficiency = e.trustEfficiency(agentIDs)
	m.TrustResilience = trustResilience(agentIDs, edges)

	return m
}

func fragmentation(clusters []pathanalyzer.Cluster, totalAgents int) float64 {
	if len(clusters) == 0 || totalAgents == 0 {
		return 1
	}
	sizeSum := 0
	for _, c := range clusters {
		sizeSum += len(c.Members)
	}
	meanSize := float64(sizeSum) / float64(len(clusters))
	return 1 - (meanSize / float64(totalAgents))
}

func (e *Engine) trustEfficiency(agentIDs []string) float64 {
	pairs := samplePairs(agentIDs, maxEfficiencySamples)
	if len(pairs) == 0 {
		return 0
	}
	var lengths []float64
	for _, pair := range pairs {
		result, err := e.analyzer.FindPaths(context.Background(), pair[0], pair[1])
		if err != nil || result.BestPath == nil {
			continue
		}
		lengths = append(lengths, float64(len(result.BestPath.Nodes)-1))
	}
	if len(lengths) == 0 {
		return 0
	}
	return 1 / (1 + mean(lengths))
}

func samplePairs(agentIDs []string, limit int) [][2]string {
	var pairs [][2]string
	for i := 0; i < len(agentIDs) && len(pairs) < limit; i++ {
		for j := 0; j < len(agentIDs) && len(pairs) < limit; j++ {
			if i == j {
				continue
			}
			pairs = append(pairs, [2]string{agentIDs[i], agentIDs[j]})
		}
	}
	return pairs
}

// trustResilience samples up to maxResilienceTrials random single-node
// deletions and averages the size of the largest remaining connected
// component relative to N-1, per spec.md §4.3. It operates on a plain
// adjacency map built from AllEdges and never mutates the Store.
func trustResilience(agentIDs []string, edges []graph.TrustEdge) float64 {
	n := len(agentIDs)
	if n <= 1 {
		return 0
	}

	adjacency := make(map[string]map[string]bool, n)
	for _, id := range agentIDs {
		adjacency[id] = make(map[string]bool)
	}
	for _, edge := range edges {
		adjacency[edge.FromAgent][edge.ToAgent] = true
		adjacency[edge.ToAgent][edge.FromAgent] = true
	}

	trials := maxResilienceTrials
	if n < trials {
		trials = n
	}
	rng := rand.New(rand.NewSource(42))
	perm := rng.Perm(n)

	var total float64
	for i := 0; i < trials; i++ {
		removed := agentIDs[perm[i]]
		total += float64(largestComponent(agentIDs, adjacency, removed)) / float64(n-1)
	}
	return total / float64(trials)
}

func largestComponent(agentIDs []string, adjacency map[string]map[string]bool, removed string) int {
	visited := map[string]bool{removed: true}
	best := 0
	for _, id := range agentIDs {
		if visited[id] {
			continue
		}
		size := 0
		queue := []string{id}
		visited[id] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			size++
			for neighbor := range adjacency[cur] {
				if !visited[neighbor] {
					visited[neighbor] = true
					queue = append(queue, neighbor)
				}
			}
		}
		if size > best {
			best = size
		}
	}
	return best
}

func variance(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := mean(xs)
	var v float64
	for _, x := range xs {
		v += (x - m) * (x - m)
	}
	return v / float64(len(xs))
}

func clampUnit(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
