package metrics

import (
	"math"

	"github.com/trustgraph/trustcore/graph"
)

// reachabilityThreshold gates which edges trust_reachability follows.
const reachabilityThreshold = 0.3

// AgentMetrics computes the full per-agent metric set for id, per
// spec.md §4.3. A 1 h TTL cache fronts the computation.
func (e *Engine) AgentMetrics(id string) AgentMetrics {
	if e.agentCache != nil {
		if cached, ok := e.agentCache.Get(id); ok {
			return cached
		}
	}

	m := e.computeAgentMetrics(id)
	if e.agentCache != nil {
		e.agentCache.SetWithTTL(id, m, 1, e.cacheTTL)
		e.agentCache.Wait()
	}
	return m
}

func (e *Engine) computeAgentMetrics(id string) AgentMetrics {
	m := AgentMetrics{AgentID: id}

	in := e.store.GetInEdges(id)
	out := e.store.GetOutEdges(id)
	n := e.store.AgentCount()

	incomingScores := make([]float64, 0, len(in))
	incomingConf := make([]float64, 0, len(in))
	for _, edge := range in {
		incomingScores = append(incomingScores, edge.TrustScore)
		incomingConf = append(incomingConf, edge.Confidence)
	}
	outgoingScores := make([]float64, 0, len(out))
	for _, edge := range out {
		outgoingScores = append(outgoingScores, edge.TrustScore)
	}

	m.TotalTrustScore = sum(incomingScores)
	m.AverageTrustScore = mean(incomingScores)
	m.TrustConsistency = trustConsistency(incomingScores)
	m.TrustVolatility = 1 - mean(incomingConf)
	m.TrustCentrality = trustCentrality(len(in), len(out), n)
	m.TrustReciprocity = e.trustReciprocity(id, in, out)
	m.TrustClustering = e.trustClustering(id, in, out)
	m.TrustReachability = e.trustReachability(id, n)
	m.TrustInfluence = m.TrustCentrality * mean(outgoingScores)
	m.TrustReliability = (m.TrustConsistency + mean(incomingConf)) / 2
	m.ConfidenceScore = (m.TrustConsistency + m.TrustReliability + (1 - m.TrustVolatility)) / 3
	m.RiskScore = 1 - m.TrustReliability

	if e.behavior != nil {
		m.Behavioral = e.behavioralOverlay(id)
	}

	return m
}

func (e *Engine) behavioralOverlay(id string) map[string]any {
	behaviorRecord, ok := e.behavior.GetAgentBehavior(id)
	if !ok {
		return nil
	}
	specializations := make([]string, 0, len(behaviorRecord.Specializations))
	for s := range behaviorRecord.Specializations {
		specializations = append(specializations, s)
	}
	return map[string]any{
		"success_rate":            e.behavior.SuccessRate(id),
		"total_interactions":      behaviorRecord.TotalInteractions,
		"behavioral_reliability":  e.behavior.ReliabilityScore(id),
		"collaboration_tendency":  e.behavior.PatternScore(id, "collaboration"),
		"adaptability_score":      e.behavior.PatternScore(id, "adaptability"),
		"specializations":         specializations,
	}
}

func trustConsistency(scores []float64) float64 {
	if len(scores) < 2 {
		return 0
	}
	return 1 - math.Min(stdev(scores), 1)
}

func trustCentrality(inDegree, outDegree, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(inDegree+outDegree) / float64(n-1)
}

func (e *Engine) trustReciprocity(id string, in, out []graph.TrustEdge) float64 {
	outScore := make(map[string]float64, len(out))
	for _, edge := range out {
		outScore[edge.ToAgent] = edge.TrustScore
	}
	var diffs []float64
	for _, edge := range in {
		if s, ok := outScore[edge.FromAgent]; ok {
			diffs = append(diffs, 1-math.Abs(edge.TrustScore-s))
		}
	}
	return mean(diffs)
}

func (e *Engine) trustClustering(id string, in, out []graph.TrustEdge) float64 {
	neighbors := make(map[string]bool)
	for _, edge := range in {
		neighbors[edge.FromAgent] = true
	}
	for _, edge := range out {
		neighbors[edge.ToAgent] = true
	}
	delete(neighbors, id)
	if len(neighbors) < 2 {
		return 0
	}

	ids := make([]string, 0, len(neighbors))
	for n := range neighbors {
		ids = append(ids, n)
	}

	triangles := 0
	possible := 0
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			possible++
			if e.adjacent(ids[i], ids[j]) {
				triangles++
			}
		}
	}
	if possible == 0 {
		return 0
	}
	return float64(triangles) / float64(possible)
}

func (e *Engine) adjacent(a, b string) bool {
	if _, ok := e.store.GetEdge(a, b); ok {
		return true
	}
	_, ok := e.store.GetEdge(b, a)
	return ok
}

func (e *Engine) trustReachability(id string, n int) float64 {
	if n <= 1 {
		return 0
	}
	visited := map[string]bool{id: true}
	queue := []string{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, edge := range e.store.GetOutEdges(cur) {
			if edge.TrustScore < reachabilityThreshold || visited[edge.ToAgent] {
				continue
			}
			visited[edge.ToAgent] = true
			queue = append(queue, edge.ToAgent)
		}
	}
	return float64(len(visited)-1) / float64(n-1)
}

func sum(xs []float64) float64 {
	total := 0.0
	for _, x := range xs {
		total += x
	}
	return total
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return sum(xs) / float64(len(xs))
}

func stdev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	var variance float64
	for _, x := range xs {
		variance += (x - m) * (x - m)
	}
	variance /= float64(len(xs))
	return math.Sqrt(variance)
}
