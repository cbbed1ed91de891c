package metrics

import "sort"

// AgentRank is one row of a ranking produced by RankAgents.
type AgentRank struct {
	AgentID string  `json:"agent_id"`
	Value   float64 `json:"value"`
}

// rankableMetrics maps the metric names accepted by RankAgents (and the
// `ranking` CLI subcommand of spec.md §6.3) onto an AgentMetrics field,
// the same set of values get_trust_ranking exposes via getattr.
var rankableMetrics = map[string]func(AgentMetrics) float64{
	"total_trust_score":   func(m AgentMetrics) float64 { return m.TotalTrustScore },
	"average_trust_score": func(m AgentMetrics) float64 { return m.AverageTrustScore },
	"trust_consistency":   func(m AgentMetrics) float64 { return m.TrustConsistency },
	"trust_volatility":    func(m AgentMetrics) float64 { return m.TrustVolatility },
	"trust_centrality":    func(m AgentMetrics) float64 { return m.TrustCentrality },
	"trust_reciprocity":   func(m AgentMetrics) float64 { return m.TrustReciprocity },
	"trust_clustering":    func(m AgentMetrics) float64 { return m.TrustClustering },
	"trust_reachability":  func(m AgentMetrics) float64 { return m.TrustReachability },
	"trust_influence":     func(m AgentMetrics) float64 { return m.TrustInfluence },
	"trust_reliability":   func(m AgentMetrics) float64 { return m.TrustReliability },
	"confidence_score":    func(m AgentMetrics) float64 { return m.ConfidenceScore },
	"risk_score":          func(m AgentMetrics) float64 { return m.RiskScore },
}

// RankAgents ranks every known agent by the named metric, descending,
// and returns at most limit entries (limit <= 0 means unbounded). An
// unrecognized metric name yields an empty ranking rather than an
// error, matching the tolerant lookup get_trust_ranking performs via
// hasattr before appending a row.
func (e *Engine) RankAgents(metric string, limit int) []AgentRank {
	accessor, ok := rankableMetrics[metric]
	if !ok {
		e.log().Warn("rank_agents: unknown metric", "metric", metric)
		return []AgentRank{}
	}

	ids := e.store.AgentIDs()
	sort.Strings(ids)

	ranked := make([]AgentRank, 0, len(ids))
	for _, id := range ids {
		m := e.AgentMetrics(id)
		ranked = append(ranked, AgentRank{AgentID: id, Value: accessor(m)})
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Value > ranked[j].Value })

	if limit > 0 && limit < len(ranked) {
		ranked = ranked[:limit]
	}
	return ranked
}
