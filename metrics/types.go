// Package metrics implements the Metrics Engine: per-agent and
// network-wide trust metrics, synthetic trend analysis, and JSON/CSV
// export, computed over a *graph.Store and a *pathanalyzer.Analyzer
// with an optional *behavior.Model for behavioral overlays.
package metrics

// AgentMetrics is the full per-agent metric set of spec.md §4.3.
type AgentMetrics struct {
	AgentID            string  `json:"agent_id"`
	TotalTrustScore    float64 `json:"total_trust_score"`
	AverageTrustScore  float64 `json:"average_trust_score"`
	TrustConsistency   float64 `json:"trust_consistency"`
	TrustVolatility    float64 `json:"trust_volatility"`
	TrustCentrality    float64 `json:"trust_centrality"`
	TrustReciprocity   float64 `json:"trust_reciprocity"`
	TrustClustering    float64 `json:"trust_clustering"`
	TrustReachability  float64 `json:"trust_reachability"`
	TrustInfluence     float64 `json:"trust_influence"`
	TrustReliability   float64 `json:"trust_reliability"`
	ConfidenceScore    float64 `json:"confidence_score"`
	RiskScore          float64 `json:"risk_score"`

	Behavioral map[string]any `json:"behavioral,omitempty"`
}

// NetworkMetrics is the network-wide metric set of spec.md §4.3.
type NetworkMetrics struct {
	TotalAgents                int     `json:"total_agents"`
	TotalEdges                 int     `json:"total_edges"`
	AverageTrustScore          float64 `json:"average_trust_score"`
	TrustDensity               float64 `json:"trust_density"`
	TrustClusteringCoefficient float64 `json:"trust_clustering_coefficient"`
	TrustCentralization        float64 `json:"trust_centralization"`
	TrustFragmentation         float64 `json:"trust_fragmentation"`
	TrustStability             float64 `json:"trust_stability"`
	TrustEfficiency            float64 `json:"trust_efficiency"`
	TrustResilience            float64 `json:"trust_resilience"`
	HighTrustAgents            int     `json:"high_trust_agents"`
	LowTrustAgents             int     `json:"low_trust_agents"`
	TrustCommunities           int     `json:"trust_communities"`
}

// TrendDirection buckets the slope of a synthetic trend series.
type TrendDirection string

const (
	TrendStable      TrendDirection = "stable"
	TrendIncreasing  TrendDirection = "increasing"
	TrendDecreasing  TrendDirection = "decreasing"
)

// TrendPoint is one sample of a synthetic trend series.
type TrendPoint struct {
	Day   int     `json:"day"`
	Value float64 `json:"value"`
}

// Trend is the result of analyze_trust_trends.
type Trend struct {
	AgentID   string         `json:"agent_id"`
	Period    string         `json:"period"`
	Points    []TrendPoint   `json:"points"`
	Slope     float64        `json:"slope"`
	Direction TrendDirection `json:"direction"`
}
