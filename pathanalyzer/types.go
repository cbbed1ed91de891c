// Package pathanalyzer implements the Path Analyzer: best-first search
// for ranked trust paths between agents, trustworthiness assessment,
// and trust-cluster discovery, all read against a *graph.Store.
package pathanalyzer

import "errors"

// DefaultMaxPathLength bounds how many hops a returned path may have.
const DefaultMaxPathLength = 5

// DefaultMaxPaths bounds how many completed paths a search collects.
const DefaultMaxPaths = 10

// DefaultMinConfidence is the floor on a frontier state's accumulated
// confidence product below which it is pruned.
const DefaultMinConfidence = 0.1

// DefaultDecayFactor penalizes longer paths multiplicatively in the
// composite trust calculation.
const DefaultDecayFactor = 0.8

// DefaultMinTrust is the edge-score floor used when building trust
// clusters.
const DefaultMinTrust = 0.5

// DefaultCacheTTLSeconds is the per-(source,target) and cluster cache
// lifetime.
const DefaultCacheTTLSeconds = 3600

// maxFrontierSize and maxVisitedSize bound search memory on dense
// graphs so a pathological topology can't exhaust memory mid-search.
const (
	maxFrontierSize = 10000
	maxVisitedSize  = 10000
)

// ErrSearchTooLarge is returned when a search exceeds its resource
// bounds before exhausting the frontier. The caller still receives
// whatever paths were found before the bound was hit.
var ErrSearchTooLarge = errors.New("pathanalyzer: search exceeded resource bounds")

// Path is one ranked result of a best-first search.
type Path struct {
	Nodes          []string `json:"nodes"`
	CompositeTrust float64  `json:"composite_trust"`
	Confidence     float64  `json:"confidence"`
}

// SearchResult is the full outcome of analyzing (source, target).
type SearchResult struct {
	Source        string  `json:"source"`
	Target        string  `json:"target"`
	AllPaths      []Path  `json:"all_paths"`
	BestPath      *Path   `json:"best_path"`
	AverageTrust  float64 `json:"average_intermediate_trust"`
}

// TrustLevel buckets a trustworthiness assessment.
type TrustLevel string

const (
	TrustHigh     TrustLevel = "high"
	TrustMedium   TrustLevel = "medium"
	TrustLow      TrustLevel = "low"
	TrustVeryLow  TrustLevel = "very_low"
)

// Assessment is the outcome of assessing trustworthiness between two
// agents.
type Assessment struct {
	Source         string     `json:"source"`
	Target         string     `json:"target"`
	DirectTrust    *float64   `json:"direct_trust"`
	IndirectTrust  *float64   `json:"indirect_trust"`
	Overall        float64    `json:"overall"`
	Level          TrustLevel `json:"level"`
	Recommendation string     `json:"recommendation"`
}

// Cluster is a connected component of agents linked by edges at or
// above a minimum trust threshold.
type Cluster struct {
	Members []string `json:"members"`
}

func levelFor(overall float64) (TrustLevel, string) {
	switch {
	case overall >= 0.8:
		return TrustHigh, "trust"
	case overall >= 0.6:
		return TrustMedium, "trust-with-caution"
	case overall >= 0.4:
		return TrustLow, "verify"
	default:
		return TrustVeryLow, "distrust"
	}
}
