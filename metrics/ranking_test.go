package metrics

import (
	"testing"

	"github.com/trustgraph/trustcore/pathanalyzer"
)

func TestRankAgentsOrdersDescending(t *testing.T) {
	s := buildSampleGraph()
	a := pathanalyzer.NewAnalyzer(s)
	e := NewEngine(s, a)

	ranked := e.RankAgents("average_trust_score", 0)
	if len(ranked) != 4 {
		t.Fatalf("expected 4 ranked agents, got %d", len(ranked))
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i-1].Value < ranked[i].Value {
			t.Errorf("ranking not descending at index %d: %v then %v", i, ranked[i-1], ranked[i])
		}
	}
}

func TestRankAgentsRespectsLimit(t *testing.T) {
	s := buildSampleGraph()
	a := pathanalyzer.NewAnalyzer(s)
	e := NewEngine(s, a)

	ranked := e.RankAgents("average_trust_score", 2)
	if len(ranked) != 2 {
		t.Errorf("expected limit of 2, got %d", len(ranked))
	}
}

func TestRankAgentsUnknownMetricIsEmpty(t *testing.T) {
	s := buildSampleGraph()
	a := pathanalyzer.NewAnalyzer(s)
	e := NewEngine(s, a)

	ranked := e.RankAgents("not_a_real_metric", 0)
	if len(ranked) != 0 {
		t.Errorf("expected empty ranking for unknown metric, got %v", ranked)
	}
}
