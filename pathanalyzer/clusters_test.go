package pathanalyzer

import "testing"

func TestTrustClustersFindsConnectedComponent(t *testing.T) {
	s := buildSampleGraph()
	a := NewAnalyzer(s)

	clusters := a.TrustClusters(DefaultMinTrust)
	if len(clusters) != 1 {
		t.Fatalf("got %d clusters, want 1: %v", len(clusters), clusters)
	}
	if len(clusters[0].Members) != 4 {
		t.Errorf("cluster size = %d, want 4", len(clusters[0].Members))
	}
}

func TestTrustClustersExcludesIsolatedAgents(t *testing.T) {
	s := buildSampleGraph()
	s.AddAgent("isolated", nil)
	a := NewAnalyzer(s)

	clusters := a.TrustClusters(DefaultMinTrust)
	for _, c := range clusters {
		for _, m := range c.Members {
			if m == "isolated" {
				t.Errorf("isolated agent should not appear in any cluster")
			}
		}
	}
}
