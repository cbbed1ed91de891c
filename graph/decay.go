package graph

import (
	"math"

	"github.com/trustgraph/trustcore/telemetry"
)

// ApplyDecay shrinks trust_score and confidence on every non-expired
// edge toward zero as a function of hours elapsed since its last
// update, per spec.md §4.1: factor = exp(-decayRate * Δh / 24). Already
// expired edges are skipped (spec.md §9's third Open Question,
// resolved toward the recommended behavior). Returns the number of
// edges decayed.
func (s *Store) ApplyDecay() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	decayed := 0
	for i := range s.edges {
		e := &s.edges[i]
		if e.expired(now) {
			continue
		}
		hours := now.Sub(e.UpdatedAt).Hours()
		if hours <= 0 {
			continue
		}
		factor := math.Exp(-s.decayRate * hours / 24.0)
		e.TrustScore = clamp(e.TrustScore*factor, -1.0, 1.0)
		e.Confidence = clamp(e.Confidence*factor, 0.0, 1.0)
		e.UpdatedAt = now
		decayed++
	}

	telemetry.DecayRunsTotal.Inc()
	telemetry.DecayedEdgesTotal.Add(float64(decayed))
	s.log().Debug("applied decay", "edgesDecayed", decayed, "rate", s.decayRate)
	return decayed
}

// CleanupExpiredEdges removes every edge whose TTL has elapsed and
// returns the count removed. Expiry is otherwise only consulted on
// read (spec.md §4.1 "Expiration"); this is the one operation that
// actually deletes expired data.
func (s *Store) CleanupExpiredEdges() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	kept := s.edges[:0:0]
	removed := 0
	for _, e := range s.edges {
		if e.expired(now) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	s.edges = kept
	s.rebuildIndex()

	telemetry.TrustEdgesGauge.Set(float64(len(s.edges)))
	telemetry.CleanupRemovedTotal.Add(float64(removed))
	s.log().Debug("cleaned up expired edges", "removed", removed)
	return removed
}
