package behavior

// Prediction is the qualitative behavior forecast returned by
// PredictBehavior. Multiplicative adjustments are not re-clamped; a
// caller is expected to treat the numeric fields as ranked hints, not
// normalized probabilities (spec.md §4.4).
type Prediction struct {
	Reliability          float64 `json:"reliability"`
	CollaborationTendency float64 `json:"collaboration_tendency"`
	Adaptability         float64 `json:"adaptability"`
	ExpectedSuccessRate  float64 `json:"expected_success_rate"`
	CommunicationStyle   string  `json:"communication_style"`
	DecisionSpeed        string  `json:"decision_speed"`
	RiskTolerance        string  `json:"risk_tolerance"`
}

// PredictBehavior derives a qualitative forecast for agentID in the
// given context, seeding from its current traits/patterns and derived
// scores, then applying the six adjustment rules of spec.md §4.4 in
// order. Unknown agents get neutral defaults.
func (m *Model) PredictBehavior(agentID, context string) Prediction {
	m.mu.RLock()
	a, ok := m.agents[agentID]
	var behavior AgentBehavior
	if ok {
		behavior = cloneBehavior(a)
	}
	m.mu.RUnlock()

	p := Prediction{
		Reliability:           m.ReliabilityScore(agentID),
		CollaborationTendency: m.PatternScore(agentID, "collaboration"),
		Adaptability:          m.PatternScore(agentID, "adaptability"),
		ExpectedSuccessRate:   m.SuccessRate(agentID),
		CommunicationStyle:    "neutral",
		DecisionSpeed:         "medium",
		RiskTolerance:         "medium",
	}
	if !ok {
		return p
	}

	traitValue := func(name string) (float64, bool) {
		t, ok := behavior.PersonalityTraits[name]
		if !ok || t.EvidenceCount == 0 {
			return 0, false
		}
		return t.Value, true
	}
	patternStrength := func(name string) (float64, bool) {
		pat, ok := behavior.BehavioralPatterns[name]
		if !ok || pat.ObservationCount == 0 {
			return 0, false
		}
		return pat.Strength, true
	}

	// Rule 1: conscientiousness.
	if v, ok := traitValue("conscientiousness"); ok {
		switch {
		case v > 0.5:
			p.Reliability *= 1.2
			p.DecisionSpeed = "slow"
		case v < -0.5:
			p.Reliability *= 0.8
			p.DecisionSpeed = "fast"
		}
	}

	// Rule 2: extraversion.
	if v, ok := traitValue("extraversion"); ok {
		switch {
		case v > 0.5:
			p.CommunicationStyle = "expressive"
			p.CollaborationTendency *= 1.1
		case v < -0.5:
			p.CommunicationStyle = "reserved"
		}
	}

	// Rule 3: neuroticism.
	if v, ok := traitValue("neuroticism"); ok {
		switch {
		case v > 0.5:
			p.RiskTolerance = "low"
		case v < -0.5:
			p.RiskTolerance = "high"
		}
	}

	// Rule 4: speed pattern.
	if v, ok := patternStrength("speed"); ok {
		switch {
		case v > 0.5:
			p.DecisionSpeed = "fast"
		case v < -0.5:
			p.DecisionSpeed = "slow"
		}
	}

	// Rule 5: caution pattern.
	if v, ok := patternStrength("caution"); ok {
		switch {
		case v > 0.5:
			p.RiskTolerance = "low"
		case v < -0.5:
			p.RiskTolerance = "high"
		}
	}

	// Rule 6: specialization match.
	if behavior.Specializations[context] {
		p.ExpectedSuccessRate *= 1.2
		p.Reliability *= 1.1
	}

	return p
}
