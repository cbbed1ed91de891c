package behavior

import (
	"math"
	"path/filepath"
	"testing"
)

func approxEqual(t *testing.T, got, want, tolerance float64) {
	t.Helper()
	if math.Abs(got-want) > tolerance {
		t.Errorf("got %v, want %v (tolerance %v)", got, want, tolerance)
	}
}

func TestRegisterAgentSeedsStandardSets(t *testing.T) {
	m := NewModel()
	if ok := m.RegisterAgent("alice"); !ok {
		t.Fatalf("first registration should succeed")
	}
	if ok := m.RegisterAgent("alice"); ok {
		t.Errorf("duplicate registration should return false")
	}

	a, ok := m.GetAgentBehavior("alice")
	if !ok {
		t.Fatalf("agent should exist")
	}
	if len(a.PersonalityTraits) != len(StandardTraits) {
		t.Errorf("trait count = %d, want %d", len(a.PersonalityTraits), len(StandardTraits))
	}
	if len(a.BehavioralPatterns) != len(StandardPatterns) {
		t.Errorf("pattern count = %d, want %d", len(a.BehavioralPatterns), len(StandardPatterns))
	}
}

func TestUpdateTraitWeightedAverageNotClamped(t *testing.T) {
	m := NewModel()
	m.UpdateTrait("alice", "openness", 0.8, 0.9, nil)
	m.UpdateTrait("alice", "openness", 0.9, 0.9, nil)

	a, _ := m.GetAgentBehavior("alice")
	tr := a.PersonalityTraits["openness"]
	// w = 1/2 -> 0.8*0.5 + 0.9*0.5 = 0.85
	approxEqual(t, tr.Value, 0.85, 1e-9)
	if tr.EvidenceCount != 2 {
		t.Errorf("evidence_count = %d, want 2", tr.EvidenceCount)
	}
}

func TestUpdateTraitClampsInputsAtBoundary(t *testing.T) {
	m := NewModel()
	m.UpdateTrait("alice", "openness", 5.0, -2.0, nil)

	a, _ := m.GetAgentBehavior("alice")
	tr := a.PersonalityTraits["openness"]
	if tr.Value != 1.0 {
		t.Errorf("value = %v, want clamped to 1.0 on input", tr.Value)
	}
	if tr.Confidence != 0.0 {
		t.Errorf("confidence = %v, want clamped to 0.0 on input", tr.Confidence)
	}
}

func TestRecordInteractionZeroScoreUpdatesTotalOnly(t *testing.T) {
	m := NewModel()
	m.RecordInteraction("alice", 0)
	m.RecordInteraction("alice", 0.5)
	m.RecordInteraction("alice", -0.5)

	a, _ := m.GetAgentBehavior("alice")
	if a.TotalInteractions != 3 {
		t.Errorf("total = %d, want 3", a.TotalInteractions)
	}
	if a.SuccessfulInteractions != 1 {
		t.Errorf("successful = %d, want 1", a.SuccessfulInteractions)
	}
	if a.FailedInteractions != 1 {
		t.Errorf("failed = %d, want 1", a.FailedInteractions)
	}
}

func TestSuccessRateAndReliability(t *testing.T) {
	m := NewModel()
	for i := 0; i < 3; i++ {
		m.RecordInteraction("alice", 0.5)
	}
	m.RecordInteraction("alice", -0.5)

	approxEqual(t, m.SuccessRate("alice"), 0.75, 1e-9)
	// No "consistency" observations, so reliability is the bare success rate.
	approxEqual(t, m.ReliabilityScore("alice"), 0.75, 1e-9)
}

func TestPredictBehaviorHighConscientiousness(t *testing.T) {
	m := NewModel()
	m.RegisterAgent("alice")
	m.UpdateTrait("alice", "conscientiousness", 0.9, 0.9, nil)

	p := m.PredictBehavior("alice", "general")
	if p.DecisionSpeed != "slow" {
		t.Errorf("decision_speed = %q, want slow", p.DecisionSpeed)
	}
}

func TestPredictBehaviorSpecializationBoost(t *testing.T) {
	m := NewModel()
	m.RegisterAgent("alice")
	for i := 0; i < 4; i++ {
		m.RecordInteraction("alice", 0.5)
	}
	m.AddSpecialization("alice", "trading")

	withSpec := m.PredictBehavior("alice", "trading")
	withoutSpec := m.PredictBehavior("alice", "general")

	if withSpec.ExpectedSuccessRate <= withoutSpec.ExpectedSuccessRate {
		t.Errorf("specialization context should boost expected_success_rate: %v vs %v",
			withSpec.ExpectedSuccessRate, withoutSpec.ExpectedSuccessRate)
	}
}

func TestPredictBehaviorUnknownAgentIsNeutral(t *testing.T) {
	m := NewModel()
	p := m.PredictBehavior("ghost", "general")
	if p.CommunicationStyle != "neutral" || p.DecisionSpeed != "medium" || p.RiskTolerance != "medium" {
		t.Errorf("unknown agent should get neutral defaults, got %+v", p)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	m := NewModel()
	m.UpdateTrait("alice", "openness", 0.6, 0.7, nil)
	m.UpdatePattern("alice", "collaboration", 0.5, 0.4, 0.6, "team")
	m.RecordInteraction("alice", 0.5)
	m.AddSpecialization("alice", "trading")

	dir := t.TempDir()
	path := filepath.Join(dir, "behavior_model.json")
	if err := m.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile: %v", err)
	}

	loaded := NewModel()
	if err := loaded.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}

	a, ok := loaded.GetAgentBehavior("alice")
	if !ok {
		t.Fatalf("agent missing after load")
	}
	if a.PersonalityTraits["openness"].Value != 0.6 {
		t.Errorf("trait value = %v, want 0.6", a.PersonalityTraits["openness"].Value)
	}
	if !a.Specializations["trading"] {
		t.Errorf("specialization should survive round trip")
	}
}
