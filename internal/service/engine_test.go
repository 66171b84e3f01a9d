package service

import (
	"sync"
	"testing"

	"github.com/mindforge-ai/noesis/internal/domain"
	"go.uber.org/zap"
)

func newTestEngine(t *testing.T) *ReasoningEngine {
	t.Helper()
	eng, err := NewReasoningEngine(zap.NewNop())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return eng
}

func TestReasoningEngineExposesAllModes(t *testing.T) {
	eng := newTestEngine(t)

	engines := eng.Engines()
	if len(engines) != 6 {
		t.Fatalf("expected 6 engines, got %d", len(engines))
	}
	seen := map[domain.ReasoningMode]bool{}
	for _, e := range engines {
		seen[e.Mode()] = true
	}
	for _, mode := range []domain.ReasoningMode{
		domain.ModeClassical, domain.ModeModal, domain.ModeProbabilistic,
		domain.ModeQuantum, domain.ModeDecision, domain.ModeCrossDomain,
	} {
		if !seen[mode] {
			t.Errorf("mode %s missing from Engines()", mode)
		}
	}
}

func TestReasoningEngineLookup(t *testing.T) {
	eng := newTestEngine(t)

	e, err := eng.Engine(domain.ModeModal)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if e.Mode() != domain.ModeModal {
		t.Errorf("got engine for %s", e.Mode())
	}

	if _, err := eng.Engine("astrological"); err == nil {
		t.Error("expected an error for an unknown mode")
	}
}

func TestReasoningEngineIndependentInstances(t *testing.T) {
	a := newTestEngine(t)
	b := newTestEngine(t)

	if err := a.AddDomain(domain.DomainKnowledge{
		Name:     "economics",
		Concepts: map[string]domain.Concept{"market": {Name: "market", Kind: "structure"}},
	}); err != nil {
		t.Fatalf("add domain: %v", err)
	}

	if containsName(b.Domains(), "economics") {
		t.Error("registries must not be shared between engine instances")
	}
	if !containsName(a.Domains(), "economics") {
		t.Error("added domain missing from its own instance")
	}
}

func TestReasoningEngineMetricsAccumulate(t *testing.T) {
	eng := newTestEngine(t)

	classical, err := eng.Engine(domain.ModeClassical)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	for i := 0; i < 3; i++ {
		classical.Evaluate("If the disk is full, then writes fail. The disk is full.", nil)
	}

	snap := eng.GetPerformanceMetrics()
	if snap.TotalCalls != 3 {
		t.Errorf("total calls = %d, want 3", snap.TotalCalls)
	}
	stats := snap.Modes[string(domain.ModeClassical)]
	if stats.Calls != 3 {
		t.Errorf("classical calls = %d, want 3", stats.Calls)
	}
	if stats.MeanConfidence <= 0 || stats.MeanConfidence > 1 {
		t.Errorf("mean confidence out of range: %f", stats.MeanConfidence)
	}
}

func TestReasoningEngineConcurrentEvaluate(t *testing.T) {
	eng := newTestEngine(t)
	const perEngine = 10

	var wg sync.WaitGroup
	for _, e := range eng.Engines() {
		wg.Add(1)
		go func(e domain.Engine) {
			defer wg.Done()
			for i := 0; i < perEngine; i++ {
				e.Evaluate("The service must stay available. If demand grows, then latency rises.", nil)
			}
		}(e)
	}
	wg.Wait()

	snap := eng.GetPerformanceMetrics()
	if want := int64(perEngine * len(eng.Engines())); snap.TotalCalls != want {
		t.Errorf("total calls = %d, want %d", snap.TotalCalls, want)
	}
}

func TestReasoningEngineAdminRegistration(t *testing.T) {
	eng := newTestEngine(t)

	err := eng.AddInferenceRule(domain.InferenceRule{
		ID:                 "equivalence",
		Name:               "equivalence",
		Kind:               domain.RuleDeduction,
		AntecedentPatterns: []string{"{a} equals {b}"},
		ConsequentTemplate: "{b} equals {a}",
		BaseConfidence:     0.9,
	})
	if err != nil {
		t.Fatalf("add rule: %v", err)
	}

	result := eng.Classical().Evaluate("alpha equals beta.", nil)
	if !hasConclusion(result, "beta equals alpha") {
		t.Errorf("registered rule did not fire, got %+v", result.Conclusions)
	}

	if err := eng.AddQuantumOperator(domain.QuantumOperator{
		Name: "swap", Symbol: "S", Kind: domain.QuantumKindTransform,
		Matrix: [][]float64{{0, 1}, {1, 0}}, Strength: 0.6,
		Keywords: []string{"swap"},
	}); err != nil {
		t.Fatalf("add quantum operator: %v", err)
	}
	if err := eng.AddProbabilityDistribution(domain.ProbabilityDistribution{
		Name: "beta", Kind: "continuous", Params: map[string]float64{"alpha": 2, "beta": 5},
	}); err != nil {
		t.Fatalf("add distribution: %v", err)
	}
}
